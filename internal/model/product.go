package model

import "github.com/shopspring/decimal"

// Product is a catalog entry. Rows are soft-deleted (is_active = 0) so
// historical sale items keep a valid reference.
type Product struct {
	BaseModel
	Name                 string          `db:"name"`
	Description          string          `db:"description"`
	Price                decimal.Decimal `db:"price"`
	Category             string          `db:"category"`
	Barcode              *string         `db:"barcode"`
	Unit                 string          `db:"unit"`
	IsActive             bool            `db:"is_active"`
	AltText              *string         `db:"alt_text"`
	LargeTextDescription *string         `db:"large_text_description"`
}
