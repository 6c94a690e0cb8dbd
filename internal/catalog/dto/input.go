package dto

import "github.com/shopspring/decimal"

type CreateProductInput struct {
	Name                 string
	Description          string
	Price                decimal.Decimal
	Category             string
	Barcode              string
	Unit                 string
	AltText              string
	LargeTextDescription string
}
