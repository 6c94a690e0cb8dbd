package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is an immutable record of a finalized transaction. Voided sales keep
// their data and are excluded from active reporting by the caller.
type Sale struct {
	BaseModel
	TransactionNumber string          `db:"transaction_number"`
	Subtotal          decimal.Decimal `db:"subtotal"`
	Tax               decimal.Decimal `db:"tax"`
	Discount          decimal.Decimal `db:"discount"`
	Total             decimal.Decimal `db:"total"`
	PaymentMethod     string          `db:"payment_method"`
	CashierID         *int64          `db:"cashier_id"`
	SaleDate          time.Time       `db:"sale_date"`
	Notes             string          `db:"notes"`
	IsVoided          bool            `db:"is_voided"`

	Items []SaleItem `db:"-"`
}

// SaleItem snapshots the unit price at sale time so the record stays stable
// when the catalog price changes later.
type SaleItem struct {
	ID         int64           `db:"id"`
	SaleID     int64           `db:"sale_id"`
	ProductID  int64           `db:"product_id"`
	Quantity   int             `db:"quantity"`
	UnitPrice  decimal.Decimal `db:"unit_price"`
	TotalPrice decimal.Decimal `db:"total_price"`
}

// ItemCount is the sum of line quantities.
func (s *Sale) ItemCount() int {
	n := 0
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}
