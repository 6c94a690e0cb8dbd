package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateItemInput struct {
	ProductID              int64
	CurrentStock           int
	MinimumStock           int
	MaximumStock           int
	CostPrice              decimal.Decimal
	ExpirationDate         *time.Time
	Supplier               string
	Location               string
	LowStockThreshold      int
	CriticalStockThreshold int
}
