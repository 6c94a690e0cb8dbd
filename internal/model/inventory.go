package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type StockStatus string

const (
	StockAdequate StockStatus = "ADEQUATE"
	StockLow      StockStatus = "LOW"
	StockCritical StockStatus = "CRITICAL"
)

// expiringSoonWindow is how far ahead ExpiringSoon looks.
const expiringSoonWindow = 7 * 24 * time.Hour

// InventoryItem tracks stock levels for one active product.
type InventoryItem struct {
	BaseModel
	ProductID              int64           `db:"product_id"`
	CurrentStock           int             `db:"current_stock"`
	MinimumStock           int             `db:"minimum_stock"`
	MaximumStock           int             `db:"maximum_stock"`
	CostPrice              decimal.Decimal `db:"cost_price"`
	ExpirationDate         *time.Time      `db:"expiration_date"`
	Supplier               string          `db:"supplier"`
	Location               string          `db:"location"`
	LastRestocked          *time.Time      `db:"last_restocked"`
	IsActive               bool            `db:"is_active"`
	LowStockThreshold      int             `db:"low_stock_threshold"`
	CriticalStockThreshold int             `db:"critical_stock_threshold"`

	Product *Product `db:"-"` // joined data, loaded separately
}

// Status derives the alert level from the thresholds. Critical wins when the
// thresholds overlap.
func (i *InventoryItem) Status() StockStatus {
	switch {
	case i.CurrentStock <= i.CriticalStockThreshold:
		return StockCritical
	case i.CurrentStock <= i.LowStockThreshold:
		return StockLow
	default:
		return StockAdequate
	}
}

func (i *InventoryItem) IsExpired(now time.Time) bool {
	return i.ExpirationDate != nil && i.ExpirationDate.Before(truncateToDay(now))
}

func (i *InventoryItem) IsExpiringSoon(now time.Time) bool {
	if i.ExpirationDate == nil || i.IsExpired(now) {
		return false
	}
	return i.ExpirationDate.Before(truncateToDay(now).Add(expiringSoonWindow))
}

// ReorderQuantity is maximum minus current stock. Negative when overstocked;
// callers clamp before ordering.
func (i *InventoryItem) ReorderQuantity() int {
	return i.MaximumStock - i.CurrentStock
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

type MovementType string

const (
	MovementIn         MovementType = "IN"
	MovementOut        MovementType = "OUT"
	MovementAdjustment MovementType = "ADJUSTMENT"
)

// StockMovement is an append-only audit record of a stock change.
// Quantity is signed: positive for IN, negative for OUT.
type StockMovement struct {
	ID              string       `db:"id"`
	InventoryItemID int64        `db:"inventory_item_id"`
	Type            MovementType `db:"movement_type"`
	Quantity        int          `db:"quantity"`
	Reason          string       `db:"reason"`
	UserID          *int64       `db:"user_id"`
	DateCreated     time.Time    `db:"date_created"`
}
