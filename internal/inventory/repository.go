package inventory

import (
	"context"
	"time"

	"github.com/cofitearia/milktea-pos/internal/model"
)

type Repository interface {
	Create(ctx context.Context, item *model.InventoryItem) error
	FindByID(ctx context.Context, id int64) (*model.InventoryItem, error)
	FindByProduct(ctx context.Context, productID int64) (*model.InventoryItem, error)
	FindAll(ctx context.Context) ([]model.InventoryItem, error)
	Update(ctx context.Context, item *model.InventoryItem) error

	// Deactivate flips is_active. Returns false if no active row matched.
	Deactivate(ctx context.Context, id int64) (bool, error)

	// AdjustWithMovement applies a signed stock delta and appends the audit
	// movement in one transaction. The UPDATE is guarded so the stock level
	// can never go negative: ErrInsufficientStock when the guard rejects the
	// delta, ErrNotFound when the item is missing or inactive. setRestocked
	// additionally stamps last_restocked with today's date.
	AdjustWithMovement(ctx context.Context, itemID int64, delta int, setRestocked bool, m *model.StockMovement) error

	FindLowStock(ctx context.Context) ([]model.InventoryItem, error)
	FindCriticalStock(ctx context.Context) ([]model.InventoryItem, error)
	FindExpired(ctx context.Context, now time.Time) ([]model.InventoryItem, error)
	FindExpiringSoon(ctx context.Context, now time.Time) ([]model.InventoryItem, error)

	ListMovements(ctx context.Context, itemID int64) ([]model.StockMovement, error)
}
