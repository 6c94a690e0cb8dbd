package sale

import (
	"context"

	"github.com/cofitearia/milktea-pos/internal/model"
)

// Repository is append-only for sales: records are created and voided, never
// updated or removed.
type Repository interface {
	// CreateSale persists the sale and its items in one transaction and
	// fills in the generated ids.
	CreateSale(ctx context.Context, s *model.Sale) error

	FindByID(ctx context.Context, id int64) (*model.Sale, error)
	FindByTransactionNumber(ctx context.Context, txn string) (*model.Sale, error)
	FindAll(ctx context.Context, includeVoided bool) ([]model.Sale, error)

	// MarkVoided flips is_voided. Returns false if no row matched.
	MarkVoided(ctx context.Context, id int64) (bool, error)
}

// Inventory is the slice of the inventory ledger the checkout flow needs.
// The inventory usecase satisfies it.
type Inventory interface {
	ItemByProduct(ctx context.Context, productID int64) (*model.InventoryItem, error)
	RemoveStock(ctx context.Context, itemID int64, quantity int, reason string, userID *int64) error
	AdjustStock(ctx context.Context, itemID int64, delta int, reason string, userID *int64) error
}
