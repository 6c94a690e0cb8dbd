package sale

import (
	"context"

	"github.com/cofitearia/milktea-pos/internal/model"
)

type UseCase interface {
	// NewCart builds an empty cart with the configured default tax rate
	// applied.
	NewCart() *Cart

	// Checkout finalizes the cart: it deducts stock per line, persists the
	// sale with a fresh transaction number and closes the cart against
	// further mutation. The cashier needs the PROCESS_SALE permission.
	Checkout(ctx context.Context, cart *Cart, paymentMethod string, cashier *model.User) (*model.Sale, error)

	// VoidSale flags a finalized sale voided. Inventory is not reversed;
	// reconciliation is a manual follow-up.
	VoidSale(ctx context.Context, saleID int64) error

	GetSale(ctx context.Context, id int64) (*model.Sale, error)
	ListSales(ctx context.Context, includeVoided bool) ([]model.Sale, error)
}
