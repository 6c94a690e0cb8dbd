package inventory

import (
	"context"

	"github.com/cofitearia/milktea-pos/internal/inventory/dto"
	"github.com/cofitearia/milktea-pos/internal/model"
)

type UseCase interface {
	CreateItem(ctx context.Context, input *dto.CreateItemInput) (*model.InventoryItem, error)
	GetItem(ctx context.Context, id int64) (*model.InventoryItem, error)
	ItemByProduct(ctx context.Context, productID int64) (*model.InventoryItem, error)
	ListItems(ctx context.Context) ([]model.InventoryItem, error)
	UpdateItem(ctx context.Context, item *model.InventoryItem) (*model.InventoryItem, error)
	DeactivateItem(ctx context.Context, id int64) error

	AddStock(ctx context.Context, itemID int64, quantity int, reason string, userID *int64) error
	RemoveStock(ctx context.Context, itemID int64, quantity int, reason string, userID *int64) error
	AdjustStock(ctx context.Context, itemID int64, delta int, reason string, userID *int64) error

	LowStockItems(ctx context.Context) ([]model.InventoryItem, error)
	CriticalStockItems(ctx context.Context) ([]model.InventoryItem, error)
	ExpiredItems(ctx context.Context) ([]model.InventoryItem, error)
	ExpiringSoonItems(ctx context.Context) ([]model.InventoryItem, error)

	// ReorderQuantity is maximum minus current stock; negative when
	// overstocked, callers clamp before ordering.
	ReorderQuantity(ctx context.Context, itemID int64) (int, error)

	ListMovements(ctx context.Context, itemID int64) ([]model.StockMovement, error)
}
