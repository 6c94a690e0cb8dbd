package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cofitearia/milktea-pos/internal/apperr"
	"github.com/cofitearia/milktea-pos/internal/inventory"
	"github.com/cofitearia/milktea-pos/internal/inventory/dto"
	"github.com/cofitearia/milktea-pos/internal/model"
)

type inventoryUseCase struct {
	repo   inventory.Repository
	logger *zap.Logger

	// locks serializes mutations per inventory item so concurrent callers
	// cannot interleave a check-and-decrement. The SQL guard is the hard
	// backstop; the mutex keeps movement ordering sane.
	locks sync.Map // map[int64]*sync.Mutex
}

func NewInventoryUseCase(repo inventory.Repository, log *zap.Logger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *inventoryUseCase) lockItem(itemID int64) func() {
	v, _ := uc.locks.LoadOrStore(itemID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func validateItem(currentStock, minimumStock, maximumStock, low, critical int) error {
	if currentStock < 0 || minimumStock < 0 || maximumStock < 0 {
		return apperr.Invalidf("stock levels must not be negative")
	}
	if low < 0 || critical < 0 {
		return apperr.Invalidf("thresholds must not be negative")
	}
	if critical > low {
		return apperr.Invalidf("critical threshold %d exceeds low threshold %d", critical, low)
	}
	return nil
}

func (uc *inventoryUseCase) CreateItem(ctx context.Context, input *dto.CreateItemInput) (*model.InventoryItem, error) {
	if err := validateItem(input.CurrentStock, input.MinimumStock, input.MaximumStock,
		input.LowStockThreshold, input.CriticalStockThreshold); err != nil {
		return nil, err
	}

	existing, err := uc.repo.FindByProduct(ctx, input.ProductID)
	if err != nil {
		return nil, apperr.Storage(err, "find inventory item by product")
	}
	if existing != nil {
		return nil, apperr.ErrDuplicateKey
	}

	now := time.Now()
	item := &model.InventoryItem{
		BaseModel:              model.BaseModel{DateCreated: now, DateModified: now},
		ProductID:              input.ProductID,
		CurrentStock:           input.CurrentStock,
		MinimumStock:           input.MinimumStock,
		MaximumStock:           input.MaximumStock,
		CostPrice:              input.CostPrice.Round(2),
		ExpirationDate:         input.ExpirationDate,
		Supplier:               input.Supplier,
		Location:               input.Location,
		IsActive:               true,
		LowStockThreshold:      input.LowStockThreshold,
		CriticalStockThreshold: input.CriticalStockThreshold,
	}

	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, apperr.Storage(err, "create inventory item")
	}
	uc.logger.Info("inventory item created",
		zap.Int64("item_id", item.ID), zap.Int64("product_id", item.ProductID))
	return item, nil
}

func (uc *inventoryUseCase) GetItem(ctx context.Context, id int64) (*model.InventoryItem, error) {
	item, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Storage(err, "find inventory item")
	}
	if item == nil {
		return nil, apperr.ErrNotFound
	}
	return item, nil
}

func (uc *inventoryUseCase) ItemByProduct(ctx context.Context, productID int64) (*model.InventoryItem, error) {
	item, err := uc.repo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, apperr.Storage(err, "find inventory item by product")
	}
	return item, nil
}

func (uc *inventoryUseCase) ListItems(ctx context.Context) ([]model.InventoryItem, error) {
	items, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, apperr.Storage(err, "list inventory items")
	}
	return items, nil
}

func (uc *inventoryUseCase) UpdateItem(ctx context.Context, item *model.InventoryItem) (*model.InventoryItem, error) {
	if err := validateItem(item.CurrentStock, item.MinimumStock, item.MaximumStock,
		item.LowStockThreshold, item.CriticalStockThreshold); err != nil {
		return nil, err
	}

	existing, err := uc.repo.FindByID(ctx, item.ID)
	if err != nil {
		return nil, apperr.Storage(err, "find inventory item")
	}
	if existing == nil {
		return nil, apperr.ErrNotFound
	}

	item.CostPrice = item.CostPrice.Round(2)
	item.DateModified = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, apperr.Storage(err, "update inventory item")
	}
	return item, nil
}

func (uc *inventoryUseCase) DeactivateItem(ctx context.Context, id int64) error {
	found, err := uc.repo.Deactivate(ctx, id)
	if err != nil {
		return apperr.Storage(err, "deactivate inventory item")
	}
	if !found {
		return apperr.ErrNotFound
	}
	return nil
}

func (uc *inventoryUseCase) AddStock(ctx context.Context, itemID int64, quantity int, reason string, userID *int64) error {
	if quantity <= 0 {
		return apperr.Invalidf("quantity must be positive, got %d", quantity)
	}

	unlock := uc.lockItem(itemID)
	defer unlock()

	m := newMovement(itemID, model.MovementIn, quantity, reason, userID)
	if err := uc.applyMovement(ctx, itemID, quantity, true, m); err != nil {
		return err
	}

	uc.logger.Info("stock added",
		zap.Int64("item_id", itemID), zap.Int("quantity", quantity), zap.String("reason", reason))
	return nil
}

func (uc *inventoryUseCase) RemoveStock(ctx context.Context, itemID int64, quantity int, reason string, userID *int64) error {
	if quantity <= 0 {
		return apperr.Invalidf("quantity must be positive, got %d", quantity)
	}

	unlock := uc.lockItem(itemID)
	defer unlock()

	m := newMovement(itemID, model.MovementOut, -quantity, reason, userID)
	if err := uc.applyMovement(ctx, itemID, -quantity, false, m); err != nil {
		return err
	}

	uc.logger.Info("stock removed",
		zap.Int64("item_id", itemID), zap.Int("quantity", quantity), zap.String("reason", reason))
	return nil
}

func (uc *inventoryUseCase) AdjustStock(ctx context.Context, itemID int64, delta int, reason string, userID *int64) error {
	if delta == 0 {
		return apperr.Invalidf("adjustment delta must not be zero")
	}

	unlock := uc.lockItem(itemID)
	defer unlock()

	m := newMovement(itemID, model.MovementAdjustment, delta, reason, userID)
	if err := uc.applyMovement(ctx, itemID, delta, false, m); err != nil {
		return err
	}

	uc.logger.Info("stock adjusted",
		zap.Int64("item_id", itemID), zap.Int("delta", delta), zap.String("reason", reason))
	return nil
}

func (uc *inventoryUseCase) applyMovement(ctx context.Context, itemID int64, delta int, setRestocked bool, m *model.StockMovement) error {
	err := uc.repo.AdjustWithMovement(ctx, itemID, delta, setRestocked, m)
	if err == nil {
		return nil
	}
	if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrInsufficientStock) {
		return err
	}
	return apperr.Storage(err, "apply stock movement")
}

func newMovement(itemID int64, mt model.MovementType, quantity int, reason string, userID *int64) *model.StockMovement {
	return &model.StockMovement{
		ID:              uuid.New().String(),
		InventoryItemID: itemID,
		Type:            mt,
		Quantity:        quantity,
		Reason:          reason,
		UserID:          userID,
		DateCreated:     time.Now(),
	}
}

func (uc *inventoryUseCase) LowStockItems(ctx context.Context) ([]model.InventoryItem, error) {
	items, err := uc.repo.FindLowStock(ctx)
	if err != nil {
		return nil, apperr.Storage(err, "list low stock items")
	}
	return items, nil
}

func (uc *inventoryUseCase) CriticalStockItems(ctx context.Context) ([]model.InventoryItem, error) {
	items, err := uc.repo.FindCriticalStock(ctx)
	if err != nil {
		return nil, apperr.Storage(err, "list critical stock items")
	}
	return items, nil
}

func (uc *inventoryUseCase) ExpiredItems(ctx context.Context) ([]model.InventoryItem, error) {
	items, err := uc.repo.FindExpired(ctx, time.Now())
	if err != nil {
		return nil, apperr.Storage(err, "list expired items")
	}
	return items, nil
}

func (uc *inventoryUseCase) ExpiringSoonItems(ctx context.Context) ([]model.InventoryItem, error) {
	items, err := uc.repo.FindExpiringSoon(ctx, time.Now())
	if err != nil {
		return nil, apperr.Storage(err, "list expiring items")
	}
	return items, nil
}

func (uc *inventoryUseCase) ReorderQuantity(ctx context.Context, itemID int64) (int, error) {
	item, err := uc.GetItem(ctx, itemID)
	if err != nil {
		return 0, err
	}
	return item.ReorderQuantity(), nil
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, itemID int64) ([]model.StockMovement, error) {
	movements, err := uc.repo.ListMovements(ctx, itemID)
	if err != nil {
		return nil, apperr.Storage(err, "list stock movements")
	}
	return movements, nil
}
