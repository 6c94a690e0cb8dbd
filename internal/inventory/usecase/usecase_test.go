package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/cofitearia/milktea-pos/internal/apperr"
	"github.com/cofitearia/milktea-pos/internal/inventory"
	"github.com/cofitearia/milktea-pos/internal/inventory/dto"
	"github.com/cofitearia/milktea-pos/internal/model"
)

// fakeRepo is an in-memory stand-in for the sqlite repository. It applies
// the same guard as the conditional UPDATE: a delta is rejected before any
// mutation when it would drive the stock negative.
type fakeRepo struct {
	mu        sync.Mutex
	nextID    int64
	items     map[int64]*model.InventoryItem
	movements []model.StockMovement
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, items: map[int64]*model.InventoryItem{}}
}

func (r *fakeRepo) Create(_ context.Context, item *model.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = r.nextID
	r.nextID++
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id int64) (*model.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || !item.IsActive {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *fakeRepo) FindByProduct(_ context.Context, productID int64) (*model.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.ProductID == productID && item.IsActive {
			cp := *item
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) FindAll(_ context.Context) ([]model.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.InventoryItem{}
	for _, item := range r.items {
		if item.IsActive {
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRepo) Update(_ context.Context, item *model.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeRepo) Deactivate(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || !item.IsActive {
		return false, nil
	}
	item.IsActive = false
	return true, nil
}

func (r *fakeRepo) AdjustWithMovement(_ context.Context, itemID int64, delta int, setRestocked bool, m *model.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok || !item.IsActive {
		return apperr.ErrNotFound
	}
	if item.CurrentStock+delta < 0 {
		return apperr.ErrInsufficientStock
	}
	item.CurrentStock += delta
	if setRestocked {
		now := time.Now()
		item.LastRestocked = &now
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *fakeRepo) FindLowStock(_ context.Context) ([]model.InventoryItem, error) {
	return r.filter(func(i *model.InventoryItem) bool {
		return i.CurrentStock <= i.LowStockThreshold
	}), nil
}

func (r *fakeRepo) FindCriticalStock(_ context.Context) ([]model.InventoryItem, error) {
	return r.filter(func(i *model.InventoryItem) bool {
		return i.CurrentStock <= i.CriticalStockThreshold
	}), nil
}

func (r *fakeRepo) FindExpired(_ context.Context, now time.Time) ([]model.InventoryItem, error) {
	return r.filter(func(i *model.InventoryItem) bool {
		return i.IsExpired(now) && i.CurrentStock > 0
	}), nil
}

func (r *fakeRepo) FindExpiringSoon(_ context.Context, now time.Time) ([]model.InventoryItem, error) {
	return r.filter(func(i *model.InventoryItem) bool {
		return i.IsExpiringSoon(now)
	}), nil
}

func (r *fakeRepo) filter(keep func(*model.InventoryItem) bool) []model.InventoryItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.InventoryItem{}
	for _, item := range r.items {
		if item.IsActive && keep(item) {
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CurrentStock != out[j].CurrentStock {
			return out[i].CurrentStock < out[j].CurrentStock
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *fakeRepo) ListMovements(_ context.Context, itemID int64) ([]model.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.StockMovement{}
	for i := len(r.movements) - 1; i >= 0; i-- {
		if r.movements[i].InventoryItemID == itemID {
			out = append(out, r.movements[i])
		}
	}
	return out, nil
}

var _ inventory.Repository = (*fakeRepo)(nil)

func newTestUseCase(t *testing.T) (inventory.UseCase, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	return NewInventoryUseCase(repo, zap.NewNop()), repo
}

func mustCreateItem(t *testing.T, uc inventory.UseCase, productID int64, stock, low, critical int) *model.InventoryItem {
	t.Helper()
	item, err := uc.CreateItem(context.Background(), &dto.CreateItemInput{
		ProductID:              productID,
		CurrentStock:           stock,
		MinimumStock:           0,
		MaximumStock:           1000,
		LowStockThreshold:      low,
		CriticalStockThreshold: critical,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	return item
}

func TestCreateItemValidatesThresholds(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.CreateItem(context.Background(), &dto.CreateItemInput{
		ProductID:              1,
		LowStockThreshold:      5,
		CriticalStockThreshold: 10,
	})
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("inverted thresholds: got %v, want ErrInvalidArgument", err)
	}

	_, err = uc.CreateItem(context.Background(), &dto.CreateItemInput{
		ProductID:    1,
		CurrentStock: -1,
	})
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("negative stock: got %v, want ErrInvalidArgument", err)
	}
}

func TestCreateItemRejectsSecondItemForProduct(t *testing.T) {
	uc, _ := newTestUseCase(t)
	mustCreateItem(t, uc, 7, 10, 10, 5)

	_, err := uc.CreateItem(context.Background(), &dto.CreateItemInput{
		ProductID:              7,
		LowStockThreshold:      10,
		CriticalStockThreshold: 5,
	})
	if !errors.Is(err, apperr.ErrDuplicateKey) {
		t.Fatalf("second item for product: got %v, want ErrDuplicateKey", err)
	}
}

func TestAddStockRejectsNonPositiveQuantity(t *testing.T) {
	uc, repo := newTestUseCase(t)
	item := mustCreateItem(t, uc, 1, 10, 10, 5)

	for _, qty := range []int{0, -5} {
		if err := uc.AddStock(context.Background(), item.ID, qty, "restock", nil); !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("AddStock(%d): got %v, want ErrInvalidArgument", qty, err)
		}
		if err := uc.RemoveStock(context.Background(), item.ID, qty, "sale", nil); !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Fatalf("RemoveStock(%d): got %v, want ErrInvalidArgument", qty, err)
		}
	}
	if len(repo.movements) != 0 {
		t.Fatalf("rejected operations must not record movements, got %d", len(repo.movements))
	}
}

func TestAddStockRecordsMovementAndRestock(t *testing.T) {
	uc, _ := newTestUseCase(t)
	item := mustCreateItem(t, uc, 1, 10, 10, 5)

	if err := uc.AddStock(context.Background(), item.ID, 25, "weekly delivery", nil); err != nil {
		t.Fatalf("add stock: %v", err)
	}

	got, err := uc.GetItem(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if got.CurrentStock != 35 {
		t.Fatalf("stock = %d, want 35", got.CurrentStock)
	}
	if got.LastRestocked == nil {
		t.Fatal("last restocked not set")
	}

	movements, err := uc.ListMovements(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("list movements: %v", err)
	}
	if len(movements) != 1 {
		t.Fatalf("movements = %d, want 1", len(movements))
	}
	m := movements[0]
	if m.Type != model.MovementIn || m.Quantity != 25 || m.Reason != "weekly delivery" {
		t.Fatalf("unexpected movement %+v", m)
	}
}

func TestRemoveStockBoundary(t *testing.T) {
	uc, _ := newTestUseCase(t)
	item := mustCreateItem(t, uc, 1, 10, 5, 2)

	// Removing more than available fails without mutation.
	err := uc.RemoveStock(context.Background(), item.ID, 11, "sale", nil)
	if !errors.Is(err, apperr.ErrInsufficientStock) {
		t.Fatalf("overdraw: got %v, want ErrInsufficientStock", err)
	}
	got, _ := uc.GetItem(context.Background(), item.ID)
	if got.CurrentStock != 10 {
		t.Fatalf("failed removal mutated stock: %d", got.CurrentStock)
	}
	movements, _ := uc.ListMovements(context.Background(), item.ID)
	if len(movements) != 0 {
		t.Fatalf("failed removal recorded movement")
	}

	// Removing exactly the current stock drains the item to zero.
	if err := uc.RemoveStock(context.Background(), item.ID, 10, "sale", nil); err != nil {
		t.Fatalf("remove full stock: %v", err)
	}
	got, _ = uc.GetItem(context.Background(), item.ID)
	if got.CurrentStock != 0 {
		t.Fatalf("stock = %d, want 0", got.CurrentStock)
	}

	movements, _ = uc.ListMovements(context.Background(), item.ID)
	if len(movements) != 1 || movements[0].Type != model.MovementOut || movements[0].Quantity != -10 {
		t.Fatalf("unexpected movements %+v", movements)
	}
}

func TestRemoveStockMissingItem(t *testing.T) {
	uc, _ := newTestUseCase(t)
	if err := uc.RemoveStock(context.Background(), 42, 1, "sale", nil); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("missing item: got %v, want ErrNotFound", err)
	}
}

func TestStockStatusProgression(t *testing.T) {
	uc, _ := newTestUseCase(t)
	item := mustCreateItem(t, uc, 1, 100, 10, 5)

	got, _ := uc.GetItem(context.Background(), item.ID)
	if got.Status() != model.StockAdequate {
		t.Fatalf("status = %s, want ADEQUATE", got.Status())
	}

	if err := uc.RemoveStock(context.Background(), item.ID, 91, "sale", nil); err != nil {
		t.Fatalf("remove stock: %v", err)
	}
	got, _ = uc.GetItem(context.Background(), item.ID)
	if got.CurrentStock != 9 || got.Status() != model.StockLow {
		t.Fatalf("stock %d status %s, want 9 LOW", got.CurrentStock, got.Status())
	}

	if err := uc.RemoveStock(context.Background(), item.ID, 5, "sale", nil); err != nil {
		t.Fatalf("remove stock: %v", err)
	}
	got, _ = uc.GetItem(context.Background(), item.ID)
	if got.CurrentStock != 4 || got.Status() != model.StockCritical {
		t.Fatalf("stock %d status %s, want 4 CRITICAL", got.CurrentStock, got.Status())
	}
}

func TestLowStockQueryIsIdempotent(t *testing.T) {
	uc, _ := newTestUseCase(t)
	mustCreateItem(t, uc, 1, 3, 10, 5)
	mustCreateItem(t, uc, 2, 8, 10, 5)
	mustCreateItem(t, uc, 3, 50, 10, 5)

	first, err := uc.LowStockItems(context.Background())
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	second, err := uc.LowStockItems(context.Background())
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("lengths %d and %d, want 2", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].CurrentStock != second[i].CurrentStock {
			t.Fatalf("query not idempotent: %+v vs %+v", first[i], second[i])
		}
	}
	// Ascending by current stock.
	if first[0].CurrentStock > first[1].CurrentStock {
		t.Fatalf("not ordered ascending: %d before %d", first[0].CurrentStock, first[1].CurrentStock)
	}
}

func TestConcurrentRemovalsNeverOverdraw(t *testing.T) {
	uc, repo := newTestUseCase(t)
	item := mustCreateItem(t, uc, 1, 5, 2, 1)

	const callers = 20
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = uc.RemoveStock(context.Background(), item.ID, 1, "sale", nil)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, apperr.ErrInsufficientStock) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 5 {
		t.Fatalf("%d removals succeeded, want exactly 5", succeeded)
	}

	got, _ := uc.GetItem(context.Background(), item.ID)
	if got.CurrentStock != 0 {
		t.Fatalf("stock = %d, want 0", got.CurrentStock)
	}
	if len(repo.movements) != 5 {
		t.Fatalf("movements = %d, want 5", len(repo.movements))
	}
}

func TestReorderQuantityUnclamped(t *testing.T) {
	uc, _ := newTestUseCase(t)
	item, err := uc.CreateItem(context.Background(), &dto.CreateItemInput{
		ProductID:              1,
		CurrentStock:           120,
		MaximumStock:           100,
		LowStockThreshold:      10,
		CriticalStockThreshold: 5,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	qty, err := uc.ReorderQuantity(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("reorder quantity: %v", err)
	}
	if qty != -20 {
		t.Fatalf("reorder quantity = %d, want -20 (overstocked)", qty)
	}
}

func TestExpiredItemsQuery(t *testing.T) {
	uc, _ := newTestUseCase(t)
	yesterday := time.Now().AddDate(0, 0, -1)
	nextWeek := time.Now().AddDate(0, 0, 5)

	expired, err := uc.CreateItem(context.Background(), &dto.CreateItemInput{
		ProductID: 1, CurrentStock: 4, MaximumStock: 100,
		LowStockThreshold: 10, CriticalStockThreshold: 5,
		ExpirationDate: &yesterday,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if _, err := uc.CreateItem(context.Background(), &dto.CreateItemInput{
		ProductID: 2, CurrentStock: 4, MaximumStock: 100,
		LowStockThreshold: 10, CriticalStockThreshold: 5,
		ExpirationDate: &nextWeek,
	}); err != nil {
		t.Fatalf("create item: %v", err)
	}

	got, err := uc.ExpiredItems(context.Background())
	if err != nil {
		t.Fatalf("expired items: %v", err)
	}
	if len(got) != 1 || got[0].ID != expired.ID {
		t.Fatalf("expired items = %+v, want the yesterday-dated item only", got)
	}

	soon, err := uc.ExpiringSoonItems(context.Background())
	if err != nil {
		t.Fatalf("expiring soon: %v", err)
	}
	if len(soon) != 1 || soon[0].ProductID != 2 {
		t.Fatalf("expiring soon = %+v, want the next-week item only", soon)
	}
}
