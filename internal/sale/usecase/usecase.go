package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cofitearia/milktea-pos/internal/apperr"
	"github.com/cofitearia/milktea-pos/internal/model"
	"github.com/cofitearia/milktea-pos/internal/sale"
)

type saleUseCase struct {
	repo           sale.Repository
	inventory      sale.Inventory
	defaultTaxRate decimal.Decimal
	logger         *zap.Logger
}

// NewSaleUseCase rejects a negative default tax rate up front so a
// misconfigured rate cannot silently produce zero-tax carts.
func NewSaleUseCase(repo sale.Repository, inv sale.Inventory, defaultTaxRate decimal.Decimal, log *zap.Logger) (sale.UseCase, error) {
	if defaultTaxRate.IsNegative() {
		return nil, apperr.Invalidf("default tax rate must not be negative, got %s", defaultTaxRate)
	}
	return &saleUseCase{
		repo:           repo,
		inventory:      inv,
		defaultTaxRate: defaultTaxRate,
		logger:         log,
	}, nil
}

func (uc *saleUseCase) NewCart() *sale.Cart {
	c := sale.NewCart()
	// The rate was validated at construction; ApplyTax cannot fail on a
	// fresh cart.
	_ = c.ApplyTax(uc.defaultTaxRate)
	return c
}

func (uc *saleUseCase) Checkout(ctx context.Context, cart *sale.Cart, paymentMethod string, cashier *model.User) (*model.Sale, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, apperr.ErrEmptyCart
	}
	if cart.Finalized() {
		return nil, apperr.ErrSaleFinalized
	}
	if cashier != nil && !cashier.HasPermission(model.ActionProcessSale) {
		return nil, apperr.ErrPermissionDenied
	}

	var cashierID *int64
	if cashier != nil {
		id := cashier.ID
		cashierID = &id
	}

	undo, err := uc.deductStock(ctx, cart.Lines(), cashierID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s := &model.Sale{
		BaseModel:         model.BaseModel{DateCreated: now, DateModified: now},
		TransactionNumber: "TXN-" + uuid.New().String(),
		Subtotal:          cart.Subtotal(),
		Tax:               cart.Tax(),
		Discount:          cart.Discount(),
		Total:             cart.Total(),
		PaymentMethod:     paymentMethod,
		CashierID:         cashierID,
		SaleDate:          now,
	}
	for _, l := range cart.Lines() {
		s.Items = append(s.Items, model.SaleItem{
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			TotalPrice: l.TotalPrice(),
		})
	}

	if err := uc.repo.CreateSale(ctx, s); err != nil {
		undo()
		return nil, apperr.Storage(err, "persist sale")
	}

	cart.Finalize()

	uc.logger.Info("sale finalized",
		zap.String("transaction_number", s.TransactionNumber),
		zap.Int("items", s.ItemCount()),
		zap.String("total", s.Total.StringFixed(2)))
	return s, nil
}

// deductStock removes stock for every stock-tracked line. Products without an
// inventory item are sold untracked. If a later line fails, earlier
// deductions are compensated with an adjustment so the ledger is not left
// half-deducted. The returned undo applies the same compensation; the caller
// invokes it when the sale cannot be persisted after deduction succeeded.
func (uc *saleUseCase) deductStock(ctx context.Context, lines []sale.Line, cashierID *int64) (undo func(), err error) {
	type deducted struct {
		itemID int64
		qty    int
	}
	applied := []deducted{}

	undo = func() {
		for _, d := range applied {
			if err := uc.inventory.AdjustStock(ctx, d.itemID, d.qty, "checkout rollback", cashierID); err != nil {
				uc.logger.Error("checkout rollback failed",
					zap.Int64("item_id", d.itemID), zap.Int("quantity", d.qty), zap.Error(err))
			}
		}
	}

	for _, l := range lines {
		item, err := uc.inventory.ItemByProduct(ctx, l.ProductID)
		if err != nil {
			undo()
			return nil, err
		}
		if item == nil {
			continue
		}

		if err := uc.inventory.RemoveStock(ctx, item.ID, l.Quantity, "sale", cashierID); err != nil {
			undo()
			return nil, err
		}
		applied = append(applied, deducted{itemID: item.ID, qty: l.Quantity})
	}
	return undo, nil
}

func (uc *saleUseCase) VoidSale(ctx context.Context, saleID int64) error {
	found, err := uc.repo.MarkVoided(ctx, saleID)
	if err != nil {
		return apperr.Storage(err, "void sale")
	}
	if !found {
		return apperr.ErrNotFound
	}
	uc.logger.Info("sale voided", zap.Int64("sale_id", saleID))
	return nil
}

func (uc *saleUseCase) GetSale(ctx context.Context, id int64) (*model.Sale, error) {
	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Storage(err, "find sale")
	}
	if s == nil {
		return nil, apperr.ErrNotFound
	}
	return s, nil
}

func (uc *saleUseCase) ListSales(ctx context.Context, includeVoided bool) ([]model.Sale, error) {
	sales, err := uc.repo.FindAll(ctx, includeVoided)
	if err != nil {
		return nil, apperr.Storage(err, "list sales")
	}
	return sales, nil
}
