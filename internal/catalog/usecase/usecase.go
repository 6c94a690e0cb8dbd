package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cofitearia/milktea-pos/internal/apperr"
	"github.com/cofitearia/milktea-pos/internal/catalog"
	"github.com/cofitearia/milktea-pos/internal/catalog/dto"
	"github.com/cofitearia/milktea-pos/internal/model"
)

type catalogUseCase struct {
	repo   catalog.Repository
	logger *zap.Logger
}

func NewCatalogUseCase(repo catalog.Repository, log *zap.Logger) catalog.UseCase {
	return &catalogUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *catalogUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.Invalidf("product name is required")
	}
	if input.Price.IsNegative() {
		return nil, apperr.Invalidf("product price must not be negative")
	}

	var barcode *string
	if input.Barcode != "" {
		existing, err := uc.repo.FindByBarcode(ctx, input.Barcode)
		if err != nil {
			return nil, apperr.Storage(err, "check barcode uniqueness")
		}
		if existing != nil {
			return nil, apperr.ErrDuplicateKey
		}
		b := input.Barcode
		barcode = &b
	}

	unit := input.Unit
	if unit == "" {
		unit = "piece"
	}

	now := time.Now()
	p := &model.Product{
		BaseModel:   model.BaseModel{DateCreated: now, DateModified: now},
		Name:        name,
		Description: input.Description,
		Price:       input.Price.Round(2),
		Category:    input.Category,
		Barcode:     barcode,
		Unit:        unit,
		IsActive:    true,
	}
	if input.AltText != "" {
		p.AltText = &input.AltText
	}
	if input.LargeTextDescription != "" {
		p.LargeTextDescription = &input.LargeTextDescription
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, apperr.Storage(err, "create product")
	}
	uc.logger.Info("product created", zap.Int64("product_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

func (uc *catalogUseCase) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Storage(err, "find product")
	}
	if p == nil {
		return nil, apperr.ErrNotFound
	}
	return p, nil
}

func (uc *catalogUseCase) ListProducts(ctx context.Context, activeOnly bool) ([]model.Product, error) {
	products, err := uc.repo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, apperr.Storage(err, "list products")
	}
	return products, nil
}

func (uc *catalogUseCase) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	products, err := uc.repo.FindByCategory(ctx, category)
	if err != nil {
		return nil, apperr.Storage(err, "list products by category")
	}
	return products, nil
}

func (uc *catalogUseCase) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := uc.repo.Categories(ctx)
	if err != nil {
		return nil, apperr.Storage(err, "list categories")
	}
	return categories, nil
}

func (uc *catalogUseCase) UpdateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, apperr.Invalidf("product name is required")
	}
	if p.Price.IsNegative() {
		return nil, apperr.Invalidf("product price must not be negative")
	}

	existing, err := uc.repo.FindByID(ctx, p.ID)
	if err != nil {
		return nil, apperr.Storage(err, "find product")
	}
	if existing == nil {
		return nil, apperr.ErrNotFound
	}

	if p.Barcode != nil && *p.Barcode != "" {
		other, err := uc.repo.FindByBarcode(ctx, *p.Barcode)
		if err != nil {
			return nil, apperr.Storage(err, "check barcode uniqueness")
		}
		if other != nil && other.ID != p.ID {
			return nil, apperr.ErrDuplicateKey
		}
	}

	p.Price = p.Price.Round(2)
	p.DateModified = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, apperr.Storage(err, "update product")
	}
	return p, nil
}

func (uc *catalogUseCase) DeleteProduct(ctx context.Context, id int64) error {
	found, err := uc.repo.SoftDelete(ctx, id)
	if err != nil {
		return apperr.Storage(err, "delete product")
	}
	if !found {
		return apperr.ErrNotFound
	}
	uc.logger.Info("product deactivated", zap.Int64("product_id", id))
	return nil
}

func (uc *catalogUseCase) SearchProducts(ctx context.Context, term string) ([]model.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return uc.ListProducts(ctx, true)
	}
	products, err := uc.repo.Search(ctx, term)
	if err != nil {
		return nil, apperr.Storage(err, "search products")
	}
	return products, nil
}
