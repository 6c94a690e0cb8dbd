package catalog

import (
	"context"

	"github.com/cofitearia/milktea-pos/internal/model"
)

type Repository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	FindAll(ctx context.Context, activeOnly bool) ([]model.Product, error)
	FindByCategory(ctx context.Context, category string) ([]model.Product, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.Product, error)
	Search(ctx context.Context, term string) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error

	// SoftDelete flips is_active. Returns false if no active row matched.
	SoftDelete(ctx context.Context, id int64) (bool, error)

	Categories(ctx context.Context) ([]string, error)
}
