package user

import (
	"context"
	"time"

	"github.com/cofitearia/milktea-pos/internal/model"
)

type Repository interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindAll(ctx context.Context, roleFilter *model.Role) ([]model.User, error)
	Update(ctx context.Context, u *model.User) error

	// Deactivate flips is_active. Returns false if no active row matched.
	Deactivate(ctx context.Context, id int64) (bool, error)

	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}
