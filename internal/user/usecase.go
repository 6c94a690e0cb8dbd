package user

import (
	"context"

	"github.com/cofitearia/milktea-pos/internal/model"
	"github.com/cofitearia/milktea-pos/internal/user/dto"
)

type UseCase interface {
	CreateUser(ctx context.Context, input *dto.CreateUserInput) (*model.User, error)

	// Authenticate compares the password against the stored bcrypt hash.
	// Unknown usernames, wrong passwords and inactive accounts all fail
	// with ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*model.User, error)

	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context, roleFilter *model.Role) ([]model.User, error)
	UpdateUser(ctx context.Context, u *model.User) (*model.User, error)
	DeactivateUser(ctx context.Context, id int64) error

	// RequirePermission returns ErrPermissionDenied unless the user's role
	// allows the action.
	RequirePermission(u *model.User, action string) error
}
