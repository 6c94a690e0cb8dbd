package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/cofitearia/milktea-pos/internal/apperr"
	"github.com/cofitearia/milktea-pos/internal/model"
	"github.com/cofitearia/milktea-pos/internal/user"
	"github.com/cofitearia/milktea-pos/internal/user/dto"
)

type userUseCase struct {
	repo   user.Repository
	logger *zap.Logger
}

func NewUserUseCase(repo user.Repository, log *zap.Logger) user.UseCase {
	return &userUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *userUseCase) CreateUser(ctx context.Context, input *dto.CreateUserInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, apperr.Invalidf("username is required")
	}
	if input.Password == "" {
		return nil, apperr.Invalidf("password is required")
	}
	if !input.Role.Valid() {
		return nil, apperr.Invalidf("unknown role %q", input.Role)
	}
	if input.Email != "" && !strings.Contains(input.Email, "@") {
		return nil, apperr.Invalidf("malformed email %q", input.Email)
	}

	existing, err := uc.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Storage(err, "check username uniqueness")
	}
	if existing != nil {
		return nil, apperr.ErrDuplicateKey
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	lang := input.PreferredLanguage
	if lang == "" {
		lang = "en"
	}

	now := time.Now()
	u := &model.User{
		BaseModel:    model.BaseModel{DateCreated: now, DateModified: now},
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Role:         input.Role,
		IsActive:     true,

		HighContrastMode:          input.HighContrastMode,
		LargeTextMode:             input.LargeTextMode,
		ScreenReaderEnabled:       input.ScreenReaderEnabled,
		KeyboardNavigationEnabled: input.KeyboardNavigationEnabled,
		PreferredLanguage:         lang,
	}

	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, apperr.Storage(err, "create user")
	}
	uc.logger.Info("user created", zap.Int64("user_id", u.ID),
		zap.String("username", u.Username), zap.String("role", string(u.Role)))
	return u, nil
}

func (uc *userUseCase) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	u, err := uc.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Storage(err, "find user")
	}
	if u == nil || !u.IsActive {
		return nil, apperr.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		uc.logger.Warn("authentication failed", zap.String("username", username))
		return nil, apperr.ErrInvalidCredentials
	}

	now := time.Now()
	if err := uc.repo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		// Login still succeeds; the timestamp is best effort.
		uc.logger.Warn("failed to record last login", zap.Int64("user_id", u.ID), zap.Error(err))
	} else {
		u.LastLogin = &now
	}

	return u, nil
}

func (uc *userUseCase) GetUser(ctx context.Context, id int64) (*model.User, error) {
	u, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Storage(err, "find user")
	}
	if u == nil {
		return nil, apperr.ErrNotFound
	}
	return u, nil
}

func (uc *userUseCase) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	u, err := uc.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Storage(err, "find user")
	}
	if u == nil {
		return nil, apperr.ErrNotFound
	}
	return u, nil
}

func (uc *userUseCase) ListUsers(ctx context.Context, roleFilter *model.Role) ([]model.User, error) {
	users, err := uc.repo.FindAll(ctx, roleFilter)
	if err != nil {
		return nil, apperr.Storage(err, "list users")
	}
	return users, nil
}

func (uc *userUseCase) UpdateUser(ctx context.Context, u *model.User) (*model.User, error) {
	if strings.TrimSpace(u.Username) == "" {
		return nil, apperr.Invalidf("username is required")
	}
	if !u.Role.Valid() {
		return nil, apperr.Invalidf("unknown role %q", u.Role)
	}
	if u.Email != "" && !strings.Contains(u.Email, "@") {
		return nil, apperr.Invalidf("malformed email %q", u.Email)
	}

	existing, err := uc.repo.FindByID(ctx, u.ID)
	if err != nil {
		return nil, apperr.Storage(err, "find user")
	}
	if existing == nil {
		return nil, apperr.ErrNotFound
	}

	other, err := uc.repo.FindByUsername(ctx, u.Username)
	if err != nil {
		return nil, apperr.Storage(err, "check username uniqueness")
	}
	if other != nil && other.ID != u.ID {
		return nil, apperr.ErrDuplicateKey
	}

	u.DateModified = time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, apperr.Storage(err, "update user")
	}
	return u, nil
}

func (uc *userUseCase) DeactivateUser(ctx context.Context, id int64) error {
	found, err := uc.repo.Deactivate(ctx, id)
	if err != nil {
		return apperr.Storage(err, "deactivate user")
	}
	if !found {
		return apperr.ErrNotFound
	}
	uc.logger.Info("user deactivated", zap.Int64("user_id", id))
	return nil
}

func (uc *userUseCase) RequirePermission(u *model.User, action string) error {
	if u == nil || !u.HasPermission(action) {
		return apperr.ErrPermissionDenied
	}
	return nil
}
