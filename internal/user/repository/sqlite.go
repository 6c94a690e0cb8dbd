package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/cofitearia/milktea-pos/internal/model"
)

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (
            username, password_hash, first_name, last_name, email, role,
            last_login, date_created, date_modified, is_active,
            high_contrast_mode, large_text_mode, screen_reader_enabled,
            keyboard_navigation_enabled, preferred_language
        )
        VALUES (
            :username, :password_hash, :first_name, :last_name, :email, :role,
            :last_login, :date_created, :date_modified, :is_active,
            :high_contrast_mode, :large_text_mode, :screen_reader_enabled,
            :keyboard_navigation_enabled, :preferred_language
        )
    `
	res, err := r.DB.NamedExecContext(ctx, query, u)
	if err != nil {
		return err
	}
	u.ID, err = res.LastInsertId()
	return err
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := r.DB.GetContext(ctx, &u, `SELECT * FROM users WHERE id = ? LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *SQLiteRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.DB.GetContext(ctx, &u, `SELECT * FROM users WHERE username = ? LIMIT 1`, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context, roleFilter *model.Role) ([]model.User, error) {
	query := `SELECT * FROM users WHERE is_active = 1`
	args := []interface{}{}
	if roleFilter != nil {
		query += ` AND role = ?`
		args = append(args, *roleFilter)
	}
	query += ` ORDER BY last_name, first_name`

	users := []model.User{}
	err := r.DB.SelectContext(ctx, &users, query, args...)
	return users, err
}

func (r *SQLiteRepository) Update(ctx context.Context, u *model.User) error {
	query := `
        UPDATE users
        SET username = :username, password_hash = :password_hash,
            first_name = :first_name, last_name = :last_name, email = :email,
            role = :role, is_active = :is_active,
            high_contrast_mode = :high_contrast_mode,
            large_text_mode = :large_text_mode,
            screen_reader_enabled = :screen_reader_enabled,
            keyboard_navigation_enabled = :keyboard_navigation_enabled,
            preferred_language = :preferred_language,
            date_modified = :date_modified
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, u)
	return err
}

func (r *SQLiteRepository) Deactivate(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET is_active = 0, date_modified = CURRENT_TIMESTAMP WHERE id = ? AND is_active = 1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *SQLiteRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET last_login = ? WHERE id = ?`, at, id)
	return err
}
