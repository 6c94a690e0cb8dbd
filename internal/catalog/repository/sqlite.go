package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/cofitearia/milktea-pos/internal/model"
)

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            name, description, price, category, barcode, unit,
            date_created, date_modified, is_active, alt_text, large_text_description
        )
        VALUES (
            :name, :description, :price, :category, :barcode, :unit,
            :date_created, :date_modified, :is_active, :alt_text, :large_text_description
        )
    `
	res, err := r.DB.NamedExecContext(ctx, query, p)
	if err != nil {
		return err
	}
	p.ID, err = res.LastInsertId()
	return err
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	err := r.DB.GetContext(ctx, &p,
		`SELECT * FROM products WHERE id = ? AND is_active = 1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context, activeOnly bool) ([]model.Product, error) {
	query := `SELECT * FROM products`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY name`

	products := []model.Product{}
	err := r.DB.SelectContext(ctx, &products, query)
	return products, err
}

func (r *SQLiteRepository) FindByCategory(ctx context.Context, category string) ([]model.Product, error) {
	products := []model.Product{}
	err := r.DB.SelectContext(ctx, &products,
		`SELECT * FROM products WHERE category = ? AND is_active = 1 ORDER BY name`, category)
	return products, err
}

func (r *SQLiteRepository) FindByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	var p model.Product
	err := r.DB.GetContext(ctx, &p,
		`SELECT * FROM products WHERE barcode = ? AND is_active = 1 LIMIT 1`, barcode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *SQLiteRepository) Search(ctx context.Context, term string) ([]model.Product, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	query := `
        SELECT * FROM products
        WHERE is_active = 1
          AND (LOWER(name) LIKE ? OR LOWER(IFNULL(description, '')) LIKE ? OR LOWER(IFNULL(barcode, '')) LIKE ?)
        ORDER BY name
    `
	products := []model.Product{}
	err := r.DB.SelectContext(ctx, &products, query, pattern, pattern, pattern)
	return products, err
}

func (r *SQLiteRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET name = :name, description = :description, price = :price,
            category = :category, barcode = :barcode, unit = :unit,
            is_active = :is_active, alt_text = :alt_text,
            large_text_description = :large_text_description,
            date_modified = :date_modified
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *SQLiteRepository) SoftDelete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE products SET is_active = 0, date_modified = CURRENT_TIMESTAMP WHERE id = ? AND is_active = 1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *SQLiteRepository) Categories(ctx context.Context) ([]string, error) {
	categories := []string{}
	err := r.DB.SelectContext(ctx, &categories,
		`SELECT DISTINCT category FROM products WHERE is_active = 1 AND category <> '' ORDER BY category`)
	return categories, err
}
