package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/cofitearia/milktea-pos/internal/model"
)

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) CreateSale(ctx context.Context, s *model.Sale) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	saleQuery := `
        INSERT INTO sales (
            transaction_number, subtotal, tax, discount, total,
            payment_method, cashier_id, sale_date,
            date_created, date_modified, notes, is_voided
        )
        VALUES (
            :transaction_number, :subtotal, :tax, :discount, :total,
            :payment_method, :cashier_id, :sale_date,
            :date_created, :date_modified, :notes, :is_voided
        )
    `
	res, err := tx.NamedExecContext(ctx, saleQuery, s)
	if err != nil {
		return err
	}
	if s.ID, err = res.LastInsertId(); err != nil {
		return err
	}

	itemQuery := `
        INSERT INTO sale_items (sale_id, product_id, quantity, unit_price, total_price)
        VALUES (:sale_id, :product_id, :quantity, :unit_price, :total_price)
    `
	for i := range s.Items {
		s.Items[i].SaleID = s.ID
		res, err := tx.NamedExecContext(ctx, itemQuery, &s.Items[i])
		if err != nil {
			return err
		}
		if s.Items[i].ID, err = res.LastInsertId(); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id int64) (*model.Sale, error) {
	var s model.Sale
	err := r.DB.GetContext(ctx, &s, `SELECT * FROM sales WHERE id = ? LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.attachItems(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteRepository) FindByTransactionNumber(ctx context.Context, txn string) (*model.Sale, error) {
	var s model.Sale
	err := r.DB.GetContext(ctx, &s, `SELECT * FROM sales WHERE transaction_number = ? LIMIT 1`, txn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.attachItems(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context, includeVoided bool) ([]model.Sale, error) {
	query := `SELECT * FROM sales`
	if !includeVoided {
		query += ` WHERE is_voided = 0`
	}
	query += ` ORDER BY sale_date DESC, id DESC`

	sales := []model.Sale{}
	if err := r.DB.SelectContext(ctx, &sales, query); err != nil {
		return nil, err
	}
	for i := range sales {
		if err := r.attachItems(ctx, &sales[i]); err != nil {
			return nil, err
		}
	}
	return sales, nil
}

func (r *SQLiteRepository) MarkVoided(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE sales SET is_voided = 1, date_modified = CURRENT_TIMESTAMP WHERE id = ? AND is_voided = 0`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *SQLiteRepository) attachItems(ctx context.Context, s *model.Sale) error {
	items := []model.SaleItem{}
	err := r.DB.SelectContext(ctx, &items,
		`SELECT * FROM sale_items WHERE sale_id = ? ORDER BY id`, s.ID)
	if err != nil {
		return err
	}
	s.Items = items
	return nil
}
