package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/cofitearia/milktea-pos/internal/apperr"
	"github.com/cofitearia/milktea-pos/internal/model"
)

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

const insertMovement = `
    INSERT INTO stock_movements (
        id, inventory_item_id, movement_type, quantity, reason, user_id, date_created
    )
    VALUES (
        :id, :inventory_item_id, :movement_type, :quantity, :reason, :user_id, :date_created
    )
`

func (r *SQLiteRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	query := `
        INSERT INTO inventory_items (
            product_id, current_stock, minimum_stock, maximum_stock, cost_price,
            expiration_date, supplier, location, last_restocked,
            date_created, date_modified, is_active,
            low_stock_threshold, critical_stock_threshold
        )
        VALUES (
            :product_id, :current_stock, :minimum_stock, :maximum_stock, :cost_price,
            :expiration_date, :supplier, :location, :last_restocked,
            :date_created, :date_modified, :is_active,
            :low_stock_threshold, :critical_stock_threshold
        )
    `
	res, err := r.DB.NamedExecContext(ctx, query, item)
	if err != nil {
		return err
	}
	item.ID, err = res.LastInsertId()
	return err
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id int64) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.DB.GetContext(ctx, &item,
		`SELECT * FROM inventory_items WHERE id = ? AND is_active = 1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.attachProducts(ctx, []*model.InventoryItem{&item}); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *SQLiteRepository) FindByProduct(ctx context.Context, productID int64) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.DB.GetContext(ctx, &item,
		`SELECT * FROM inventory_items WHERE product_id = ? AND is_active = 1 LIMIT 1`, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.attachProducts(ctx, []*model.InventoryItem{&item}); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context) ([]model.InventoryItem, error) {
	return r.selectItems(ctx, `SELECT * FROM inventory_items WHERE is_active = 1 ORDER BY id`)
}

func (r *SQLiteRepository) Update(ctx context.Context, item *model.InventoryItem) error {
	query := `
        UPDATE inventory_items
        SET current_stock = :current_stock, minimum_stock = :minimum_stock,
            maximum_stock = :maximum_stock, cost_price = :cost_price,
            expiration_date = :expiration_date, supplier = :supplier,
            location = :location, last_restocked = :last_restocked,
            low_stock_threshold = :low_stock_threshold,
            critical_stock_threshold = :critical_stock_threshold,
            date_modified = :date_modified
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, item)
	return err
}

func (r *SQLiteRepository) Deactivate(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE inventory_items SET is_active = 0, date_modified = CURRENT_TIMESTAMP WHERE id = ? AND is_active = 1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *SQLiteRepository) AdjustWithMovement(ctx context.Context, itemID int64, delta int, setRestocked bool, m *model.StockMovement) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Guarded update: the WHERE clause rejects any delta that would drive
	// the stock negative, so check and mutation are a single statement.
	query := `
        UPDATE inventory_items
        SET current_stock = current_stock + ?, date_modified = ?
        WHERE id = ? AND is_active = 1 AND current_stock + ? >= 0
    `
	args := []interface{}{delta, time.Now(), itemID, delta}
	if setRestocked {
		query = `
            UPDATE inventory_items
            SET current_stock = current_stock + ?, last_restocked = ?, date_modified = ?
            WHERE id = ? AND is_active = 1 AND current_stock + ? >= 0
        `
		args = []interface{}{delta, time.Now(), time.Now(), itemID, delta}
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists int
		err := tx.GetContext(ctx, &exists,
			`SELECT 1 FROM inventory_items WHERE id = ? AND is_active = 1`, itemID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.ErrNotFound
		}
		if err != nil {
			return err
		}
		return apperr.ErrInsufficientStock
	}

	if _, err := tx.NamedExecContext(ctx, insertMovement, m); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *SQLiteRepository) FindLowStock(ctx context.Context) ([]model.InventoryItem, error) {
	return r.selectItems(ctx, `
        SELECT * FROM inventory_items
        WHERE is_active = 1 AND current_stock <= low_stock_threshold
        ORDER BY current_stock ASC, id ASC
    `)
}

func (r *SQLiteRepository) FindCriticalStock(ctx context.Context) ([]model.InventoryItem, error) {
	return r.selectItems(ctx, `
        SELECT * FROM inventory_items
        WHERE is_active = 1 AND current_stock <= critical_stock_threshold
        ORDER BY current_stock ASC, id ASC
    `)
}

func (r *SQLiteRepository) FindExpired(ctx context.Context, now time.Time) ([]model.InventoryItem, error) {
	return r.selectItems(ctx, `
        SELECT * FROM inventory_items
        WHERE is_active = 1 AND current_stock > 0
          AND expiration_date IS NOT NULL AND date(expiration_date) < date(?)
        ORDER BY expiration_date ASC
    `, now)
}

func (r *SQLiteRepository) FindExpiringSoon(ctx context.Context, now time.Time) ([]model.InventoryItem, error) {
	return r.selectItems(ctx, `
        SELECT * FROM inventory_items
        WHERE is_active = 1
          AND expiration_date IS NOT NULL
          AND date(expiration_date) >= date(?)
          AND date(expiration_date) < date(?)
        ORDER BY expiration_date ASC
    `, now, now.AddDate(0, 0, 7))
}

func (r *SQLiteRepository) ListMovements(ctx context.Context, itemID int64) ([]model.StockMovement, error) {
	movements := []model.StockMovement{}
	err := r.DB.SelectContext(ctx, &movements, `
        SELECT * FROM stock_movements
        WHERE inventory_item_id = ?
        ORDER BY date_created DESC, id DESC
    `, itemID)
	return movements, err
}

func (r *SQLiteRepository) selectItems(ctx context.Context, query string, args ...interface{}) ([]model.InventoryItem, error) {
	items := []model.InventoryItem{}
	if err := r.DB.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}

	ptrs := make([]*model.InventoryItem, len(items))
	for i := range items {
		ptrs[i] = &items[i]
	}
	if err := r.attachProducts(ctx, ptrs); err != nil {
		return nil, err
	}
	return items, nil
}

// attachProducts batch-loads the referenced products and joins them in
// memory.
func (r *SQLiteRepository) attachProducts(ctx context.Context, items []*model.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(items))
	seen := map[int64]bool{}
	for _, it := range items {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}

	query, args, err := sqlx.In(`SELECT * FROM products WHERE id IN (?)`, ids)
	if err != nil {
		return err
	}
	query = r.DB.Rebind(query)

	products := []model.Product{}
	if err := r.DB.SelectContext(ctx, &products, query, args...); err != nil {
		return err
	}

	byID := make(map[int64]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for _, it := range items {
		it.Product = byID[it.ProductID]
	}
	return nil
}
