package database

import "github.com/jmoiron/sqlx"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT,
		role TEXT NOT NULL CHECK(role IN ('OWNER', 'MANAGER', 'STAFF', 'PWD_STAFF')),
		last_login DATETIME,
		date_created DATETIME DEFAULT CURRENT_TIMESTAMP,
		date_modified DATETIME DEFAULT CURRENT_TIMESTAMP,
		is_active BOOLEAN DEFAULT 1,
		high_contrast_mode BOOLEAN DEFAULT 0,
		large_text_mode BOOLEAN DEFAULT 0,
		screen_reader_enabled BOOLEAN DEFAULT 0,
		keyboard_navigation_enabled BOOLEAN DEFAULT 1,
		preferred_language TEXT DEFAULT 'en'
	)`,

	`CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		price DECIMAL(10,2) NOT NULL,
		category TEXT,
		barcode TEXT UNIQUE,
		unit TEXT DEFAULT 'piece',
		date_created DATETIME DEFAULT CURRENT_TIMESTAMP,
		date_modified DATETIME DEFAULT CURRENT_TIMESTAMP,
		is_active BOOLEAN DEFAULT 1,
		alt_text TEXT,
		large_text_description TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS inventory_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id INTEGER NOT NULL,
		current_stock INTEGER NOT NULL DEFAULT 0,
		minimum_stock INTEGER NOT NULL DEFAULT 0,
		maximum_stock INTEGER DEFAULT 1000,
		cost_price DECIMAL(10,2),
		expiration_date DATE,
		supplier TEXT,
		location TEXT,
		last_restocked DATE,
		date_created DATETIME DEFAULT CURRENT_TIMESTAMP,
		date_modified DATETIME DEFAULT CURRENT_TIMESTAMP,
		is_active BOOLEAN DEFAULT 1,
		low_stock_threshold INTEGER DEFAULT 10,
		critical_stock_threshold INTEGER DEFAULT 5,
		FOREIGN KEY (product_id) REFERENCES products (id)
	)`,

	`CREATE TABLE IF NOT EXISTS sales (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		transaction_number TEXT UNIQUE NOT NULL,
		subtotal DECIMAL(10,2) NOT NULL DEFAULT 0,
		tax DECIMAL(10,2) DEFAULT 0,
		discount DECIMAL(10,2) DEFAULT 0,
		total DECIMAL(10,2) NOT NULL DEFAULT 0,
		payment_method TEXT,
		cashier_id INTEGER,
		sale_date DATETIME DEFAULT CURRENT_TIMESTAMP,
		date_created DATETIME DEFAULT CURRENT_TIMESTAMP,
		date_modified DATETIME DEFAULT CURRENT_TIMESTAMP,
		notes TEXT,
		is_voided BOOLEAN DEFAULT 0,
		FOREIGN KEY (cashier_id) REFERENCES users (id)
	)`,

	`CREATE TABLE IF NOT EXISTS sale_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sale_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		quantity INTEGER NOT NULL,
		unit_price DECIMAL(10,2) NOT NULL,
		total_price DECIMAL(10,2) NOT NULL,
		FOREIGN KEY (sale_id) REFERENCES sales (id),
		FOREIGN KEY (product_id) REFERENCES products (id)
	)`,

	`CREATE TABLE IF NOT EXISTS stock_movements (
		id TEXT PRIMARY KEY,
		inventory_item_id INTEGER NOT NULL,
		movement_type TEXT NOT NULL CHECK(movement_type IN ('IN', 'OUT', 'ADJUSTMENT')),
		quantity INTEGER NOT NULL,
		reason TEXT,
		user_id INTEGER,
		date_created DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (inventory_item_id) REFERENCES inventory_items (id),
		FOREIGN KEY (user_id) REFERENCES users (id)
	)`,

	`CREATE TABLE IF NOT EXISTS system_settings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		setting_key TEXT UNIQUE NOT NULL,
		setting_value TEXT,
		description TEXT,
		date_modified DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE INDEX IF NOT EXISTS idx_products_barcode ON products (barcode)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category)`,
	`CREATE INDEX IF NOT EXISTS idx_inventory_product ON inventory_items (product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_txn ON sales (transaction_number)`,
	`CREATE INDEX IF NOT EXISTS idx_sale_items_sale ON sale_items (sale_id)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_item ON stock_movements (inventory_item_id)`,
}

// Migrate creates the schema if it does not exist yet. Safe to run on every
// startup.
func Migrate(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
