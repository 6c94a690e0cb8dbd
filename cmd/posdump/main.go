// Command posdump prints the contents of the POS database as formatted
// tables on stdout. Debug tooling only; it is not part of the ledger
// contract.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cofitearia/milktea-pos/config"
	catalogRepoPkg "github.com/cofitearia/milktea-pos/internal/catalog/repository"
	"github.com/cofitearia/milktea-pos/internal/database"
	invRepoPkg "github.com/cofitearia/milktea-pos/internal/inventory/repository"
	"github.com/cofitearia/milktea-pos/internal/logger"
	"github.com/cofitearia/milktea-pos/internal/model"
	saleRepoPkg "github.com/cofitearia/milktea-pos/internal/sale/repository"
	userRepoPkg "github.com/cofitearia/milktea-pos/internal/user/repository"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	appLogger, err := logger.New(&logger.Config{
		IsDevelopment:     cfg.Server.AppEnv == "development",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer appLogger.Sync()

	db, err := database.NewSQLite(&database.Config{
		Path:          cfg.SQLite.Path,
		MaxOpenConns:  cfg.SQLite.MaxOpenConns,
		BusyTimeoutMS: cfg.SQLite.BusyTimeoutMS,
	})
	if err != nil {
		appLogger.Fatal("could not open database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		appLogger.Fatal("could not migrate schema", zap.Error(err))
	}
	appLogger.Info("opened database", zap.String("path", cfg.SQLite.Path))

	ctx := context.Background()
	if err := dumpAll(ctx, db); err != nil {
		appLogger.Fatal("dump failed", zap.Error(err))
	}
}

func dumpAll(ctx context.Context, db *sqlx.DB) error {
	if err := dumpUsers(ctx, db); err != nil {
		return err
	}
	if err := dumpProducts(ctx, db); err != nil {
		return err
	}
	if err := dumpInventory(ctx, db); err != nil {
		return err
	}
	if err := dumpSales(ctx, db); err != nil {
		return err
	}
	if err := dumpMovements(ctx, db); err != nil {
		return err
	}
	if err := dumpSettings(ctx, db); err != nil {
		return err
	}
	return dumpStats(ctx, db)
}

func newTable(header ...interface{}) *tabwriter.Writer {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	format := ""
	for range header {
		format += "%v\t"
	}
	fmt.Fprintf(w, format+"\n", header...)
	return w
}

func dumpUsers(ctx context.Context, db *sqlx.DB) error {
	users, err := userRepoPkg.NewSQLiteRepository(db).FindAll(ctx, nil)
	if err != nil {
		return err
	}

	fmt.Println("\n=== USERS ===")
	w := newTable("ID", "USERNAME", "ROLE", "NAME", "EMAIL", "ACTIVE", "LAST LOGIN")
	for _, u := range users {
		lastLogin := "-"
		if u.LastLogin != nil {
			lastLogin = u.LastLogin.Format(time.DateTime)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%t\t%s\n",
			u.ID, u.Username, u.Role, u.FullName(), u.Email, u.IsActive, lastLogin)
	}
	return w.Flush()
}

func dumpProducts(ctx context.Context, db *sqlx.DB) error {
	products, err := catalogRepoPkg.NewSQLiteRepository(db).FindAll(ctx, false)
	if err != nil {
		return err
	}

	fmt.Println("\n=== PRODUCTS ===")
	w := newTable("ID", "NAME", "PRICE", "CATEGORY", "BARCODE", "UNIT", "ACTIVE")
	for _, p := range products {
		barcode := "-"
		if p.Barcode != nil {
			barcode = *p.Barcode
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%t\n",
			p.ID, p.Name, p.Price.StringFixed(2), p.Category, barcode, p.Unit, p.IsActive)
	}
	return w.Flush()
}

func dumpInventory(ctx context.Context, db *sqlx.DB) error {
	items, err := invRepoPkg.NewSQLiteRepository(db).FindAll(ctx)
	if err != nil {
		return err
	}

	fmt.Println("\n=== INVENTORY ===")
	w := newTable("ID", "PRODUCT", "CURRENT", "MIN", "MAX", "STATUS", "SUPPLIER", "LOCATION", "EXPIRES")
	for i := range items {
		it := &items[i]
		name := fmt.Sprintf("product %d", it.ProductID)
		if it.Product != nil {
			name = it.Product.Name
		}
		expires := "-"
		if it.ExpirationDate != nil {
			expires = it.ExpirationDate.Format(time.DateOnly)
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%s\t%s\t%s\t%s\n",
			it.ID, name, it.CurrentStock, it.MinimumStock, it.MaximumStock,
			it.Status(), it.Supplier, it.Location, expires)
	}
	return w.Flush()
}

func dumpSales(ctx context.Context, db *sqlx.DB) error {
	sales, err := saleRepoPkg.NewSQLiteRepository(db).FindAll(ctx, true)
	if err != nil {
		return err
	}

	fmt.Println("\n=== SALES ===")
	w := newTable("ID", "TRANSACTION", "SUBTOTAL", "TAX", "DISCOUNT", "TOTAL", "PAYMENT", "ITEMS", "VOIDED", "DATE")
	for i := range sales {
		s := &sales[i]
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t%t\t%s\n",
			s.ID, s.TransactionNumber,
			s.Subtotal.StringFixed(2), s.Tax.StringFixed(2),
			s.Discount.StringFixed(2), s.Total.StringFixed(2),
			s.PaymentMethod, s.ItemCount(), s.IsVoided,
			s.SaleDate.Format(time.DateTime))
	}
	return w.Flush()
}

func dumpMovements(ctx context.Context, db *sqlx.DB) error {
	movements := []model.StockMovement{}
	err := db.SelectContext(ctx, &movements,
		`SELECT * FROM stock_movements ORDER BY date_created DESC, id DESC LIMIT 50`)
	if err != nil {
		return err
	}

	fmt.Println("\n=== STOCK MOVEMENTS (last 50) ===")
	w := newTable("ID", "ITEM", "TYPE", "QTY", "REASON", "USER", "DATE")
	for i := range movements {
		m := &movements[i]
		user := "-"
		if m.UserID != nil {
			user = fmt.Sprintf("%d", *m.UserID)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%s\t%s\t%s\n",
			m.ID, m.InventoryItemID, m.Type, m.Quantity, m.Reason, user,
			m.DateCreated.Format(time.DateTime))
	}
	return w.Flush()
}

func dumpSettings(ctx context.Context, db *sqlx.DB) error {
	type setting struct {
		Key         string  `db:"setting_key"`
		Value       *string `db:"setting_value"`
		Description *string `db:"description"`
	}
	settings := []setting{}
	err := db.SelectContext(ctx, &settings,
		`SELECT setting_key, setting_value, description FROM system_settings ORDER BY setting_key`)
	if err != nil {
		return err
	}

	fmt.Println("\n=== SYSTEM SETTINGS ===")
	w := newTable("KEY", "VALUE", "DESCRIPTION")
	for _, s := range settings {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Key, strOr(s.Value), strOr(s.Description))
	}
	return w.Flush()
}

func dumpStats(ctx context.Context, db *sqlx.DB) error {
	fmt.Println("\n=== STATS ===")
	w := newTable("TABLE", "ROWS")
	for _, table := range []string{"users", "products", "inventory_items", "sales", "sale_items", "stock_movements"} {
		var n int
		if err := db.GetContext(ctx, &n, "SELECT count(*) FROM "+table); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\n", table, n)
	}
	return w.Flush()
}

func strOr(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
