package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

type Config struct {
	Path          string
	MaxOpenConns  int
	BusyTimeoutMS int
}

// NewSQLite opens the embedded store. Foreign keys are enabled per
// connection; the busy timeout keeps concurrent writers from failing fast
// with SQLITE_BUSY.
func NewSQLite(cfg *Config) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=%d&_loc=auto", cfg.Path, cfg.BusyTimeoutMS)

	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	return db, nil
}
