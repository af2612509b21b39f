package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openSQLite opens one pool and shares it between GORM and sqlx.
func openSQLite(path string) (*sqlx.DB, *gorm.DB, error) {
	orm, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}

	sqlDB, err := orm.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sqlite handle: %w", err)
	}
	if path == ":memory:" {
		// every new connection would see an empty database
		sqlDB.SetMaxOpenConns(1)
	}

	return sqlx.NewDb(sqlDB, "sqlite3"), orm, nil
}
