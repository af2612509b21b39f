package db

import (
	"context"
	"errors"
	"fmt"

	"infinite-experiment/shiplog/internal/config"
	"infinite-experiment/shiplog/internal/logging"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// Store holds the open handles to the shipment database. SQL serves the
// reporter's read queries, ORM serves schema creation and loading.
type Store struct {
	SQL    *sqlx.DB
	ORM    *gorm.DB
	driver string
	shared bool
}

// Open connects to the configured database. The caller owns the Store and
// must Close it.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		sqlConn, orm, err := openSQLite(cfg.Path)
		if err != nil {
			return nil, err
		}
		logging.Debug("Opened sqlite store", "path", cfg.Path)
		return &Store{SQL: sqlConn, ORM: orm, driver: config.DriverSQLite, shared: true}, nil

	case config.DriverPostgres:
		dsn := cfg.DSN()
		sqlConn, err := connectPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		orm, err := openPostgresORM(dsn)
		if err != nil {
			sqlConn.Close()
			return nil, err
		}
		logging.Debug("Opened postgres store", "host", cfg.Host, "database", cfg.Name)
		return &Store{SQL: sqlConn, ORM: orm, driver: config.DriverPostgres}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Driver reports which backend the store is connected to.
func (s *Store) Driver() string {
	return s.driver
}

// Close releases every connection the store holds. It is safe to call more
// than once.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.SQL != nil {
		if err := s.SQL.Close(); err != nil {
			errs = append(errs, err)
		}
		s.SQL = nil
	}
	if s.ORM != nil {
		if !s.shared {
			if sqlDB, err := s.ORM.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					errs = append(errs, err)
				}
			}
		}
		s.ORM = nil
	}
	return errors.Join(errs...)
}
