// Package repomanager vends SQL-backed repositories for a dialect and runs
// the embedded schema migrations with goose.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/powclient/internal/dbx"
	"github.com/dmitrijs2005/powclient/internal/server/migrations"
	"github.com/dmitrijs2005/powclient/internal/server/repositories/blobs"
	"github.com/dmitrijs2005/powclient/internal/server/repositories/configs"
	"github.com/dmitrijs2005/powclient/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/powclient/internal/server/repositories/logs"
	"github.com/dmitrijs2005/powclient/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLRepositoryManager builds repositories for a single dialect.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	if m.dialect == dbx.DialectPostgres {
		return users.NewPostgresRepository(db)
	}
	return users.NewSQLiteRepository(db)
}

func (m *SQLRepositoryManager) Blobs(db dbx.DBTX) blobs.Repository {
	if m.dialect == dbx.DialectPostgres {
		return blobs.NewPostgresRepository(db)
	}
	return blobs.NewSQLiteRepository(db)
}

func (m *SQLRepositoryManager) Configs(db dbx.DBTX) configs.Repository {
	if m.dialect == dbx.DialectPostgres {
		return configs.NewPostgresRepository(db)
	}
	return configs.NewSQLiteRepository(db)
}

func (m *SQLRepositoryManager) Jobs(db dbx.DBTX) jobs.Repository {
	if m.dialect == dbx.DialectPostgres {
		return jobs.NewPostgresRepository(db)
	}
	return jobs.NewSQLiteRepository(db)
}

func (m *SQLRepositoryManager) Logs(db dbx.DBTX) logs.Repository {
	if m.dialect == dbx.DialectPostgres {
		return logs.NewPostgresRepository(db)
	}
	return logs.NewSQLiteRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations for the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect.GooseDialect()); err != nil {
		return err
	}

	dir := migrations.SQLiteDir
	if m.dialect == dbx.DialectPostgres {
		dir = migrations.PostgresDir
	}
	if err := gooseUpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

func NewPostgresRepositoryManager() RepositoryManager {
	return &SQLRepositoryManager{dialect: dbx.DialectPostgres}
}

func NewSQLiteRepositoryManager() RepositoryManager {
	return &SQLRepositoryManager{dialect: dbx.DialectSQLite}
}

// OpenDB opens and pings a database for the dialect. SQLite connections are
// limited to one so that in-memory databases stay shared.
func OpenDB(ctx context.Context, d dbx.Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(d.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d, err)
	}
	if d == dbx.DialectSQLite {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d, err)
	}
	return db, nil
}
