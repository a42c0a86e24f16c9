package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/powclient/internal/dbx"
	"github.com/dmitrijs2005/powclient/internal/server/repositories/blobs"
	"github.com/dmitrijs2005/powclient/internal/server/repositories/configs"
	"github.com/dmitrijs2005/powclient/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/powclient/internal/server/repositories/logs"
	"github.com/dmitrijs2005/powclient/internal/server/repositories/users"
)

type RepositoryManager interface {
	Dialect() dbx.Dialect
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Blobs(db dbx.DBTX) blobs.Repository
	Configs(db dbx.DBTX) configs.Repository
	Jobs(db dbx.DBTX) jobs.Repository
	Logs(db dbx.DBTX) logs.Repository
}
