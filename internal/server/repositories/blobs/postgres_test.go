package blobs

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/powclient/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestPostgresPut(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`INSERT INTO blobs \(cid, data, size, created_at\) VALUES \(\$1, \$2, \$3, \$4\) ON CONFLICT \(cid\) DO NOTHING`).
		WithArgs("cid-1", []byte("abc"), int64(3), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Put(context.Background(), "cid-1", []byte("abc")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPut_Error(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`INSERT INTO blobs`).WillReturnError(errors.New("disk full"))

	err := repo.Put(context.Background(), "cid-1", []byte("abc"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestPostgresGet(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT data FROM blobs WHERE cid = \$1`).
		WithArgs("cid-1").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte("abc")))
	mock.ExpectQuery(`SELECT data FROM blobs WHERE cid = \$1`).
		WithArgs("cid-2").
		WillReturnError(sql.ErrNoRows)

	got, err := repo.Get(context.Background(), "cid-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	_, err = repo.Get(context.Background(), "cid-2")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
