package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/and161185/budget-keeper/internal/errs"
	"github.com/and161185/budget-keeper/internal/store"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

func TestStateRepo_Get(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewStateRepo(db, "")
	ctx := context.Background()

	mock.ExpectQuery(`SELECT value FROM client_state WHERE profile=\$1 AND key=\$2`).
		WithArgs(DefaultProfile, store.KeyAccessToken).
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow("tok"))
	v, err := r.Get(ctx, store.KeyAccessToken)
	require.NoError(t, err)
	require.Equal(t, "tok", v)

	mock.ExpectQuery(`SELECT value FROM client_state WHERE profile=\$1 AND key=\$2`).
		WithArgs(DefaultProfile, store.KeyLanguage).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.Get(ctx, store.KeyLanguage)
	require.ErrorIs(t, err, errs.ErrNotFound)

	mock.ExpectQuery(`SELECT value FROM client_state`).
		WithArgs(DefaultProfile, store.KeyLanguage).
		WillReturnError(errors.New("conn reset"))
	_, err = r.Get(ctx, store.KeyLanguage)
	require.Error(t, err)
	require.NotErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStateRepo_SetDelete(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewStateRepo(db, "laptop")
	ctx := context.Background()

	mock.ExpectExec(`INSERT INTO client_state \(profile, key, value, updated_at\) VALUES \(\$1, \$2, \$3, now\(\)\) ON CONFLICT \(profile, key\) DO UPDATE`).
		WithArgs("laptop", store.KeyLanguage, "nl").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, store.SetLanguage(ctx, r, "nl"))

	mock.ExpectExec(`DELETE FROM client_state WHERE profile=\$1 AND key=\$2`).
		WithArgs("laptop", store.KeyAccessToken).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.NoError(t, r.Delete(ctx, store.KeyAccessToken))

	mock.ExpectExec(`DELETE FROM client_state`).
		WithArgs("laptop", store.KeyAccessToken).
		WillReturnError(errors.New("boom"))
	require.Error(t, r.Delete(ctx, store.KeyAccessToken))

	require.NoError(t, mock.ExpectationsWereMet())
}
