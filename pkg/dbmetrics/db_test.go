package dbmetrics

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurnosService/pkg/metrics"
)

func TestDB_ObservesQueriesInsideTransaction(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	m := metrics.NewWithRegistry("turnos-test", prometheus.NewRegistry())
	db := Wrap(sqlDB, m, "turnos-test")

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE tickets").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	ctx := WithTx(context.Background(), tx)
	assert.True(t, IsInTransaction(ctx))
	assert.Same(t, tx, GetExecutor(ctx, db))

	_, err = GetExecutor(ctx, db).ExecContext(ctx, "UPDATE tickets SET state = $1", "called")
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Equal(t, 1, testutil.CollectAndCount(m.DBQueryDuration))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExecutor_WithoutTransaction(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := Wrap(sqlDB, nil, "turnos-test")

	assert.False(t, IsInTransaction(context.Background()))
	assert.Same(t, db, GetExecutor(context.Background(), db))
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("  SELECT id FROM tickets"))
	assert.Equal(t, "unknown", operation(""))
}
