package catalog

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
	"github.com/m04kA/SMC-TurnosService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurnosService/pkg/pgerr"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return NewRepository(dbmetrics.Wrap(sqlDB, nil, "test")), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Date(2024, 5, 7, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO services (name,description,estimated_minutes,active,created_at) VALUES ($1,$2,$3,$4,$5) RETURNING id")).
		WithArgs("Pagos", nil, 10, true, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery("INSERT INTO services").
		WillReturnError(&pq.Error{Code: pgerr.CodeUniqueViolation})

	svc, err := repo.Create(context.Background(), &domain.Service{Name: "Pagos", EstimatedMinutes: 10, Active: true, CreatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, int64(1), svc.ID)

	_, err = repo.Create(context.Background(), &domain.Service{Name: "Pagos", EstimatedMinutes: 10, Active: true, CreatedAt: now})
	assert.ErrorIs(t, err, ErrServiceAlreadyExists)
}

func TestRepository_List(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Date(2024, 5, 7, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, estimated_minutes, active, created_at FROM services WHERE active = $1 ORDER BY name ASC")).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(1), "Pagos", "Caja", 10, true, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM services ORDER BY name ASC")).
		WillReturnRows(sqlmock.NewRows(columns))

	active, err := repo.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.NotNil(t, active[0].Description)
	assert.Equal(t, "Caja", *active[0].Description)

	all, err := repo.List(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRepository_SetActive_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE services SET active = $1 WHERE id = $2")).
		WithArgs(false, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.SetActive(context.Background(), 5, false), ErrServiceNotFound)
}
