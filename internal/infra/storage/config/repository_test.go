package config

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
	"github.com/m04kA/SMC-TurnosService/pkg/dbmetrics"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return NewRepository(dbmetrics.Wrap(sqlDB, nil, "test")), mock
}

func TestRepository_Get(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Date(2024, 5, 7, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM business_config WHERE id = $1")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{
			"business_name", "logo_url", "open_time", "close_time", "slot_interval_minutes",
			"voice_enabled", "voice_volume", "no_show_wait_minutes", "reset_daily", "updated_at",
		}).AddRow("Notaría", nil, []byte("08:00:00"), []byte("10:00:00"), 30, true, []byte("0.80"), 30, true, now))

	cfg, err := repo.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Notaría", cfg.BusinessName)
	assert.Nil(t, cfg.LogoURL)
	assert.Equal(t, "08:00", cfg.OpenTime.String())
	assert.Equal(t, "10:00", cfg.CloseTime.String())
	assert.Equal(t, 30, cfg.SlotIntervalMinutes)
	assert.InDelta(t, 0.8, cfg.VoiceVolume, 1e-9)
	assert.Equal(t, now, cfg.UpdatedAt)
}

func TestRepository_Get_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("FROM business_config").WillReturnRows(sqlmock.NewRows([]string{"business_name"}))

	_, err := repo.Get(context.Background())

	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestRepository_Save(t *testing.T) {
	repo, mock := newMock(t)
	cfg := domain.DefaultBusinessConfig()
	cfg.UpdatedAt = time.Date(2024, 5, 7, 8, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO business_config .+ ON CONFLICT \(id\) DO UPDATE SET`).
		WithArgs(1, cfg.BusinessName, nil, "08:00", "18:00", 30, true, 0.8, 30, true, cfg.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := repo.Save(context.Background(), cfg)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
