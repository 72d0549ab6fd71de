package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
	"github.com/m04kA/SMC-TurnosService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurnosService/pkg/psqlbuilder"
)

const (
	table = "business_config"

	// singletonID единственная строка конфигурации
	singletonID = 1
)

// Repository репозиторий конфигурации точки обслуживания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает конфигурацию. Внутри транзакции строка блокируется.
func (r *Repository) Get(ctx context.Context) (*domain.BusinessConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(
		"business_name",
		"logo_url",
		"open_time",
		"close_time",
		"slot_interval_minutes",
		"voice_enabled",
		"voice_volume",
		"no_show_wait_minutes",
		"reset_daily",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"id": singletonID})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.BusinessConfig
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.BusinessName,
		&cfg.LogoURL,
		&cfg.OpenTime,
		&cfg.CloseTime,
		&cfg.SlotIntervalMinutes,
		&cfg.VoiceEnabled,
		&cfg.VoiceVolume,
		&cfg.NoShowWaitMinutes,
		&cfg.ResetDaily,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan config: %v", ErrScanRow, err)
	}

	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// Save создает или полностью перезаписывает конфигурацию
func (r *Repository) Save(ctx context.Context, cfg *domain.BusinessConfig) (*domain.BusinessConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"business_name",
			"logo_url",
			"open_time",
			"close_time",
			"slot_interval_minutes",
			"voice_enabled",
			"voice_volume",
			"no_show_wait_minutes",
			"reset_daily",
			"updated_at",
		).
		Values(
			singletonID,
			cfg.BusinessName,
			cfg.LogoURL,
			cfg.OpenTime,
			cfg.CloseTime,
			cfg.SlotIntervalMinutes,
			cfg.VoiceEnabled,
			cfg.VoiceVolume,
			cfg.NoShowWaitMinutes,
			cfg.ResetDaily,
			cfg.UpdatedAt,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			business_name = EXCLUDED.business_name,
			logo_url = EXCLUDED.logo_url,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			slot_interval_minutes = EXCLUDED.slot_interval_minutes,
			voice_enabled = EXCLUDED.voice_enabled,
			voice_volume = EXCLUDED.voice_volume,
			no_show_wait_minutes = EXCLUDED.no_show_wait_minutes,
			reset_daily = EXCLUDED.reset_daily,
			updated_at = EXCLUDED.updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}

	return cfg, nil
}
