package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-TurnosService/internal/config"
	"github.com/m04kA/SMC-TurnosService/internal/infra/migrator"
	"github.com/m04kA/SMC-TurnosService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TurnosService/internal/integrations/announcer"
	"github.com/m04kA/SMC-TurnosService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurnosService/pkg/logger"
	"github.com/m04kA/SMC-TurnosService/pkg/metrics"
)

const redisPingTimeout = 3 * time.Second

// OptionsFromConfig параметры приложения из конфигурации
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		MaxCreateAttempts: cfg.Tickets.MaxCreateAttempts,
		LockTimeout:       time.Duration(cfg.Tickets.LockTimeoutMs) * time.Millisecond,
		NoShowInterval:    time.Duration(cfg.Workers.NoShowInterval) * time.Second,
	}
}

// OpenStorage подключает хранилище по database.driver.
// Для PostgreSQL настраивает пул, при auto_migrate применяет миграции и, если m != nil,
// запускает сбор статистики пула. Возвращаемая функция освобождает ресурсы.
func OpenStorage(cfg *config.Config, m *metrics.Metrics, log *logger.Logger) (Storage, func(), error) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Warn("Using in-memory storage: data is lost on restart")
		return MemoryStorage(memory.NewStore()), func() {}, nil
	}

	if cfg.Database.AutoMigrate {
		if err := MigrateUp(cfg, log); err != nil {
			return Storage{}, nil, err
		}
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return Storage{}, nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return Storage{}, nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	stopCh := make(chan struct{})
	wrapped := dbmetrics.WrapWithDefault(db, m, cfg.Metrics.ServiceName, stopCh)
	if m != nil {
		log.Info("Database metrics collection started")
	}

	closeFn := func() {
		close(stopCh)
		if err := db.Close(); err != nil {
			log.Error("Failed to close database: %v", err)
		}
	}

	return PostgresStorage(wrapped), closeFn, nil
}

// MigrateUp применяет встроенные миграции
func MigrateUp(cfg *config.Config, log *logger.Logger) error {
	mg, err := migrator.New(cfg.Database.DSN(), log)
	if err != nil {
		return err
	}
	defer func() {
		if err := mg.Close(); err != nil {
			log.Warn("Failed to close migrator: %v", err)
		}
	}()

	return mg.Up()
}

// OpenPublisher публикатор объявлений: Redis, если включен, иначе лента в памяти процесса
func OpenPublisher(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (Publisher, func(), error) {
	if !cfg.Enabled {
		log.Info("Redis disabled, announcements are kept in memory (limit=%d)", cfg.RecentLimit)
		return announcer.NewMemoryPublisher(cfg.RecentLimit), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pub := announcer.NewRedisPublisher(client, cfg.Channel, cfg.RecentKey, cfg.RecentLimit, log)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := pub.Ping(pingCtx); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	log.Info("Announcements are published to redis channel %q (addr=%s)", cfg.Channel, cfg.Addr)

	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	return pub, closeFn, nil
}
