package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m04kA/SMC-TurnosService/internal/api"
	"github.com/m04kA/SMC-TurnosService/internal/app"
	"github.com/m04kA/SMC-TurnosService/internal/calendar"
	"github.com/m04kA/SMC-TurnosService/internal/config"
	"github.com/m04kA/SMC-TurnosService/pkg/logger"
	"github.com/m04kA/SMC-TurnosService/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML configuration")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-TurnosService...")
	log.Info("Configuration loaded from %s", *configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Календарь точки обслуживания
	loc, err := calendar.LoadLocation(cfg.Calendar.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone: %v", err)
	}
	cal := calendar.New(loc)
	log.Info("Calendar timezone: %s", loc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Хранилище (PostgreSQL или память)
	storage, closeStorage, err := app.OpenStorage(cfg, metricsCollector, log)
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer closeStorage()

	// Публикация объявлений о вызове
	publisher, closePublisher, err := app.OpenPublisher(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to redis: %v", err)
	}
	defer closePublisher()

	// Сервисы, use cases и фоновые задачи
	application := app.New(storage, cal, publisher, metricsCollector, app.OptionsFromConfig(cfg), log)

	// Конфигурация и каталог по умолчанию для пустой базы
	if created, err := application.Config.EnsureDefaults(ctx); err != nil {
		log.Fatal("Failed to ensure default configuration: %v", err)
	} else if created {
		log.Info("Default business configuration created")
	}
	if n, err := application.Catalog.SeedDefaults(ctx); err != nil {
		log.Fatal("Failed to seed service catalog: %v", err)
	} else if n > 0 {
		log.Info("Default service catalog created (%d services)", n)
	}

	if cfg.Workers.NoShowEnabled {
		go application.NoShow.Run(ctx)
	}

	if cfg.Auth.OperatorKey == "" {
		log.Warn("Operator key is empty: operator routes are not protected")
	}

	// Настраиваем роутер
	router := api.NewRouter(application.APIDependencies(), api.Options{
		OperatorKey: cfg.Auth.OperatorKey,
		Metrics:     metricsCollector,
		MetricsPath: cfg.Metrics.Path,
		ServiceName: cfg.Metrics.ServiceName,
	}, log)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
