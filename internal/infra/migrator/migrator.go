package migrator

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-TurnosService/migrations"
)

// ErrMigrate ошибка применения миграций
var ErrMigrate = errors.New("migrator: migration failed")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Migrator применяет встроенные миграции к базе PostgreSQL
type Migrator struct {
	m      *migrate.Migrate
	logger Logger
}

// New открывает отдельное соединение по DSN и создает мигратор.
// Соединение закрывается в Close вместе с драйвером миграций.
func New(dsn string, logger Logger) (*Migrator, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open db: %v", ErrMigrate, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping db: %v", ErrMigrate, err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: db driver: %v", ErrMigrate, err)
	}

	srcDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		_ = dbDriver.Close()
		return nil, fmt.Errorf("%w: source driver: %v", ErrMigrate, err)
	}

	m, err := migrate.NewWithInstance("iofs", srcDriver, "postgres", dbDriver)
	if err != nil {
		_ = dbDriver.Close()
		return nil, fmt.Errorf("%w: create migrator: %v", ErrMigrate, err)
	}

	return &Migrator{m: m, logger: logger}, nil
}

// Up применяет все новые миграции. Отсутствие изменений ошибкой не считается.
func (m *Migrator) Up() error {
	if err := m.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: up: %v", ErrMigrate, err)
	}
	m.logVersion("Migrations applied")
	return nil
}

// Down откатывает steps последних миграций
func (m *Migrator) Down(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("%w: steps must be positive", ErrMigrate)
	}
	if err := m.m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: down %d: %v", ErrMigrate, steps, err)
	}
	m.logVersion("Migrations rolled back")
	return nil
}

// Force выставляет версию без выполнения миграций (после ручного исправления dirty состояния)
func (m *Migrator) Force(version int) error {
	if err := m.m.Force(version); err != nil {
		return fmt.Errorf("%w: force %d: %v", ErrMigrate, version, err)
	}
	m.logVersion("Migration version forced")
	return nil
}

// Version текущая версия схемы; 0 - миграции не применялись
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: version: %v", ErrMigrate, err)
	}
	return version, dirty, nil
}

// Close освобождает source и соединение с базой
func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	return errors.Join(srcErr, dbErr)
}

func (m *Migrator) logVersion(msg string) {
	if m.logger == nil {
		return
	}
	version, dirty, err := m.Version()
	if err != nil {
		m.logger.Info("%s: version unknown: %v", msg, err)
		return
	}
	m.logger.Info("%s: version=%d, dirty=%t", msg, version, dirty)
}
