package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

var (
	// ErrLoadConfig ошибка чтения или разбора файла конфигурации
	ErrLoadConfig = errors.New("config: failed to load")

	// ErrInvalidConfig конфигурация не прошла валидацию
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Драйверы хранилища
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Переменные окружения, перекрывающие значения из файла
const (
	EnvDBHost      = "TURNOS_DB_HOST"
	EnvDBPassword  = "TURNOS_DB_PASSWORD"
	EnvRedisAddr   = "TURNOS_REDIS_ADDR"
	EnvOperatorKey = "TURNOS_OPERATOR_KEY"
	EnvHTTPPort    = "TURNOS_HTTP_PORT"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Redis    RedisConfig    `toml:"redis"`
	Calendar CalendarConfig `toml:"calendar"`
	Tickets  TicketsConfig  `toml:"tickets"`
	Auth     AuthConfig     `toml:"auth"`
	Workers  WorkersConfig  `toml:"workers"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки хранилища
type DatabaseConfig struct {
	Driver          string `toml:"driver"` // postgres | memory
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// URL строка подключения для golang-migrate
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig публикация объявлений о вызове на табло
type RedisConfig struct {
	Enabled     bool   `toml:"enabled"`
	Addr        string `toml:"addr"`
	Password    string `toml:"password"`
	DB          int    `toml:"db"`
	Channel     string `toml:"channel"`
	RecentKey   string `toml:"recent_key"`
	RecentLimit int    `toml:"recent_limit"`
}

// CalendarConfig часовой пояс точки обслуживания
type CalendarConfig struct {
	Timezone string `toml:"timezone"`
}

// TicketsConfig параметры выдачи тикетов
type TicketsConfig struct {
	MaxCreateAttempts int `toml:"max_create_attempts"`
	LockTimeoutMs     int `toml:"lock_timeout_ms"`
}

// AuthConfig ключ оператора для изменяющих операций. Пустой ключ - проверка выключена.
type AuthConfig struct {
	OperatorKey string `toml:"operator_key"`
}

// WorkersConfig фоновые задачи
type WorkersConfig struct {
	NoShowEnabled  bool `toml:"no_show_enabled"`
	NoShowInterval int  `toml:"no_show_interval"` // секунды
}

// Load читает конфигурацию из TOML файла, подгружает .env и применяет переменные окружения
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: load .env: %v", ErrLoadConfig, err)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrLoadConfig, path, err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию, значения из файла накладываются поверх
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "turnos",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "turnos_service",
		},
		Redis: RedisConfig{
			Addr:        "localhost:6379",
			Channel:     "turnos:announcements",
			RecentKey:   "turnos:announcements:recent",
			RecentLimit: 20,
		},
		Tickets: TicketsConfig{
			MaxCreateAttempts: 5,
			LockTimeoutMs:     2000,
		},
		Workers: WorkersConfig{
			NoShowEnabled:  true,
			NoShowInterval: 60,
		},
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDBHost); ok && v != "" {
		c.Database.Host = v
	}
	if v, ok := lookup(EnvDBPassword); ok {
		c.Database.Password = v
	}
	if v, ok := lookup(EnvRedisAddr); ok && v != "" {
		c.Redis.Addr = v
	}
	if v, ok := lookup(EnvOperatorKey); ok {
		c.Auth.OperatorKey = v
	}
	if v, ok := lookup(EnvHTTPPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, EnvHTTPPort, v)
		}
		c.Server.HTTPPort = port
	}
	return nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.DBName == "" {
			return fmt.Errorf("%w: database.dbname is empty", ErrInvalidConfig)
		}
		if c.Database.Host == "" {
			return fmt.Errorf("%w: database.host is empty", ErrInvalidConfig)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: database.driver=%q (expected %s or %s)", ErrInvalidConfig, c.Database.Driver, DriverPostgres, DriverMemory)
	}

	if c.Tickets.MaxCreateAttempts <= 0 {
		return fmt.Errorf("%w: tickets.max_create_attempts must be positive", ErrInvalidConfig)
	}
	if c.Tickets.LockTimeoutMs < 0 {
		return fmt.Errorf("%w: tickets.lock_timeout_ms must not be negative", ErrInvalidConfig)
	}

	if c.Redis.Enabled {
		if c.Redis.Addr == "" || c.Redis.Channel == "" {
			return fmt.Errorf("%w: redis.addr and redis.channel are required when redis is enabled", ErrInvalidConfig)
		}
		if c.Redis.RecentLimit < 0 {
			return fmt.Errorf("%w: redis.recent_limit must not be negative", ErrInvalidConfig)
		}
	}

	if c.Workers.NoShowEnabled && c.Workers.NoShowInterval <= 0 {
		return fmt.Errorf("%w: workers.no_show_interval must be positive", ErrInvalidConfig)
	}

	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is empty", ErrInvalidConfig)
	}

	if _, err := time.LoadLocation(c.Calendar.Timezone); err != nil {
		return fmt.Errorf("%w: calendar.timezone=%q: %v", ErrInvalidConfig, c.Calendar.Timezone, err)
	}

	return nil
}
