// Package app собирает сервисы, use cases и фоновые задачи поверх выбранного хранилища.
// Используется HTTP сервером и утилитой turnosctl.
package app

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TurnosService/internal/api"
	"github.com/m04kA/SMC-TurnosService/internal/calendar"
	"github.com/m04kA/SMC-TurnosService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-TurnosService/internal/infra/storage/catalog"
	configRepo "github.com/m04kA/SMC-TurnosService/internal/infra/storage/config"
	"github.com/m04kA/SMC-TurnosService/internal/infra/storage/memory"
	queueRepo "github.com/m04kA/SMC-TurnosService/internal/infra/storage/queue"
	ticketRepo "github.com/m04kA/SMC-TurnosService/internal/infra/storage/ticket"
	catalogService "github.com/m04kA/SMC-TurnosService/internal/service/catalog"
	configService "github.com/m04kA/SMC-TurnosService/internal/service/config"
	"github.com/m04kA/SMC-TurnosService/internal/service/numbering"
	queueService "github.com/m04kA/SMC-TurnosService/internal/service/queue"
	ticketsService "github.com/m04kA/SMC-TurnosService/internal/service/tickets"
	callTicketUC "github.com/m04kA/SMC-TurnosService/internal/usecase/call_ticket"
	createTicketUC "github.com/m04kA/SMC-TurnosService/internal/usecase/create_ticket"
	getAvailabilityUC "github.com/m04kA/SMC-TurnosService/internal/usecase/get_availability"
	resetTicketsUC "github.com/m04kA/SMC-TurnosService/internal/usecase/reset_tickets"
	rolloverQueueUC "github.com/m04kA/SMC-TurnosService/internal/usecase/rollover_queue"
	"github.com/m04kA/SMC-TurnosService/internal/worker/noshow"
	"github.com/m04kA/SMC-TurnosService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurnosService/pkg/logger"
	"github.com/m04kA/SMC-TurnosService/pkg/metrics"
	"github.com/m04kA/SMC-TurnosService/pkg/txmanager"
)

// TicketRepository все операции хранилища тикетов
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	GetByCode(ctx context.Context, code string) (*domain.Ticket, error)
	List(ctx context.Context, filter domain.TicketFilter) ([]*domain.Ticket, error)
	CountByState(ctx context.Context, from, to time.Time) (map[domain.TicketState]int, error)
	Update(ctx context.Context, ticket *domain.Ticket) error
	LockCodePrefix(ctx context.Context, prefix string, timeout time.Duration) error
	ListCodesWithPrefix(ctx context.Context, prefix string) ([]string, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// QueueRepository все операции хранилища очереди
type QueueRepository interface {
	LockDay(ctx context.Context, day time.Time, timeout time.Duration) error
	LastPosition(ctx context.Context, day time.Time) (int, error)
	Create(ctx context.Context, entry *domain.QueueEntry) (*domain.QueueEntry, error)
	ListForDay(ctx context.Context, day time.Time) ([]*domain.QueueEntry, error)
	NextPending(ctx context.Context, day time.Time) (*domain.QueueEntry, error)
	ExistsForTicket(ctx context.Context, ticketID int64, day time.Time) (bool, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// ConfigRepository хранилище конфигурации
type ConfigRepository interface {
	Get(ctx context.Context) (*domain.BusinessConfig, error)
	Save(ctx context.Context, cfg *domain.BusinessConfig) (*domain.BusinessConfig, error)
}

// CatalogRepository хранилище каталога услуг
type CatalogRepository interface {
	Create(ctx context.Context, service *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Service, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Publisher публикация объявлений и лента последних вызовов
type Publisher interface {
	Publish(ctx context.Context, a domain.Announcement) error
	Recent(ctx context.Context, limit int) ([]domain.Announcement, error)
}

// Storage репозитории одного хранилища и его менеджер транзакций
type Storage struct {
	Tickets   TicketRepository
	Queue     QueueRepository
	Config    ConfigRepository
	Catalog   CatalogRepository
	TxManager TransactionManager
}

// PostgresStorage репозитории PostgreSQL поверх обёртки с метриками запросов
func PostgresStorage(db *dbmetrics.DB) Storage {
	return Storage{
		Tickets:   ticketRepo.NewRepository(db),
		Queue:     queueRepo.NewRepository(db),
		Config:    configRepo.NewRepository(db),
		Catalog:   catalogRepo.NewRepository(db),
		TxManager: txmanager.NewTransactionManager(db),
	}
}

// MemoryStorage репозитории в памяти процесса
func MemoryStorage(store *memory.Store) Storage {
	return Storage{
		Tickets:   store.Tickets(),
		Queue:     store.Queue(),
		Config:    store.Config(),
		Catalog:   store.Catalog(),
		TxManager: store.TxManager(),
	}
}

// Options параметры выдачи тикетов и фоновых задач
type Options struct {
	MaxCreateAttempts int
	LockTimeout       time.Duration
	NoShowInterval    time.Duration
}

// App собранные компоненты сервиса
type App struct {
	Tickets   *ticketsService.Service
	Queue     *queueService.Service
	Config    *configService.Service
	Catalog   *catalogService.Service
	Numbering *numbering.Service

	CreateTicket *createTicketUC.UseCase
	CallTicket   *callTicketUC.UseCase
	Availability *getAvailabilityUC.UseCase
	Rollover     *rolloverQueueUC.UseCase
	Reset        *resetTicketsUC.UseCase

	NoShow *noshow.Worker
	Feed   Publisher
}

// New связывает компоненты. m может быть nil - метрики выключены.
func New(st Storage, cal *calendar.Provider, pub Publisher, m *metrics.Metrics, opts Options, log *logger.Logger) *App {
	a := &App{Feed: pub}

	// Сервисы
	a.Tickets = ticketsService.NewService(st.Tickets, cal, st.TxManager, log)
	a.Queue = queueService.NewService(st.Queue, cal, st.TxManager, opts.LockTimeout, log)
	a.Config = configService.NewService(st.Config, st.TxManager, cal, log)
	a.Catalog = catalogService.NewService(st.Catalog, st.TxManager, cal, log)
	a.Numbering = numbering.NewService(st.Tickets, opts.LockTimeout, log)

	// Use cases
	a.CreateTicket = createTicketUC.NewUseCase(
		st.Tickets,
		a.Numbering,
		a.Queue,
		cal,
		st.TxManager,
		m,
		opts.MaxCreateAttempts,
		log,
	)
	a.CallTicket = callTicketUC.NewUseCase(
		st.Tickets,
		st.Queue,
		st.Config,
		pub,
		cal,
		st.TxManager,
		m,
		log,
	)
	a.Availability = getAvailabilityUC.NewUseCase(st.Tickets, st.Config, cal, log)
	a.Rollover = rolloverQueueUC.NewUseCase(st.Tickets, st.Queue, a.Queue, cal, st.TxManager, log)
	a.Reset = resetTicketsUC.NewUseCase(st.Tickets, st.Queue, st.TxManager, log)

	// Фоновые задачи
	a.NoShow = noshow.NewWorker(st.Tickets, st.Config, cal, st.TxManager, m, opts.NoShowInterval, log)

	return a
}

// APIDependencies компоненты, которые обслуживают HTTP API
func (a *App) APIDependencies() api.Dependencies {
	return api.Dependencies{
		Tickets:  a.Tickets,
		Queue:    a.Queue,
		Config:   a.Config,
		Catalog:  a.Catalog,
		Feed:     a.Feed,
		Create:   a.CreateTicket,
		Call:     a.CallTicket,
		Slots:    a.Availability,
		Rollover: a.Rollover,
	}
}
