// Package memory хранилище в памяти с теми же контрактами и ошибками, что и PostgreSQL репозитории.
// Используется в режиме database.driver = "memory" и в тестах сервисов.
package memory

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
)

type txKey struct{}

// Store общее состояние всех репозиториев.
// Транзакция держит mu целиком, поэтому операции внутри нее сериализованы.
type Store struct {
	mu sync.Mutex

	tickets       map[int64]domain.Ticket
	lastTicketID  int64
	entries       []domain.QueueEntry
	lastEntryID   int64
	config        *domain.BusinessConfig
	services      map[int64]domain.Service
	lastServiceID int64
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		tickets:  make(map[int64]domain.Ticket),
		services: make(map[int64]domain.Service),
	}
}

// Tickets репозиторий тикетов
func (s *Store) Tickets() *TicketRepository {
	return &TicketRepository{s: s}
}

// Queue репозиторий очереди
func (s *Store) Queue() *QueueRepository {
	return &QueueRepository{s: s}
}

// Config репозиторий конфигурации
func (s *Store) Config() *ConfigRepository {
	return &ConfigRepository{s: s}
}

// Catalog репозиторий каталога услуг
func (s *Store) Catalog() *CatalogRepository {
	return &CatalogRepository{s: s}
}

// TxManager менеджер транзакций хранилища
func (s *Store) TxManager() *TxManager {
	return &TxManager{s: s}
}

// lock захватывает mu, если вызов не внутри транзакции этого хранилища
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(txKey{}).(*Store)
	return ok && owner == s
}

type snapshot struct {
	tickets       map[int64]domain.Ticket
	lastTicketID  int64
	entries       []domain.QueueEntry
	lastEntryID   int64
	config        *domain.BusinessConfig
	services      map[int64]domain.Service
	lastServiceID int64
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		tickets:       make(map[int64]domain.Ticket, len(s.tickets)),
		lastTicketID:  s.lastTicketID,
		entries:       append([]domain.QueueEntry(nil), s.entries...),
		lastEntryID:   s.lastEntryID,
		services:      make(map[int64]domain.Service, len(s.services)),
		lastServiceID: s.lastServiceID,
	}
	for id, t := range s.tickets {
		snap.tickets[id] = t
	}
	for id, svc := range s.services {
		snap.services[id] = svc
	}
	if s.config != nil {
		cfg := *s.config
		snap.config = &cfg
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.tickets = snap.tickets
	s.lastTicketID = snap.lastTicketID
	s.entries = snap.entries
	s.lastEntryID = snap.lastEntryID
	s.config = snap.config
	s.services = snap.services
	s.lastServiceID = snap.lastServiceID
}

// TxManager транзакции поверх Store: эксклюзивный доступ и откат к снимку при ошибке
type TxManager struct {
	s *Store
}

// Do выполняет fn в транзакции. Вложенный вызов использует внешнюю транзакцию.
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if m.s.inTx(ctx) {
		return fn(ctx)
	}

	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	snap := m.s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			m.s.restore(snap)
			panic(p)
		}
		if err != nil {
			m.s.restore(snap)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, m.s))
}

// DoSerializable в памяти эквивалентен Do
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

// DoReadOnly в памяти эквивалентен Do
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

func cloneTicket(t domain.Ticket) *domain.Ticket {
	c := t
	c.Phone = clonePtr(t.Phone)
	c.QRPayload = clonePtr(t.QRPayload)
	c.Notes = clonePtr(t.Notes)
	c.CalledAt = clonePtr(t.CalledAt)
	c.AttendedAt = clonePtr(t.AttendedAt)
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
