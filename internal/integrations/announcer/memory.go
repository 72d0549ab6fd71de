package announcer

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
)

// MemoryPublisher хранит последние объявления в памяти процесса.
// Используется, когда Redis выключен.
type MemoryPublisher struct {
	mu     sync.Mutex
	recent []domain.Announcement
	limit  int
}

// NewMemoryPublisher создает публикатор в памяти
func NewMemoryPublisher(limit int) *MemoryPublisher {
	return &MemoryPublisher{limit: limit}
}

// Publish добавляет объявление в начало списка
func (p *MemoryPublisher) Publish(ctx context.Context, a domain.Announcement) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.limit <= 0 {
		return nil
	}

	p.recent = append([]domain.Announcement{a}, p.recent...)
	if len(p.recent) > p.limit {
		p.recent = p.recent[:p.limit]
	}
	return nil
}

// Recent последние объявления, новые первыми
func (p *MemoryPublisher) Recent(ctx context.Context, limit int) ([]domain.Announcement, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if limit <= 0 || limit > len(p.recent) {
		limit = len(p.recent)
	}
	result := make([]domain.Announcement, limit)
	copy(result, p.recent[:limit])
	return result, nil
}
