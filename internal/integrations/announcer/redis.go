package announcer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
)

// RedisPublisher публикует объявления в канал Redis и хранит последние в списке
type RedisPublisher struct {
	client      *redis.Client
	channel     string
	recentKey   string
	recentLimit int64
	log         Logger
}

// NewRedisPublisher создает публикатор поверх клиента Redis.
// recentLimit = 0 отключает хранение последних объявлений.
func NewRedisPublisher(client *redis.Client, channel, recentKey string, recentLimit int, log Logger) *RedisPublisher {
	return &RedisPublisher{
		client:      client,
		channel:     channel,
		recentKey:   recentKey,
		recentLimit: int64(recentLimit),
		log:         log,
	}
}

// Publish отправляет объявление подписчикам канала и добавляет его в начало списка последних
func (p *RedisPublisher) Publish(ctx context.Context, a domain.Announcement) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPublish, err)
	}

	pipe := p.client.TxPipeline()
	pipe.Publish(ctx, p.channel, data)
	if p.recentLimit > 0 {
		pipe.LPush(ctx, p.recentKey, data)
		pipe.LTrim(ctx, p.recentKey, 0, p.recentLimit-1)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: channel=%s: %v", ErrPublish, p.channel, err)
	}

	p.log.Info("Published announcement code=%s to channel=%s", a.Code, p.channel)
	return nil
}

// Recent последние объявления, новые первыми
func (p *RedisPublisher) Recent(ctx context.Context, limit int) ([]domain.Announcement, error) {
	if limit <= 0 || int64(limit) > p.recentLimit {
		limit = int(p.recentLimit)
	}
	if limit == 0 {
		return []domain.Announcement{}, nil
	}

	items, err := p.client.LRange(ctx, p.recentKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: key=%s: %v", ErrRecent, p.recentKey, err)
	}

	result := make([]domain.Announcement, 0, len(items))
	for _, item := range items {
		var a domain.Announcement
		if err := json.Unmarshal([]byte(item), &a); err != nil {
			p.log.Warn("Skipping malformed announcement in key=%s: %v", p.recentKey, err)
			continue
		}
		result = append(result, a)
	}

	return result, nil
}

// Ping проверяет доступность Redis
func (p *RedisPublisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
