package noshow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
	configRepo "github.com/m04kA/SMC-TurnosService/internal/infra/storage/config"
)

// Note заметка, добавляемая к тикету при авто-отмене
const Note = "Cancelado automáticamente: el cliente no se presentó"

// ErrSweep ошибка одного прохода воркера
var ErrSweep = errors.New("noshow: sweep failed")

// Worker отменяет тикеты, которые остаются в called дольше no_show_wait_minutes
type Worker struct {
	ticketRepo   TicketRepository
	configRepo   ConfigRepository
	timeProvider TimeProvider
	txManager    TransactionManager
	metrics      Metrics
	interval     time.Duration
	logger       Logger
}

// NewWorker создает воркер авто-отмены
func NewWorker(
	ticketRepo TicketRepository,
	configRepo ConfigRepository,
	timeProvider TimeProvider,
	txManager TransactionManager,
	metrics Metrics,
	interval time.Duration,
	logger Logger,
) *Worker {
	return &Worker{
		ticketRepo:   ticketRepo,
		configRepo:   configRepo,
		timeProvider: timeProvider,
		txManager:    txManager,
		metrics:      metrics,
		interval:     interval,
		logger:       logger,
	}
}

// Run выполняет Sweep каждые interval до отмены ctx
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("NoShowWorker: started, interval=%s", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("NoShowWorker: stopped")
			return
		case <-ticker.C:
			if _, err := w.Sweep(ctx); err != nil {
				w.logger.Error("NoShowWorker: %v", err)
			}
		}
	}
}

// Sweep один проход: возвращает количество отмененных тикетов.
// Выключенная авто-отмена или отсутствие конфигурации - не ошибка.
func (w *Worker) Sweep(ctx context.Context) (int, error) {
	cfg, err := w.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: get config: %v", ErrSweep, err)
	}
	if !cfg.NoShowEnabled() {
		return 0, nil
	}

	now := w.timeProvider.Now()
	cutoff := now.Add(-time.Duration(cfg.NoShowWaitMinutes) * time.Minute)

	cancelled := 0
	err = w.txManager.Do(ctx, func(txCtx context.Context) error {
		cancelled = 0

		// Строки, занятые оператором, пропускаются до следующего прохода
		tickets, err := w.ticketRepo.List(txCtx, domain.TicketFilter{
			CalledBefore: &cutoff,
			OrderBy:      domain.OrderByCreatedAsc,
		})
		if err != nil {
			return fmt.Errorf("list called tickets: %v", err)
		}

		for _, t := range tickets {
			changed, err := t.Transition(domain.StateCancelled, now)
			if err != nil || !changed {
				continue
			}
			t.Notes = appendNote(t.Notes, Note)

			if err := w.ticketRepo.Update(txCtx, t); err != nil {
				return fmt.Errorf("update ticket id=%d: %v", t.ID, err)
			}
			w.logger.Info("NoShowWorker: ticket id=%d, code=%s cancelled, called_at=%s",
				t.ID, t.Code, t.CalledAt.Format(time.RFC3339))
			cancelled++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSweep, err)
	}

	w.metrics.NoShow(cancelled)
	return cancelled, nil
}

func appendNote(notes *string, note string) *string {
	if notes == nil || *notes == "" {
		return &note
	}
	combined := *notes + "; " + note
	return &combined
}
