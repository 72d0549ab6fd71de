package noshow

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
	"github.com/m04kA/SMC-TurnosService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TurnosService/pkg/logger"
	"github.com/m04kA/SMC-TurnosService/pkg/metrics"
	"github.com/m04kA/SMC-TurnosService/pkg/ptr"
)

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

var now = time.Date(2024, 5, 7, 12, 0, 0, 0, time.UTC)

func newWorker(store *memory.Store, m *metrics.Metrics) *Worker {
	return NewWorker(store.Tickets(), store.Config(), fixedTime{now: now}, store.TxManager(), m, time.Minute, logger.Nop())
}

func addCalled(t *testing.T, store *memory.Store, code string, calledAt time.Time, notes *string) *domain.Ticket {
	t.Helper()
	created, err := store.Tickets().Create(context.Background(), &domain.Ticket{
		Code:          code,
		CreatedAt:     calledAt,
		AppointmentAt: calledAt,
		State:         domain.StateCalled,
		Channel:       domain.ChannelManual,
		CalledAt:      &calledAt,
		Notes:         notes,
	})
	require.NoError(t, err)
	return created
}

func TestWorker_Sweep(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	cfg := domain.DefaultBusinessConfig()
	cfg.NoShowWaitMinutes = 30
	_, err := store.Config().Save(ctx, cfg)
	require.NoError(t, err)

	stale := addCalled(t, store, "0705-001", now.Add(-45*time.Minute), ptr.Ptr("VIP"))
	fresh := addCalled(t, store, "0705-002", now.Add(-10*time.Minute), nil)

	m := metrics.NewWithRegistry("turnos-test", prometheus.NewRegistry())
	count, err := newWorker(store, m).Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NoShowCancelled.WithLabelValues("turnos-test")))

	got, err := store.Tickets().GetByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateCancelled, got.State)
	assert.Equal(t, "VIP; "+Note, *got.Notes)

	got, err = store.Tickets().GetByID(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateCalled, got.State)
}

func TestWorker_Sweep_Disabled(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	addCalled(t, store, "0705-001", now.Add(-5*time.Hour), nil)

	// Без конфигурации
	count, err := newWorker(store, nil).Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	// Ожидание 0 выключает авто-отмену
	cfg := domain.DefaultBusinessConfig()
	cfg.NoShowWaitMinutes = 0
	_, err = store.Config().Save(ctx, cfg)
	require.NoError(t, err)

	count, err = newWorker(store, nil).Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestWorker_Run_StopsOnCancel(t *testing.T) {
	store := memory.NewStore()
	w := NewWorker(store.Tickets(), store.Config(), fixedTime{now: now}, store.TxManager(), (*metrics.Metrics)(nil), 5*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
