package call_ticket

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurnosService/internal/calendar"
	"github.com/m04kA/SMC-TurnosService/internal/domain"
	"github.com/m04kA/SMC-TurnosService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TurnosService/pkg/logger"
	"github.com/m04kA/SMC-TurnosService/pkg/metrics"
)

var now = time.Date(2024, 5, 7, 10, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu   sync.Mutex
	sent []domain.Announcement
	err  error
}

func (p *recordingPublisher) Publish(ctx context.Context, a domain.Announcement) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, a)
	return p.err
}

type fixture struct {
	store     *memory.Store
	publisher *recordingPublisher
	metrics   *metrics.Metrics
	uc        *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	cal := calendar.NewWithClock(time.UTC, func() time.Time { return now })
	pub := &recordingPublisher{}
	m := metrics.NewWithRegistry("turnos-test", prometheus.NewRegistry())

	return &fixture{
		store:     store,
		publisher: pub,
		metrics:   m,
		uc: NewUseCase(store.Tickets(), store.Queue(), store.Config(), pub, cal,
			store.TxManager(), m, logger.Nop()),
	}
}

func (f *fixture) seed(t *testing.T, code string, state domain.TicketState, enqueue bool) *domain.Ticket {
	t.Helper()
	ctx := context.Background()
	ticket, err := f.store.Tickets().Create(ctx, &domain.Ticket{
		Code:          code,
		ClientName:    "Cliente " + code,
		ServiceName:   "Pagos",
		CreatedAt:     now,
		AppointmentAt: now,
		State:         state,
		Channel:       domain.ChannelManual,
		UpdatedAt:     now,
	})
	require.NoError(t, err)

	if enqueue {
		last, err := f.store.Queue().LastPosition(ctx, now)
		require.NoError(t, err)
		_, err = f.store.Queue().Create(ctx, &domain.QueueEntry{
			TicketID:  ticket.ID,
			Position:  last + 1,
			Day:       time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC),
			CreatedAt: now,
		})
		require.NoError(t, err)
	}
	return ticket
}

func TestUseCase_Execute_PendingToCalled(t *testing.T) {
	f := newFixture(t)
	ticket := f.seed(t, "0705-001", domain.StatePending, true)

	resp, err := f.uc.Execute(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.False(t, resp.Recall)
	assert.Equal(t, domain.StateCalled, resp.Ticket.State)
	require.NotNil(t, resp.Ticket.CalledAt)
	assert.True(t, resp.Ticket.CalledAt.Equal(now))
	assert.Equal(t, "Turno 0705-001, Cliente 0705-001, acérquese por favor. Servicio: Pagos", resp.Announcement.Message)
	assert.True(t, resp.Announcement.VoiceEnabled)

	require.Len(t, f.publisher.sent, 1)
	assert.Equal(t, "0705-001", f.publisher.sent[0].Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.TicketsCalled.WithLabelValues("turnos-test", "false")))

	stored, err := f.store.Tickets().GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateCalled, stored.State)
}

func TestUseCase_Execute_RecallKeepsCalledAt(t *testing.T) {
	f := newFixture(t)
	calledAt := now.Add(-10 * time.Minute)
	ticket := f.seed(t, "0705-001", domain.StatePending, false)
	ticket.State = domain.StateCalled
	ticket.CalledAt = &calledAt
	require.NoError(t, f.store.Tickets().Update(context.Background(), ticket))

	resp, err := f.uc.Execute(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.True(t, resp.Recall)
	assert.True(t, resp.Ticket.CalledAt.Equal(calledAt))
	assert.Len(t, f.publisher.sent, 1)
}

func TestUseCase_Execute_AttendedFails(t *testing.T) {
	f := newFixture(t)
	attendedAt := now.Add(-time.Hour)
	ticket := f.seed(t, "0705-001", domain.StatePending, false)
	ticket.State = domain.StateAttended
	ticket.AttendedAt = &attendedAt
	require.NoError(t, f.store.Tickets().Update(context.Background(), ticket))

	_, err := f.uc.Execute(context.Background(), ticket.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.ErrorIs(t, err, ErrTransitionNotAllowed)

	stored, err := f.store.Tickets().GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateAttended, stored.State)
	assert.True(t, stored.AttendedAt.Equal(attendedAt))
	assert.Nil(t, stored.CalledAt)
	assert.Empty(t, f.publisher.sent)
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), 404)
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestUseCase_Execute_PublishFailureDoesNotFail(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("redis down")
	ticket := f.seed(t, "0705-001", domain.StatePending, false)

	resp, err := f.uc.Execute(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateCalled, resp.Ticket.State)
}

func TestUseCase_Execute_UsesVoiceConfig(t *testing.T) {
	f := newFixture(t)
	cfg := domain.DefaultBusinessConfig()
	cfg.VoiceEnabled = false
	cfg.VoiceVolume = 0.3
	_, err := f.store.Config().Save(context.Background(), cfg)
	require.NoError(t, err)
	ticket := f.seed(t, "0705-001", domain.StatePending, false)

	resp, err := f.uc.Execute(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.False(t, resp.Announcement.VoiceEnabled)
	assert.InDelta(t, 0.3, resp.Announcement.VoiceVolume, 1e-9)
}

func TestUseCase_ExecuteNext(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.ExecuteNext(ctx)
	assert.ErrorIs(t, err, ErrQueueEmpty)

	first := f.seed(t, "0705-001", domain.StatePending, true)
	second := f.seed(t, "0705-002", domain.StatePending, true)

	resp, err := f.uc.ExecuteNext(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, resp.Ticket.ID)
	require.NotNil(t, resp.Position)
	assert.Equal(t, 1, *resp.Position)

	resp, err = f.uc.ExecuteNext(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, resp.Ticket.ID)
	assert.Equal(t, 2, *resp.Position)

	_, err = f.uc.ExecuteNext(ctx)
	assert.ErrorIs(t, err, ErrQueueEmpty)
}
