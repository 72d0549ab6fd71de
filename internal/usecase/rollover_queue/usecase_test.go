package rollover_queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurnosService/internal/calendar"
	"github.com/m04kA/SMC-TurnosService/internal/domain"
	"github.com/m04kA/SMC-TurnosService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TurnosService/internal/service/queue"
	"github.com/m04kA/SMC-TurnosService/pkg/logger"
)

var now = time.Date(2024, 5, 9, 7, 0, 0, 0, time.UTC)

func newUseCase(store *memory.Store) *UseCase {
	cal := calendar.NewWithClock(time.UTC, func() time.Time { return now })
	queueSvc := queue.NewService(store.Queue(), cal, store.TxManager(), time.Second, logger.Nop())
	return NewUseCase(store.Tickets(), store.Queue(), queueSvc, cal, store.TxManager(), logger.Nop())
}

func addTicket(t *testing.T, store *memory.Store, code string, appointment time.Time, state domain.TicketState) *domain.Ticket {
	t.Helper()
	created, err := store.Tickets().Create(context.Background(), &domain.Ticket{
		Code:          code,
		ClientName:    "Cliente",
		ServiceName:   "Consulta",
		CreatedAt:     time.Date(2024, 5, 7, 10, 0, 0, 0, time.UTC),
		AppointmentAt: appointment,
		State:         state,
		Channel:       domain.ChannelManual,
	})
	require.NoError(t, err)
	return created
}

func TestUseCase_Execute(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	ctx := context.Background()
	day := time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)

	late := addTicket(t, store, "0705-001", day.Add(11*time.Hour), domain.StatePending)
	early := addTicket(t, store, "0705-002", day.Add(9*time.Hour), domain.StatePending)
	addTicket(t, store, "0705-003", day.Add(10*time.Hour), domain.StateCancelled)
	addTicket(t, store, "0705-004", day.AddDate(0, 0, 1).Add(9*time.Hour), domain.StatePending)

	resp, err := uc.Execute(ctx, &Request{})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Enqueued)
	assert.Zero(t, resp.Skipped)

	entries, err := store.Queue().ListForDay(ctx, day)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, early.ID, entries[0].TicketID)
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, late.ID, entries[1].TicketID)
	assert.Equal(t, 2, entries[1].Position)

	// Повторный запуск ничего не дублирует
	resp, err = uc.Execute(ctx, &Request{Date: "2024-05-09"})
	require.NoError(t, err)
	assert.Zero(t, resp.Enqueued)
	assert.Equal(t, 2, resp.Skipped)
}

func TestUseCase_Execute_InvalidDate(t *testing.T) {
	uc := newUseCase(memory.NewStore())

	_, err := uc.Execute(context.Background(), &Request{Date: "09.05.2024"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}
