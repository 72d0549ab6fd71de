package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurnosService/internal/calendar"
	"github.com/m04kA/SMC-TurnosService/internal/domain"
	"github.com/m04kA/SMC-TurnosService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TurnosService/pkg/logger"
	"github.com/m04kA/SMC-TurnosService/pkg/types"
)

type slotView struct {
	Time   string
	IsFree bool
}

func view(slots []domain.Slot) []slotView {
	out := make([]slotView, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotView{Time: s.Time.Format(domain.TimeFormat), IsFree: s.IsFree})
	}
	return out
}

func newFixture(t *testing.T, openAt, closeAt string, interval int) (*UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	cal := calendar.New(time.UTC)

	if openAt != "" {
		cfg := domain.DefaultBusinessConfig()
		cfg.OpenTime = types.MustTimeString(openAt)
		cfg.CloseTime = types.MustTimeString(closeAt)
		cfg.SlotIntervalMinutes = interval
		_, err := store.Config().Save(context.Background(), cfg)
		require.NoError(t, err)
	}

	return NewUseCase(store.Tickets(), store.Config(), cal, logger.Nop()), store
}

func addTicket(t *testing.T, store *memory.Store, code string, at time.Time, state domain.TicketState) {
	t.Helper()
	_, err := store.Tickets().Create(context.Background(), &domain.Ticket{
		Code:          code,
		ClientName:    "Cliente",
		ServiceName:   "Consulta",
		CreatedAt:     at,
		AppointmentAt: at,
		State:         state,
		Channel:       domain.ChannelManual,
		UpdatedAt:     at,
	})
	require.NoError(t, err)
}

func TestUseCase_Execute_AllFree(t *testing.T) {
	uc, _ := newFixture(t, "08:00", "10:00", 30)

	resp, err := uc.Execute(context.Background(), &Request{Date: "2024-05-07"})
	require.NoError(t, err)
	assert.Equal(t, []slotView{
		{"08:00", true},
		{"08:30", true},
		{"09:00", true},
		{"09:30", true},
	}, view(resp.Slots))
}

func TestUseCase_Execute_OccupiedSlot(t *testing.T) {
	uc, store := newFixture(t, "08:00", "10:00", 30)
	day := time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC)
	addTicket(t, store, "0705-001", day.Add(8*time.Hour+30*time.Minute+20*time.Second), domain.StatePending)
	addTicket(t, store, "0705-002", day.Add(9*time.Hour), domain.StateCancelled)
	addTicket(t, store, "0705-003", day.Add(9*time.Hour+10*time.Minute), domain.StateAttended)
	addTicket(t, store, "0605-001", day.AddDate(0, 0, -1).Add(8*time.Hour), domain.StatePending)

	resp, err := uc.Execute(context.Background(), &Request{Date: "2024-05-07"})
	require.NoError(t, err)
	assert.Equal(t, []slotView{
		{"08:00", true},
		{"08:30", false},
		{"09:00", true},
		{"09:30", true},
	}, view(resp.Slots))
}

func TestUseCase_Execute_Idempotent(t *testing.T) {
	uc, store := newFixture(t, "08:00", "12:00", 45)
	addTicket(t, store, "0705-001", time.Date(2024, 5, 7, 9, 30, 0, 0, time.UTC), domain.StateCalled)

	first, err := uc.Execute(context.Background(), &Request{Date: "2024-05-07"})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), &Request{Date: "2024-05-07"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestUseCase_Execute_EmptyDay(t *testing.T) {
	uc, _ := newFixture(t, "10:00", "10:00", 30)

	resp, err := uc.Execute(context.Background(), &Request{Date: "2024-05-07"})
	require.NoError(t, err)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	uc, _ := newFixture(t, "08:00", "10:00", 30)
	_, err := uc.Execute(context.Background(), &Request{Date: "2024/05/07"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	noConfig, _ := newFixture(t, "", "", 0)
	_, err = noConfig.Execute(context.Background(), &Request{Date: "2024-05-07"})
	assert.ErrorIs(t, err, ErrConfigMissing)
}

func TestGenerateSlots_Restartable(t *testing.T) {
	cfg := domain.DefaultBusinessConfig()
	cfg.OpenTime = types.MustTimeString("08:00")
	cfg.CloseTime = types.MustTimeString("09:10")
	cfg.SlotIntervalMinutes = 30
	day := time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC)

	seq := generateSlots(day, cfg, nil)

	var first, second []string
	for s := range seq {
		first = append(first, s.Time.Format(domain.TimeFormat))
	}
	for s := range seq {
		second = append(second, s.Time.Format(domain.TimeFormat))
		break
	}

	assert.Equal(t, []string{"08:00", "08:30", "09:00"}, first)
	assert.Equal(t, []string{"08:00"}, second)
}
