package tickets

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurnosService/internal/calendar"
	"github.com/m04kA/SMC-TurnosService/internal/domain"
	"github.com/m04kA/SMC-TurnosService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TurnosService/internal/service/tickets/models"
	"github.com/m04kA/SMC-TurnosService/pkg/logger"
	"github.com/m04kA/SMC-TurnosService/pkg/ptr"
)

var now = time.Date(2024, 5, 7, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	cal := calendar.NewWithClock(time.UTC, func() time.Time { return now })
	return NewService(store.Tickets(), cal, store.TxManager(), logger.Nop()), store
}

func seedTicket(t *testing.T, store *memory.Store, ticket domain.Ticket) *domain.Ticket {
	t.Helper()
	if ticket.State == "" {
		ticket.State = domain.StatePending
	}
	if ticket.Channel == "" {
		ticket.Channel = domain.ChannelManual
	}
	if ticket.CreatedAt.IsZero() {
		ticket.CreatedAt = now
	}
	if ticket.AppointmentAt.IsZero() {
		ticket.AppointmentAt = now
	}
	ticket.UpdatedAt = ticket.CreatedAt
	created, err := store.Tickets().Create(context.Background(), &ticket)
	require.NoError(t, err)
	return created
}

func TestService_GetByID(t *testing.T) {
	svc, store := newTestService(t)
	seeded := seedTicket(t, store, domain.Ticket{Code: "0705-001", ClientName: "Ana", ServiceName: "Consulta"})

	resp, err := svc.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "0705-001", resp.Code)
	assert.Equal(t, "pending", resp.State)

	_, err = svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestService_UpdateState(t *testing.T) {
	ctx := context.Background()

	t.Run("pending to called sets called_at and announcement", func(t *testing.T) {
		svc, store := newTestService(t)
		seeded := seedTicket(t, store, domain.Ticket{Code: "0705-001", ClientName: "Ana", ServiceName: "Consulta"})

		resp, err := svc.UpdateState(ctx, seeded.ID, &models.UpdateStateRequest{State: "called"})
		require.NoError(t, err)
		assert.True(t, resp.Changed)
		assert.Equal(t, "called", resp.Ticket.State)
		require.NotNil(t, resp.Ticket.CalledAt)
		assert.True(t, resp.Ticket.CalledAt.Equal(now))
		require.NotNil(t, resp.Announcement)
		assert.Contains(t, *resp.Announcement, "0705-001")
	})

	t.Run("same state is a no-op", func(t *testing.T) {
		svc, store := newTestService(t)
		calledAt := now.Add(-time.Hour)
		seeded := seedTicket(t, store, domain.Ticket{Code: "0705-001", State: domain.StateCalled, CalledAt: &calledAt})

		resp, err := svc.UpdateState(ctx, seeded.ID, &models.UpdateStateRequest{State: "called"})
		require.NoError(t, err)
		assert.False(t, resp.Changed)
		assert.Nil(t, resp.Announcement)
		assert.True(t, resp.Ticket.CalledAt.Equal(calledAt))
	})

	t.Run("notes are saved without state change", func(t *testing.T) {
		svc, store := newTestService(t)
		seeded := seedTicket(t, store, domain.Ticket{Code: "0705-001"})

		_, err := svc.UpdateState(ctx, seeded.ID, &models.UpdateStateRequest{State: "pending", Notes: ptr.Ptr("VIP")})
		require.NoError(t, err)

		stored, err := store.Tickets().GetByID(ctx, seeded.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.Notes)
		assert.Equal(t, "VIP", *stored.Notes)
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		svc, store := newTestService(t)
		seeded := seedTicket(t, store, domain.Ticket{Code: "0705-001", State: domain.StateCancelled})

		_, err := svc.UpdateState(ctx, seeded.ID, &models.UpdateStateRequest{State: "called"})
		assert.ErrorIs(t, err, ErrTransitionNotAllowed)

		stored, err := store.Tickets().GetByID(ctx, seeded.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StateCancelled, stored.State)
	})

	t.Run("unknown state", func(t *testing.T) {
		svc, store := newTestService(t)
		seeded := seedTicket(t, store, domain.Ticket{Code: "0705-001"})

		_, err := svc.UpdateState(ctx, seeded.ID, &models.UpdateStateRequest{State: "done"})
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.NotErrorIs(t, err, ErrTransitionNotAllowed)
	})

	t.Run("not found", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.UpdateState(ctx, 42, &models.UpdateStateRequest{State: "called"})
		assert.ErrorIs(t, err, ErrTicketNotFound)
	})
}

func TestService_Cancel(t *testing.T) {
	svc, store := newTestService(t)
	seeded := seedTicket(t, store, domain.Ticket{Code: "0705-001", State: domain.StateAttended})

	resp, err := svc.Cancel(context.Background(), seeded.ID, ptr.Ptr("no vino"))
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Ticket.State)
	require.NotNil(t, resp.Ticket.Notes)
	assert.Equal(t, "no vino", *resp.Ticket.Notes)
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	seedTicket(t, store, domain.Ticket{Code: "0705-001", CreatedAt: now.Add(-2 * time.Minute)})
	seedTicket(t, store, domain.Ticket{Code: "0705-002", CreatedAt: now.Add(-time.Minute), Channel: domain.ChannelQR})
	seedTicket(t, store, domain.Ticket{Code: "0705-003", AppointmentAt: now.AddDate(0, 0, 1)})

	resp, err := svc.List(ctx, &models.ListTicketsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Tickets, 3)
	assert.Equal(t, "0705-001", resp.Tickets[0].Code)

	resp, err = svc.List(ctx, &models.ListTicketsRequest{Date: ptr.Ptr("2024-05-07")})
	require.NoError(t, err)
	assert.Len(t, resp.Tickets, 2)

	resp, err = svc.List(ctx, &models.ListTicketsRequest{Channel: ptr.Ptr("qr")})
	require.NoError(t, err)
	require.Len(t, resp.Tickets, 1)
	assert.Equal(t, "0705-002", resp.Tickets[0].Code)

	_, err = svc.List(ctx, &models.ListTicketsRequest{Date: ptr.Ptr("07/05/2024")})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = svc.List(ctx, &models.ListTicketsRequest{State: ptr.Ptr("waiting")})
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = svc.List(ctx, &models.ListTicketsRequest{Channel: ptr.Ptr("phone")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ListAppointments(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	day := time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC)
	seedTicket(t, store, domain.Ticket{Code: "0705-001", AppointmentAt: day.Add(11 * time.Hour)})
	seedTicket(t, store, domain.Ticket{Code: "0705-002", AppointmentAt: day.Add(9 * time.Hour), State: domain.StateCancelled})
	seedTicket(t, store, domain.Ticket{Code: "0705-003"})

	resp, err := svc.ListAppointments(ctx, "2024-05-08")
	require.NoError(t, err)
	require.Len(t, resp.Tickets, 2)
	assert.Equal(t, "0705-002", resp.Tickets[0].Code)
	assert.Equal(t, "0705-001", resp.Tickets[1].Code)

	_, err = svc.ListAppointments(ctx, "tomorrow")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestService_Statistics(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	seedTicket(t, store, domain.Ticket{Code: "0705-001"})
	seedTicket(t, store, domain.Ticket{Code: "0705-002", State: domain.StateAttended})
	seedTicket(t, store, domain.Ticket{Code: "0705-003", State: domain.StateCancelled})
	seedTicket(t, store, domain.Ticket{Code: "0705-004", AppointmentAt: now.AddDate(0, 0, 1)})

	stats, err := svc.Statistics(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, &models.StatisticsResponse{
		Date:      "2024-05-07",
		Total:     3,
		Pending:   1,
		Attended:  1,
		Cancelled: 1,
	}, stats)

	stats, err = svc.Statistics(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Zero(t, stats.Total)

	_, err = svc.Statistics(ctx, "2024-13-01")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestService_ValidateQR(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	seeded := seedTicket(t, store, domain.Ticket{Code: "0705-001", ClientName: "Ana", ServiceName: "Consulta", Channel: domain.ChannelQR})

	raw, err := domain.NewQRPayload(seeded).Encode()
	require.NoError(t, err)

	resp, err := svc.ValidateQR(ctx, &models.ValidateQRRequest{QRData: raw})
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Equal(t, seeded.ID, resp.Ticket.ID)

	_, err = svc.ValidateQR(ctx, &models.ValidateQRRequest{QRData: "not json"})
	assert.ErrorIs(t, err, ErrInvalidQRPayload)

	_, err = svc.ValidateQR(ctx, &models.ValidateQRRequest{QRData: `{"code":"0705-999"}`})
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestService_QRHistory(t *testing.T) {
	svc, store := newTestService(t)
	for i := 0; i < domain.QRHistoryLimit+5; i++ {
		ticket := domain.Ticket{
			Code:      domain.FormatCode("0705", i+1),
			Channel:   domain.ChannelQR,
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
			QRPayload: ptr.Ptr("{}"),
		}
		seedTicket(t, store, ticket)
	}
	seedTicket(t, store, domain.Ticket{Code: "0705-900", CreatedAt: now.Add(time.Hour)})

	resp, err := svc.QRHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Tickets, domain.QRHistoryLimit)
	assert.Equal(t, domain.FormatCode("0705", domain.QRHistoryLimit+5), resp.Tickets[0].Code)
}
