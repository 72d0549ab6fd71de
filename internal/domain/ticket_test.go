package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTicketState(t *testing.T) {
	for _, s := range AllStates {
		parsed, err := ParseTicketState(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseTicketState("done")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestTicket_Transition(t *testing.T) {
	t0 := time.Date(2024, 5, 7, 9, 0, 0, 0, time.UTC)
	t1 := t0.Add(5 * time.Minute)

	tests := []struct {
		name      string
		from      TicketState
		to        TicketState
		changed   bool
		expectErr error
	}{
		{"pending to called", StatePending, StateCalled, true, nil},
		{"pending to attended", StatePending, StateAttended, true, nil},
		{"pending to cancelled", StatePending, StateCancelled, true, nil},
		{"called to attended", StateCalled, StateAttended, true, nil},
		{"called to cancelled", StateCalled, StateCancelled, true, nil},
		{"attended to cancelled", StateAttended, StateCancelled, true, nil},
		{"called again is noop", StateCalled, StateCalled, false, nil},
		{"cancelled again is noop", StateCancelled, StateCancelled, false, nil},
		{"attended to called", StateAttended, StateCalled, false, ErrTransitionNotAllowed},
		{"called to pending", StateCalled, StatePending, false, ErrTransitionNotAllowed},
		{"cancelled to pending", StateCancelled, StatePending, false, ErrTransitionNotAllowed},
		{"cancelled to attended", StateCancelled, StateAttended, false, ErrTransitionNotAllowed},
		{"unknown target", StatePending, TicketState("done"), false, ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket := &Ticket{State: tt.from, UpdatedAt: t0}

			changed, err := ticket.Transition(tt.to, t1)

			if tt.expectErr != nil {
				require.ErrorIs(t, err, tt.expectErr)
				assert.Equal(t, tt.from, ticket.State)
				assert.Equal(t, t0, ticket.UpdatedAt)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.changed, changed)
			assert.Equal(t, tt.to, ticket.State)
		})
	}
}

func TestTicket_TransitionSetsTimestampsOnce(t *testing.T) {
	t0 := time.Date(2024, 5, 7, 9, 0, 0, 0, time.UTC)
	ticket := &Ticket{State: StatePending}

	_, err := ticket.Transition(StateCalled, t0)
	require.NoError(t, err)
	require.NotNil(t, ticket.CalledAt)
	assert.Equal(t, t0, *ticket.CalledAt)

	changed, err := ticket.Transition(StateCalled, t0.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, t0, *ticket.CalledAt)

	_, err = ticket.Transition(StateAttended, t0.Add(2*time.Minute))
	require.NoError(t, err)
	require.NotNil(t, ticket.AttendedAt)
	assert.Equal(t, t0.Add(2*time.Minute), *ticket.AttendedAt)

	_, err = ticket.Transition(StateCalled, t0.Add(3*time.Minute))
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, t0.Add(2*time.Minute), *ticket.AttendedAt)
}

func TestParseChannel(t *testing.T) {
	ch, err := ParseChannel("qr")
	require.NoError(t, err)
	assert.Equal(t, ChannelQR, ch)

	_, err = ParseChannel("web")
	assert.ErrorIs(t, err, ErrInvalidChannel)
}

func TestStatistics_Add(t *testing.T) {
	var s Statistics
	s.Add(StatePending, 3)
	s.Add(StateCalled, 1)
	s.Add(StateCancelled, 2)
	s.Add(TicketState("unknown"), 7)

	assert.Equal(t, Statistics{Total: 6, Pending: 3, Called: 1, Cancelled: 2}, s)
}
