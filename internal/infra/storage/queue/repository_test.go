package queue

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
	"github.com/m04kA/SMC-TurnosService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurnosService/pkg/pgerr"
)

var day = time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC)

func newMock(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db := dbmetrics.Wrap(sqlDB, nil, "test")
	return NewRepository(db), db, mock
}

func entryRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "ticket_id", "day", "position", "created_at",
		"code", "client_name", "phone", "service_name", "created_at", "appointment_at",
		"state", "channel", "notes", "called_at", "attended_at", "updated_at",
	})
}

func TestRepository_LastPosition(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(position), 0) FROM queue_entries WHERE day = $1")).
		WithArgs("2024-05-07").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(4))

	position, err := repo.LastPosition(context.Background(), day)

	require.NoError(t, err)
	assert.Equal(t, 4, position)
}

func TestRepository_Create(t *testing.T) {
	repo, _, mock := newMock(t)
	now := day.Add(8 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO queue_entries (ticket_id,day,position,created_at) VALUES ($1,$2,$3,$4) RETURNING id")).
		WithArgs(int64(10), "2024-05-07", 5, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	entry, err := repo.Create(context.Background(), &domain.QueueEntry{TicketID: 10, Day: day, Position: 5, CreatedAt: now})

	require.NoError(t, err)
	assert.Equal(t, int64(3), entry.ID)
}

func TestRepository_Create_UniqueViolations(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery("INSERT INTO queue_entries").
		WillReturnError(&pq.Error{Code: pgerr.CodeUniqueViolation, Constraint: "queue_entries_day_position_key"})
	mock.ExpectQuery("INSERT INTO queue_entries").
		WillReturnError(&pq.Error{Code: pgerr.CodeUniqueViolation, Constraint: "queue_entries_ticket_day_key"})

	_, err := repo.Create(context.Background(), &domain.QueueEntry{TicketID: 1, Day: day, Position: 1})
	assert.ErrorIs(t, err, ErrDuplicatePosition)

	_, err = repo.Create(context.Background(), &domain.QueueEntry{TicketID: 1, Day: day, Position: 2})
	assert.ErrorIs(t, err, ErrAlreadyQueued)
}

func TestRepository_ListForDay(t *testing.T) {
	repo, _, mock := newMock(t)
	now := day.Add(8 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("FROM queue_entries q JOIN tickets t ON t.id = q.ticket_id WHERE q.day = $1 ORDER BY q.position ASC")).
		WithArgs("2024-05-07").
		WillReturnRows(entryRows().
			AddRow(int64(1), int64(10), day, 1, now, "0705-001", "Ana", nil, "Pagos", now, now, "called", "manual", nil, now, nil, now).
			AddRow(int64(2), int64(11), day, 2, now, "0705-002", "Luis", nil, "Pagos", now, now, "pending", "qr", nil, nil, nil, now))

	entries, err := repo.ListForDay(context.Background(), day)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, int64(10), entries[0].Ticket.ID)
	assert.Equal(t, domain.StateCalled, entries[0].Ticket.State)
	require.NotNil(t, entries[0].Ticket.CalledAt)
	assert.Equal(t, "0705-002", entries[1].Ticket.Code)
}

func TestRepository_NextPending(t *testing.T) {
	repo, db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE q.day = $1 AND t.state = $2 ORDER BY q.position ASC LIMIT 1")).
		WithArgs("2024-05-07", "pending").
		WillReturnRows(entryRows())

	_, err := repo.NextPending(context.Background(), day)
	assert.ErrorIs(t, err, ErrEntryNotFound)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT 1 FOR UPDATE OF t SKIP LOCKED")).
		WillReturnRows(entryRows().
			AddRow(int64(2), int64(11), day, 2, day, "0705-002", "Luis", nil, "Pagos", day, day, "pending", "qr", nil, nil, nil, day))

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	entry, err := repo.NextPending(dbmetrics.WithTx(context.Background(), tx), day)
	require.NoError(t, err)
	assert.Equal(t, 2, entry.Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ExistsForTicket(t *testing.T) {
	repo, _, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS ( SELECT 1 FROM queue_entries WHERE day = $1 AND ticket_id = $2 )")).
		WithArgs("2024-05-07", int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsForTicket(context.Background(), 10, day)

	require.NoError(t, err)
	assert.True(t, exists)
}
