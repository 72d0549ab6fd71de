package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TurnosService/internal/domain"
	"github.com/m04kA/SMC-TurnosService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurnosService/pkg/pgerr"
	"github.com/m04kA/SMC-TurnosService/pkg/pglock"
	"github.com/m04kA/SMC-TurnosService/pkg/psqlbuilder"
)

const (
	table = "queue_entries"

	constraintDayPosition = "queue_entries_day_position_key"
)

// Колонки записи очереди и присоединенного тикета
var joinedColumns = []string{
	"q.id",
	"q.ticket_id",
	"q.day",
	"q.position",
	"q.created_at",
	"t.code",
	"t.client_name",
	"t.phone",
	"t.service_name",
	"t.created_at",
	"t.appointment_at",
	"t.state",
	"t.channel",
	"t.notes",
	"t.called_at",
	"t.attended_at",
	"t.updated_at",
}

// Repository репозиторий очереди
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория очереди
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// dayParam день очереди как DATE без учета часового пояса сессии
func dayParam(day time.Time) string {
	return day.Format(domain.DateFormat)
}

// LockDay берет транзакционную блокировку очереди дня
func (r *Repository) LockDay(ctx context.Context, day time.Time, timeout time.Duration) error {
	err := pglock.XactLock(ctx, r.db, "queue_day:"+dayParam(day), timeout)
	if errors.Is(err, pglock.ErrLockTimeout) {
		return fmt.Errorf("%w: day=%s", ErrLockTimeout, dayParam(day))
	}
	if errors.Is(err, pglock.ErrNotInTransaction) {
		return err
	}
	if err != nil {
		return fmt.Errorf("%w: LockDay - %v", ErrExecQuery, err)
	}
	return nil
}

// LastPosition максимальная позиция дня, 0 для пустой очереди.
// Позиции плотные, поэтому совпадает с количеством записей.
func (r *Repository) LastPosition(ctx context.Context, day time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(MAX(position), 0)").
		From(table).
		Where(squirrel.Eq{"day": dayParam(day)}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: LastPosition - build select query: %v", ErrBuildQuery, err)
	}

	var position int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&position); err != nil {
		return 0, fmt.Errorf("%w: LastPosition - scan position: %v", ErrScanRow, err)
	}

	return position, nil
}

// Create добавляет запись в очередь
func (r *Repository) Create(ctx context.Context, entry *domain.QueueEntry) (*domain.QueueEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("ticket_id", "day", "position", "created_at").
		Values(entry.TicketID, dayParam(entry.Day), entry.Position, entry.CreatedAt).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID)
	if pgerr.IsUniqueViolation(err) {
		if pgerr.Constraint(err) == constraintDayPosition {
			return nil, fmt.Errorf("%w: day=%s, position=%d", ErrDuplicatePosition, dayParam(entry.Day), entry.Position)
		}
		return nil, fmt.Errorf("%w: ticket_id=%d, day=%s", ErrAlreadyQueued, entry.TicketID, dayParam(entry.Day))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return entry, nil
}

// ListForDay записи дня по возрастанию позиции вместе с тикетами
func (r *Repository) ListForDay(ctx context.Context, day time.Time) ([]*domain.QueueEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := joinedSelect().
		Where(squirrel.Eq{"q.day": dayParam(day)}).
		OrderBy("q.position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListForDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.QueueEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListForDay - scan entry: %v", ErrScanRow, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListForDay - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// NextPending запись с минимальной позицией, тикет которой еще в состоянии pending.
// Внутри транзакции тикет блокируется, параллельный вызов получит следующий.
func (r *Repository) NextPending(ctx context.Context, day time.Time) (*domain.QueueEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := joinedSelect().
		Where(squirrel.Eq{"q.day": dayParam(day)}).
		Where(squirrel.Eq{"t.state": domain.StatePending}).
		OrderBy("q.position ASC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE OF t SKIP LOCKED")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: NextPending - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: NextPending - scan entry: %v", ErrScanRow, err)
	}

	return entry, nil
}

// ExistsForTicket проверяет, стоит ли тикет в очереди дня
func (r *Repository) ExistsForTicket(ctx context.Context, ticketID int64, day time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(table).
		Where(squirrel.Eq{"ticket_id": ticketID, "day": dayParam(day)}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsForTicket - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsForTicket - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// DeleteAll удаляет все записи очереди (административный сброс)
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAll - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAll - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAll - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

func joinedSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(joinedColumns...).
		From(table + " q").
		Join("tickets t ON t.id = q.ticket_id")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*domain.QueueEntry, error) {
	var entry domain.QueueEntry
	var ticket domain.Ticket
	var updatedAt sql.NullTime

	err := row.Scan(
		&entry.ID,
		&entry.TicketID,
		&entry.Day,
		&entry.Position,
		&entry.CreatedAt,
		&ticket.Code,
		&ticket.ClientName,
		&ticket.Phone,
		&ticket.ServiceName,
		&ticket.CreatedAt,
		&ticket.AppointmentAt,
		&ticket.State,
		&ticket.Channel,
		&ticket.Notes,
		&ticket.CalledAt,
		&ticket.AttendedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	ticket.ID = entry.TicketID
	ticket.UpdatedAt = updatedAt.Time
	entry.Ticket = &ticket

	return &entry, nil
}
