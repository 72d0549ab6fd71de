package ticket

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

const table = "tickets"

var columns = []string{
	"id",
	"code",
	"client_name",
	"phone",
	"service_name",
	"created_at",
	"appointment_at",
	"state",
	"channel",
	"qr_payload",
	"notes",
	"called_at",
	"attended_at",
	"updated_at",
}

// Repository репозиторий тикетов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория тикетов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет тикет. Код должен быть уже присвоен.
// Нарушение уникальности кода возвращается как ErrDuplicateCode.
func (r *Repository) Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"code",
			"client_name",
			"phone",
			"service_name",
			"created_at",
			"appointment_at",
			"state",
			"channel",
			"qr_payload",
			"notes",
			"updated_at",
		).
		Values(
			ticket.Code,
			ticket.ClientName,
			ticket.Phone,
			ticket.ServiceName,
			ticket.CreatedAt,
			ticket.AppointmentAt,
			ticket.State,
			ticket.Channel,
			ticket.QRPayload,
			ticket.Notes,
			ticket.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&ticket.ID)
	if pgerr.IsUniqueViolation(err) {
		return nil, fmt.Errorf("%w: code=%s", ErrDuplicateCode, ticket.Code)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return ticket, nil
}

// GetByID получает тикет по ID.
// Внутри транзакции строка блокируется (FOR UPDATE) до ее завершения.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	return r.getOne(ctx, "GetByID", builder)
}

// GetByCode получает тикет по коду
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Ticket, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"code": code})

	return r.getOne(ctx, "GetByCode", builder)
}

func (r *Repository) getOne(ctx context.Context, op string, builder squirrel.SelectBuilder) (*domain.Ticket, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	ticket, err := scanTicket(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan ticket: %v", ErrScanRow, op, err)
	}

	return ticket, nil
}

// List выборка тикетов по фильтру
//
// Примеры:
//
// 1. Тикеты дня по порядку создания:
//    filter := domain.TicketFilter{From: &dayStart, To: &dayEnd}
//
// 2. Записи дня по времени приема, без отмененных:
//    filter := domain.TicketFilter{From: &dayStart, To: &dayEnd, ExcludeCancelled: true, OrderBy: domain.OrderByAppointmentAsc}
//
// 3. Последние QR тикеты:
//    filter := domain.TicketFilter{OnlyWithQR: true, OrderBy: domain.OrderByCreatedDesc, Limit: 20}
func (r *Repository) List(ctx context.Context, filter domain.TicketFilter) ([]*domain.Ticket, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).From(table)

	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"appointment_at": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"appointment_at": *filter.To})
	}
	if filter.State != nil {
		builder = builder.Where(squirrel.Eq{"state": *filter.State})
	}
	if filter.Channel != nil {
		builder = builder.Where(squirrel.Eq{"channel": *filter.Channel})
	}
	if filter.ExcludeCancelled {
		builder = builder.Where(squirrel.NotEq{"state": domain.StateCancelled})
	}
	if filter.OnlyWithQR {
		builder = builder.Where(squirrel.NotEq{"qr_payload": nil})
	}
	if filter.CalledBefore != nil {
		builder = builder.
			Where(squirrel.Eq{"state": domain.StateCalled}).
			Where(squirrel.Lt{"called_at": *filter.CalledBefore})
	}

	switch filter.OrderBy {
	case domain.OrderByAppointmentAsc:
		builder = builder.OrderBy("appointment_at ASC", "id ASC")
	case domain.OrderByCreatedDesc:
		builder = builder.OrderBy("created_at DESC", "id DESC")
	default:
		builder = builder.OrderBy("created_at ASC", "id ASC")
	}

	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	// Воркер no-show забирает строки под блокировкой, пропуская занятые параллельными запросами
	if filter.CalledBefore != nil && dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE SKIP LOCKED")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tickets := make([]*domain.Ticket, 0)
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan ticket: %v", ErrScanRow, err)
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return tickets, nil
}

// CountByState количество тикетов по состояниям с приемом в периоде [from, to)
func (r *Repository) CountByState(ctx context.Context, from, to time.Time) (map[domain.TicketState]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("state", "COUNT(*)").
		From(table).
		Where(squirrel.GtOrEq{"appointment_at": from}).
		Where(squirrel.Lt{"appointment_at": to}).
		GroupBy("state").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountByState - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByState - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[domain.TicketState]int)
	for rows.Next() {
		var state domain.TicketState
		var count int
		if err := rows.Scan(&state, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByState - scan row: %v", ErrScanRow, err)
		}
		counts[state] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByState - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// Update сохраняет изменяемые поля тикета: состояние, заметки, метки времени вызова и обслуживания
func (r *Repository) Update(ctx context.Context, ticket *domain.Ticket) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("state", ticket.State).
		Set("notes", ticket.Notes).
		Set("called_at", ticket.CalledAt).
		Set("attended_at", ticket.AttendedAt).
		Set("updated_at", ticket.UpdatedAt).
		Where(squirrel.Eq{"id": ticket.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTicketNotFound
	}

	return nil
}

// LockCodePrefix берет транзакционную блокировку нумерации для префикса дня.
// Вызывается только внутри транзакции, освобождается при ее завершении.
func (r *Repository) LockCodePrefix(ctx context.Context, prefix string, timeout time.Duration) error {
	err := pglock.XactLock(ctx, r.db, "ticket_code:"+prefix, timeout)
	if errors.Is(err, pglock.ErrLockTimeout) {
		return fmt.Errorf("%w: prefix=%s", ErrLockTimeout, prefix)
	}
	if errors.Is(err, pglock.ErrNotInTransaction) {
		return err
	}
	if err != nil {
		return fmt.Errorf("%w: LockCodePrefix - %v", ErrExecQuery, err)
	}
	return nil
}

// ListCodesWithPrefix коды всех тикетов с префиксом дня, за все годы
func (r *Repository) ListCodesWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("code").
		From(table).
		Where(squirrel.Like{"code": prefix + "-%"}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListCodesWithPrefix - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCodesWithPrefix - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	codes := make([]string, 0)
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("%w: ListCodesWithPrefix - scan code: %v", ErrScanRow, err)
		}
		codes = append(codes, code)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCodesWithPrefix - rows error: %v", ErrScanRow, err)
	}

	return codes, nil
}

// DeleteAll удаляет все тикеты (административный сброс). Записи очереди удаляются каскадно.
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

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTicket(row rowScanner) (*domain.Ticket, error) {
	var ticket domain.Ticket
	var updatedAt sql.NullTime

	err := row.Scan(
		&ticket.ID,
		&ticket.Code,
		&ticket.ClientName,
		&ticket.Phone,
		&ticket.ServiceName,
		&ticket.CreatedAt,
		&ticket.AppointmentAt,
		&ticket.State,
		&ticket.Channel,
		&ticket.QRPayload,
		&ticket.Notes,
		&ticket.CalledAt,
		&ticket.AttendedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	ticket.UpdatedAt = updatedAt.Time

	return &ticket, nil
}
