package pglock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurnosService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurnosService/pkg/pgerr"
)

var (
	// ErrNotInTransaction advisory lock уровня транзакции без транзакции бессмыслен
	ErrNotInTransaction = errors.New("pglock: transaction required")

	// ErrLockTimeout блокировку не удалось получить за отведенное время
	ErrLockTimeout = errors.New("pglock: lock timeout")

	// ErrLock прочие ошибки получения блокировки
	ErrLock = errors.New("pglock: failed to acquire lock")
)

// XactLock берет транзакционную advisory-блокировку по строковому ключу.
// Блокировка освобождается при COMMIT/ROLLBACK. timeout > 0 ограничивает ожидание.
func XactLock(ctx context.Context, db dbmetrics.DBExecutor, key string, timeout time.Duration) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNotInTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, db)

	if timeout > 0 {
		// SET LOCAL не принимает параметры, значение формируется из целого числа миллисекунд
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = %d", timeout.Milliseconds())
		if _, err := executor.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: set lock_timeout: %v", ErrLock, err)
		}
	}

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
		if pgerr.Code(err) == pgerr.CodeLockNotAvailable {
			return fmt.Errorf("%w: key=%s", ErrLockTimeout, key)
		}
		return fmt.Errorf("%w: key=%s: %v", ErrLock, key, err)
	}

	return nil
}
