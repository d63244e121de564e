package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// коды ошибок postgres, которые обрабатываем отдельно
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqLockNotAvailable    = "55P03"
)

// ErrResourceLocked - строка заблокирована параллельной транзакцией (NOWAIT)
var ErrResourceLocked = errors.New("resource is locked, please try again")

// querier - общий интерфейс *sql.DB и *sql.Tx для запросов на чтение
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// pqCode возвращает код ошибки postgres и имя ограничения, если это *pq.Error
func pqCode(err error) (string, string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint, true
	}
	return "", "", false
}

func isLockNotAvailable(err error) bool {
	code, _, ok := pqCode(err)
	return ok && code == pqLockNotAvailable
}
