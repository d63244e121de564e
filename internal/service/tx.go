package service

import (
	"database/sql"
	"log/slog"
)

// rollback откатывает транзакцию, ошибку отката только логируем
func rollback(logger *slog.Logger, tx *sql.Tx) {
	if rbErr := tx.Rollback(); rbErr != nil {
		logger.Error("transaction rollback failed", slog.Any("error", rbErr))
	}
}
