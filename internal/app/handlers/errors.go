package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/service"
	"github.com/linemk/storefront/internal/storage"
)

// writeError переводит ошибку сервиса в HTTP-статус. Неизвестные ошибки - 500 без подробностей.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var (
		stockErr *models.InsufficientStockError
		dupErr   *models.DuplicateUserError
	)
	switch {
	case errors.As(err, &stockErr):
		http.Error(w, stockErr.Error(), http.StatusConflict)
	case errors.As(err, &dupErr):
		http.Error(w, dupErr.Error(), http.StatusConflict)
	case errors.Is(err, storage.ErrResourceLocked):
		http.Error(w, storage.ErrResourceLocked.Error(), http.StatusConflict)
	case errors.Is(err, models.ErrEmptyCart):
		http.Error(w, models.ErrEmptyCart.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrInvalidQuantity):
		http.Error(w, models.ErrInvalidQuantity.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, service.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, notFoundMessage(err), http.StatusNotFound)
	default:
		logger.Error("internal error", slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, storage.ErrProductNotFound):
		return "product not found"
	case errors.Is(err, models.ErrCartItemNotFound):
		return "cart item not found"
	case errors.Is(err, storage.ErrOrderNotFound):
		return "order not found"
	case errors.Is(err, storage.ErrUserNotFound):
		return "user not found"
	}
	return "not found"
}
