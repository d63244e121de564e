package jwtmiddleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/linemk/storefront/internal/domain/models"
)

// UserLookup загружает пользователя по id
type UserLookup interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// NewAdminMiddleware пропускает только администраторов. Ставится после NewJWTMiddleware.
// Флаг is_admin читается из БД на каждый запрос.
func NewAdminMiddleware(log *slog.Logger, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "jwtmiddleware.Admin"
			userID, ok := FromContext(r.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			user, err := users.GetUserByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, models.ErrNotFound) {
					http.Error(w, "unauthorized", http.StatusUnauthorized)
					return
				}
				log.Error("failed to load user", slog.String("op", op), slog.Int64("userID", userID), slog.Any("error", err))
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			if !user.IsAdmin {
				log.Warn("admin access denied", slog.String("op", op), slog.Int64("userID", userID))
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
