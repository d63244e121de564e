package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/storefront/internal/service"
)

// UpdateProfileRequest - пустой email удаляет адрес почты из профиля
type UpdateProfileRequest struct {
	Name    string `json:"name" validate:"required,max=128"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"max=256"`
}

// GetProfileHandler обрабатывает GET /api/profile
func GetProfileHandler(log *slog.Logger, profileService service.ProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetProfileHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := userIDFromRequest(w, r, logger)
		if !ok {
			return
		}

		user, err := profileService.GetProfile(r.Context(), userID)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, user)
	}
}

// UpdateProfileHandler обрабатывает PUT /api/profile
func UpdateProfileHandler(log *slog.Logger, profileService service.ProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateProfileHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := userIDFromRequest(w, r, logger)
		if !ok {
			return
		}

		var req UpdateProfileRequest
		if !decodeAndValidate(w, r, logger, &req) {
			return
		}

		user, err := profileService.UpdateProfile(r.Context(), userID, req.Name, req.Email, req.Address)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, user)
	}
}
