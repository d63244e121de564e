package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"

	"github.com/linemk/storefront/internal/lib/report"
	"github.com/linemk/storefront/internal/service"
)

// ListUsersHandler обрабатывает GET /api/admin/users
func ListUsersHandler(log *slog.Logger, adminService service.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListUsersHandler"
		logger := log.With(slog.String("op", op))

		users, err := adminService.ListUsers(r.Context())
		if err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, users)
	}
}

// DeleteUserHandler обрабатывает DELETE /api/admin/users/{id}
func DeleteUserHandler(log *slog.Logger, adminService service.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteUserHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := idParam(w, r, logger, "id")
		if !ok {
			return
		}

		if err := adminService.DeleteUser(r.Context(), userID); err != nil {
			writeError(w, logger, err)
			return
		}
		writeJSON(w, logger, http.StatusOK, MessageResponse{Message: "user has been deleted"})
	}
}

// SalesReportHandler обрабатывает GET /api/admin/sales_report?format=csv|xlsx, по умолчанию csv
func SalesReportHandler(log *slog.Logger, adminService service.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SalesReportHandler"
		logger := log.With(slog.String("op", op))

		format := strings.ToLower(r.URL.Query().Get("format"))
		if format == "" {
			format = report.FormatCSV
		}
		contentType, filename, ok := report.ContentType(format)
		if !ok {
			http.Error(w, "unsupported format", http.StatusBadRequest)
			return
		}

		rows, err := adminService.SalesReport(r.Context())
		if err != nil {
			writeError(w, logger, err)
			return
		}

		// отчёт собирается в буфер, чтобы при ошибке успеть вернуть 500
		var buf bytes.Buffer
		if err := report.Write(&buf, format, rows); err != nil {
			logger.Error("failed to render report", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", "attachment; filename="+filename)
		if _, err := buf.WriteTo(w); err != nil {
			logger.Error("failed to write report", slog.Any("error", err))
		}
	}
}
