package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/storage"
)

// AdminService - операции администратора. Права проверяет middleware, здесь проверок нет.
type AdminService interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
	SalesReport(ctx context.Context) ([]models.SalesRow, error)
}

type adminService struct {
	log        *slog.Logger
	userRepo   storage.UserStorage
	reportRepo storage.ReportStorage
}

func NewAdminService(log *slog.Logger, userRepo storage.UserStorage, reportRepo storage.ReportStorage) AdminService {
	return &adminService{
		log:        log,
		userRepo:   userRepo,
		reportRepo: reportRepo,
	}
}

func (s *adminService) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "service.AdminService.ListUsers"

	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		s.log.Error("failed to list users", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to list users: %w", op, err)
	}
	return users, nil
}

// DeleteUser удаляет пользователя, его корзина удаляется каскадом
func (s *adminService) DeleteUser(ctx context.Context, userID int64) error {
	const op = "service.AdminService.DeleteUser"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID))
	logger.Info("deleting user")

	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		logger.Warn("failed to delete user", slog.Any("error", err))
		return fmt.Errorf("%s: failed to delete user: %w", op, err)
	}

	logger.Info("user deleted")
	return nil
}

func (s *adminService) SalesReport(ctx context.Context) ([]models.SalesRow, error) {
	const op = "service.AdminService.SalesReport"

	rows, err := s.reportRepo.GetSalesRows(ctx)
	if err != nil {
		s.log.Error("failed to get sales rows", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get sales rows: %w", op, err)
	}

	s.log.Info("sales report built", slog.String("op", op), slog.Int("rows", len(rows)))
	return rows, nil
}
