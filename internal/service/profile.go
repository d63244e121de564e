package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/storage"
)

// ProfileService - просмотр и изменение профиля текущего пользователя
type ProfileService interface {
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, name, email, address string) (*models.User, error)
}

type profileService struct {
	log      *slog.Logger
	userRepo storage.UserStorage
}

func NewProfileService(log *slog.Logger, userRepo storage.UserStorage) ProfileService {
	return &profileService{
		log:      log,
		userRepo: userRepo,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	const op = "service.ProfileService.GetProfile"

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		s.log.Error("failed to get user by id", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}
	return user, nil
}

// UpdateProfile перезаписывает имя, email и адрес. Пустой email сохраняется как NULL.
func (s *profileService) UpdateProfile(ctx context.Context, userID int64, name, email, address string) (*models.User, error) {
	const op = "service.ProfileService.UpdateProfile"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID))
	logger.Info("updating profile")

	var emailPtr *string
	if email = strings.TrimSpace(email); email != "" {
		emailPtr = &email
	}

	if err := s.userRepo.UpdateUserProfile(ctx, userID, name, emailPtr, address); err != nil {
		logger.Warn("failed to update profile", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to update profile: %w", op, err)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		logger.Error("failed to reload user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to reload user: %w", op, err)
	}
	return user, nil
}
