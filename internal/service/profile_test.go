package service_test

import (
	"context"
	"testing"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_UpdateProfile(t *testing.T) {
	repo := newFakeUserRepo()
	email := "old@example.com"
	_, err := repo.CreateUser(context.Background(), &models.User{Username: "alice", Name: "Alice", Email: &email})
	require.NoError(t, err)

	profileSvc := service.NewProfileService(newTestLogger(), repo)
	ctx := context.Background()

	user, err := profileSvc.UpdateProfile(ctx, 1, "Alice B", "new@example.com", "Second st. 2")
	require.NoError(t, err)
	assert.Equal(t, "Alice B", user.Name)
	require.NotNil(t, user.Email)
	assert.Equal(t, "new@example.com", *user.Email)
	assert.Equal(t, "Second st. 2", user.Address)

	// пустой email сбрасывается в NULL
	user, err = profileSvc.UpdateProfile(ctx, 1, "Alice B", "  ", "Second st. 2")
	require.NoError(t, err)
	assert.Nil(t, user.Email)

	_, err = profileSvc.UpdateProfile(ctx, 99, "Ghost", "", "")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	profileSvc := service.NewProfileService(newTestLogger(), newFakeUserRepo())

	_, err := profileSvc.GetProfile(context.Background(), 1)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
