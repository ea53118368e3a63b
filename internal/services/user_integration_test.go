package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/repository"
	"library-backend/internal/services"
	"library-backend/internal/testutil"
)

func Test_CreateUser_AndVerify(t *testing.T) {
	pool := testutil.MustOpenTestPool(t)
	userRepo := repository.NewUserRepository(pool)
	userService := services.NewUserService(userRepo)
	authService := services.NewAuthService(userRepo)
	ctx := context.Background()

	created, err := userService.CreateUser(ctx, "reader@library.local", "secret1")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.IsAdmin, "созданный пользователь не администратор")

	verified, err := authService.Verify(ctx, "reader@library.local", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, verified.ID)

	_, err = authService.Verify(ctx, "reader@library.local", "wrong-password")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = authService.Verify(ctx, "nobody@library.local", "secret1")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func Test_CreateUser_DuplicateEmail(t *testing.T) {
	pool := testutil.MustOpenTestPool(t)
	userService := services.NewUserService(repository.NewUserRepository(pool))
	ctx := context.Background()

	_, err := userService.CreateUser(ctx, "reader@library.local", "secret1")
	require.NoError(t, err)

	_, err = userService.CreateUser(ctx, "reader@library.local", "another-secret")
	assert.ErrorIs(t, err, services.ErrUserExists)
}

func Test_CreateUser_Validation(t *testing.T) {
	pool := testutil.MustOpenTestPool(t)
	userService := services.NewUserService(repository.NewUserRepository(pool))
	ctx := context.Background()

	_, err := userService.CreateUser(ctx, "no-at-sign", "secret1")
	assert.ErrorIs(t, err, services.ErrInvalidEmail)

	_, err = userService.CreateUser(ctx, "reader@library.local", "12345")
	assert.ErrorIs(t, err, services.ErrShortPassword)
}
