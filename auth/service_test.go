package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/finwallet/wallet-server/auth"
	"github.com/finwallet/wallet-server/internal/errors"
	"github.com/finwallet/wallet-server/token"
	"github.com/finwallet/wallet-server/users"
	"github.com/finwallet/wallet-server/users/repoinmemory"
)

type serviceFixture struct {
	userRepo *repoinmemory.UserRepo
	codec    *token.Codec
	service  *auth.Service
}

func setupServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	userRepo := repoinmemory.NewUserRepo()
	codec := token.NewCodec([]byte("service-test-secret"))
	service, err := auth.NewService(userRepo, codec, time.Hour, 7*24*time.Hour)
	require.NoError(t, err)

	return &serviceFixture{userRepo: userRepo, codec: codec, service: service}
}

func (f *serviceFixture) register(t *testing.T, username, email, password string, role token.RoleType) *users.User {
	t.Helper()
	user, err := f.service.Register(username, email, password, role)
	require.NoError(t, err)
	return user
}

func TestRegisterAssignsIDAndHashesPassword(t *testing.T) {
	f := setupServiceFixture(t)

	user := f.register(t, "pippo", "pippo@example.com", "password123", token.RoleRegular)
	require.NotEmpty(t, user.ID)
	require.NotEqual(t, "password123", user.PasswordHash)
	require.True(t, users.CheckPasswordHash("password123", user.PasswordHash))
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	f := setupServiceFixture(t)
	f.register(t, "pippo", "pippo@example.com", "password123", token.RoleRegular)

	_, err := f.service.Register("pippo", "other@example.com", "password123", token.RoleRegular)
	require.ErrorIs(t, err, errors.ErrUserAlreadyExists)

	_, err = f.service.Register("other", "pippo@example.com", "password123", token.RoleRegular)
	require.ErrorIs(t, err, errors.ErrUserAlreadyExists)
}

func TestLoginMintsMatchingPairAndStoresRefreshToken(t *testing.T) {
	f := setupServiceFixture(t)
	f.register(t, "pippo", "pippo@example.com", "password123", token.RoleRegular)

	user, pair, err := f.service.Login("pippo@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	accessClaims, err := f.codec.Verify(pair.AccessToken)
	require.NoError(t, err)
	refreshClaims, err := f.codec.Verify(pair.RefreshToken)
	require.NoError(t, err)
	require.True(t, accessClaims.Matches(refreshClaims))
	require.Equal(t, user.Username, accessClaims.Username)

	stored, err := f.userRepo.GetByUsername("pippo")
	require.NoError(t, err)
	require.Equal(t, pair.RefreshToken, stored.RefreshToken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := setupServiceFixture(t)
	f.register(t, "pippo", "pippo@example.com", "password123", token.RoleRegular)

	_, _, err := f.service.Login("pippo@example.com", "wrong")
	require.ErrorIs(t, err, errors.ErrInvalidCredentials)

	_, _, err = f.service.Login("nobody@example.com", "password123")
	require.ErrorIs(t, err, errors.ErrUserNotFound)
}

func TestLoginOverwritesPreviousRefreshToken(t *testing.T) {
	f := setupServiceFixture(t)
	f.register(t, "pippo", "pippo@example.com", "password123", token.RoleRegular)

	_, first, err := f.service.Login("pippo@example.com", "password123")
	require.NoError(t, err)

	token.NowTimeFunc = func() time.Time { return time.Now().Add(time.Second) }
	defer func() { token.NowTimeFunc = time.Now }()

	_, second, err := f.service.Login("pippo@example.com", "password123")
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	stored, err := f.userRepo.GetByUsername("pippo")
	require.NoError(t, err)
	require.Equal(t, second.RefreshToken, stored.RefreshToken)
}

func TestLogoutNullsStoredRefreshToken(t *testing.T) {
	f := setupServiceFixture(t)
	f.register(t, "pippo", "pippo@example.com", "password123", token.RoleRegular)

	_, pair, err := f.service.Login("pippo@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(pair.RefreshToken))

	stored, err := f.userRepo.GetByUsername("pippo")
	require.NoError(t, err)
	require.Empty(t, stored.RefreshToken)

	// A second logout with the same token no longer resolves a user.
	require.ErrorIs(t, f.service.Logout(pair.RefreshToken), errors.ErrUserNotFound)
}
