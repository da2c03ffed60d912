package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	domain "github.com/nexhr/worktime-backend-go/internal/domain/auth"
	"github.com/nexhr/worktime-backend-go/internal/domain/user"
	"github.com/nexhr/worktime-backend-go/internal/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]user.User // keyed by email
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u, ok := f.users[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	f.users[u.Email] = u
	return u, nil
}

func newTestAuthService(t *testing.T) (domain.Service, *fakeUserRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeUserRepo{users: map[string]user.User{
		"jane@example.com": {
			ID:           "u-1",
			Email:        "jane@example.com",
			PasswordHash: string(hash),
			FullName:     "Jane Admin",
			Role:         user.RoleAdmin,
		},
	}}

	jwtService := jwt.NewJWTService("test-secret", "15m", "168h")
	return NewAuthService(repo, jwtService), repo
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "u-1", resp.UserID)
	assert.Equal(t, "admin", resp.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _ := newTestAuthService(t)

	login, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "u-1", refreshed.UserID)

	// The presented token is single-use.
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrRefreshTokenRevoked)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newTestAuthService(t)

	login, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc, _ := newTestAuthService(t)

	login, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "jane@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.RefreshToken))

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrRefreshTokenRevoked)
}
