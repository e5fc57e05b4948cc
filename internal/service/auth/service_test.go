package auth

import (
	"context"
	"testing"

	"github.com/staffhub-dev/timeclock-backend-go/internal/domain/auth"
	"github.com/staffhub-dev/timeclock-backend-go/internal/domain/user"
	"github.com/staffhub-dev/timeclock-backend-go/internal/pkg/jwt"
	"github.com/staffhub-dev/timeclock-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) ListIDsByRole(ctx context.Context, role user.Role) ([]string, error) {
	return nil, nil
}

func newTestAuthService(t *testing.T) (auth.AuthService, jwt.Service) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	hashedStr := string(hashed)

	repo := &fakeUserRepo{users: map[string]user.User{
		"user-1": {
			ID:           "user-1",
			Name:         "Test User",
			Email:        "test@example.com",
			PasswordHash: &hashedStr,
			Role:         user.RoleEmployee,
		},
	}}

	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
	return NewAuthService(repo, jwtService), jwtService
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "test@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, "user-1", resp.User.ID)
	assert.Equal(t, "employee", resp.User.Role)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotEmpty(t, resp.Token.RefreshToken)
	assert.Greater(t, resp.Token.RefreshTokenExpiresIn, resp.Token.AccessTokenExpiresIn)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "test@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginValidation(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{})

	var validationErrs validator.ValidationErrors
	assert.ErrorAs(t, err, &validationErrs)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _ := newTestAuthService(t)

	loginResp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "test@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	refreshResp, err := svc.Refresh(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: loginResp.Token.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshResp.AccessToken)

	// The presented refresh token is single-use.
	_, err = svc.Refresh(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: loginResp.Token.RefreshToken,
	})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, jwtService := newTestAuthService(t)

	accessToken, _, err := jwtService.GenerateAccessToken("user-1", "test@example.com", user.RoleEmployee)
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: accessToken,
	})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc, jwtService := newTestAuthService(t)

	loginResp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "test@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	req := auth.RefreshTokenRequest{RefreshToken: loginResp.Token.RefreshToken}
	require.NoError(t, svc.Logout(context.Background(), req))

	assert.True(t, jwtService.IsTokenRevoked(loginResp.Token.RefreshToken))
	_, err = svc.Refresh(context.Background(), req)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
