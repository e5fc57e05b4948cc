package auth

import "context"

// AuthService issues and rotates the tokens the attendance endpoints verify.
type AuthService interface {
	// Login verifies credentials and issues an access/refresh token pair
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// Refresh exchanges a valid refresh token for a new token pair
	Refresh(ctx context.Context, req RefreshTokenRequest) (TokenResponse, error)

	// Logout revokes a refresh token
	Logout(ctx context.Context, req RefreshTokenRequest) error
}
