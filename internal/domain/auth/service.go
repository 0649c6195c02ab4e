package auth

import "context"

// Service defines authentication business logic.
type Service interface {
	// Login verifies employee-code credentials and issues tokens.
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Refresh exchanges a valid refresh token for a new token pair.
	Refresh(ctx context.Context, req RefreshRequest) (TokenResponse, error)

	// Logout revokes the refresh token.
	Logout(ctx context.Context, refreshToken string) error
}
