package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/zirz1911/global-security-hub/internal/database/models"
)

// Authenticator defines the interface for admin authentication operations.
type Authenticator interface {
	Login(ctx context.Context, input LoginInput) (*AuthResponse, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// SessionSigner defines the interface for session token operations.
type SessionSigner interface {
	Issue(userID uuid.UUID, email, name, role string) (string, error)
	Validate(tokenString string) (*SessionClaims, error)
}

// Compile-time interface satisfaction checks
var (
	_ Authenticator = (*Service)(nil)
	_ SessionSigner = (*SessionService)(nil)
)
