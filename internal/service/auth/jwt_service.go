package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taskhive/taskhive-api/internal/domain"
)

// Claims holds the validated identity claims extracted from a token.
type Claims struct {
	UserID    uuid.UUID
	Role      domain.Role
	TokenType string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}

// JWTService defines the interface for issuing and validating bearer tokens.
type JWTService interface {
	// GenerateToken creates a signed access token carrying the user's ID
	// and role.
	GenerateToken(ctx context.Context, userID uuid.UUID, role domain.Role) (string, error)

	// ValidateToken verifies a token's signature, expiry, and type, and
	// returns its claims. Returns ErrExpiredToken or ErrInvalidToken on
	// failure.
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}
