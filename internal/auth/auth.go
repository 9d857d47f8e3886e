package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	userDatamodel "github.com/hmaulana/maintenance-management/internal/core/datamodel/user"
	"github.com/hmaulana/maintenance-management/internal/core/identity"
)

// UserRepository loads credential records for authentication.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
}

// TokenGenerator issues and validates the opaque bearer tokens paired with
// a session.
type TokenGenerator interface {
	Generate(user *identity.User) (string, error)
	Validate(tokenString string) (*Claims, error)
}

// Claims are the JWT claims carried by a session token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	Secret []byte
	TTL    time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserInactive       = errors.New("user is inactive")
)
