package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/hmaulana/maintenance-management/internal/core/identity"
)

// Service implements the session manager's Authenticator contract against
// the local user table. It deliberately does NOT validate the stored role
// against the closed set: that check belongs to the session manager, which
// treats an unplaceable role as a hard login failure. The service reports
// what the database says.
type Service struct {
	userRepo   UserRepository
	tokens     TokenGenerator
	logger     *slog.Logger
	bcryptCost int
}

func NewService(userRepo UserRepository, tokens TokenGenerator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		userRepo:   userRepo,
		tokens:     tokens,
		logger:     logger,
		bcryptCost: bcrypt.DefaultCost,
	}
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &JWTTokenGenerator{Secret: []byte(secret), TTL: ttl}
}

// Login verifies the credentials and returns the user with a fresh bearer
// token. Lookup failures and password mismatches collapse into the same
// credentials error so callers cannot probe which emails exist.
func (s *Service) Login(ctx context.Context, email, password string) (*identity.User, string, error) {
	record, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !record.IsActive {
		return nil, "", ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	user := &identity.User{
		ID:         record.ID,
		Email:      record.Email,
		Name:       record.Name,
		Role:       identity.Role(record.Role),
		FirstLogin: record.FirstLogin,
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, "", fmt.Errorf("generate session token: %w", err)
	}

	return user, token, nil
}

// Logout has nothing to revoke server-side; tokens are stateless and the
// session manager purges the persisted pair regardless of this result.
func (s *Service) Logout(ctx context.Context) error {
	s.logger.Debug("logout acknowledged")
	return nil
}

// ValidateToken checks a bearer token and returns its claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return s.tokens.Validate(tokenString)
}

// HashPassword creates a bcrypt hash of the password.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (j *JWTTokenGenerator) Generate(user *identity.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: strconv.FormatInt(user.ID, 10),
		Email:  user.Email,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   strconv.FormatInt(user.ID, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTTokenGenerator) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
