package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/kanban-backend/internal/domain"
)

// userRepo defines the user repository interface needed by auth service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
}

// passwordHasher defines the password hashing interface needed by auth service.
type passwordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// tokenManager defines the bearer token interface needed by auth service.
type tokenManager interface {
	GenerateToken(userID uuid.UUID) (string, error)
	ValidateToken(token string) (uuid.UUID, error)
}

// Service implements registration, login and password management.
type Service struct {
	log    *slog.Logger
	users  userRepo
	hasher passwordHasher
	tokens tokenManager
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	hasher passwordHasher,
	tokens tokenManager,
) *Service {
	return &Service{
		log:    logger.With("service", "auth"),
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string
	User  *domain.User
}

// ValidateToken checks a bearer token and returns the user it was issued to.
// Tokens for users that no longer exist are rejected with ErrUnauthorized.
func (s *Service) ValidateToken(ctx context.Context, token string) (uuid.UUID, error) {
	userID, err := s.tokens.ValidateToken(token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("auth.ValidateToken: %w: %w", domain.ErrUnauthorized, err)
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return uuid.Nil, fmt.Errorf("auth.ValidateToken: user gone: %w", domain.ErrUnauthorized)
		}
		return uuid.Nil, fmt.Errorf("auth.ValidateToken: %w", err)
	}

	return userID, nil
}

func (s *Service) issueToken(user *domain.User) (*AuthResult, error) {
	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}
