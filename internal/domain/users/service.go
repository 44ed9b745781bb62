package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gatherly/server/internal/auth"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the cost factor for bcrypt password hashing.
const BcryptCost = 12

// dummyHash is a bcrypt hash of a random string. Login runs a compare
// against it when the email is unknown so that lookup misses and password
// mismatches take the same time and return the same error.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// Repository is the credential store the service reads and writes.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, params CreateUserParams) (*User, error)
}

// Service handles authentication: credential verification and session
// token issuance/resolution.
type Service struct {
	repo   Repository
	tokens *auth.JWTManager
	logger zerolog.Logger
}

func NewService(repo Repository, tokens *auth.JWTManager, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		logger: logger.With().Str("component", "users").Logger(),
	}
}

// LoginResult carries the authenticated user and a fresh session token.
type LoginResult struct {
	User      User
	Token     string
	ExpiresAt time.Time
}

// Login verifies email/password and issues a session token. Unknown email
// and wrong password are indistinguishable to the caller: both return
// ErrInvalidCredentials, and the unknown-email path still pays for a bcrypt
// comparison.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("login")

	return LoginResult{
		User:      *user,
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokens.Expiry()),
	}, nil
}

// VerifyToken validates a session token and resolves the user it names.
// A cryptographically valid token whose user no longer exists is rejected
// the same way as a bad signature.
func (s *Service) VerifyToken(ctx context.Context, token string) (*User, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}

	user, err := s.repo.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, fmt.Errorf("resolve token subject: %w", err)
	}
	return user, nil
}

// Create registers a user with an already-hashed password. Used by the
// seed tooling and admin bootstrap; there is no public registration surface.
func (s *Service) Create(ctx context.Context, email, name, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || name == "" || password == "" {
		return nil, fmt.Errorf("email, name and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Create(ctx, CreateUserParams{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	})
}
