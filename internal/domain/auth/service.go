// Package auth implements account registration, login and session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/honeycarbs/jobkit/internal/domain"
	"github.com/honeycarbs/jobkit/internal/repository"
	"github.com/honeycarbs/jobkit/pkg/logging"
)

var (
	ErrEmailTaken         = errors.New("auth: email already registered")
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	ErrTooManyAttempts    = errors.New("auth: too many login attempts")
	ErrUserNotFound       = errors.New("auth: user not found")
)

// minPasswordLen is the only password rule enforced
const minPasswordLen = 6

// ValidationError reports a rejected registration field
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return "auth: " + e.Msg }

// Limiter throttles login attempts per key (email or client address)
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// Session is what a successful register/login hands back
type Session struct {
	User      domain.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// Service handles accounts
type Service struct {
	users   repository.UserRepository
	tokens  *TokenIssuer
	limiter Limiter
	logger  *logging.Logger
	cost    int
	clock   func() time.Time
}

// ServiceOption tweaks Service
type ServiceOption func(*Service)

// WithLimiter enables login throttling
func WithLimiter(l Limiter) ServiceOption {
	return func(s *Service) {
		s.limiter = l
	}
}

// WithBcryptCost overrides the hashing cost
func WithBcryptCost(cost int) ServiceOption {
	return func(s *Service) {
		s.cost = cost
	}
}

// NewService creates the account service
func NewService(users repository.UserRepository, tokens *TokenIssuer, logger *logging.Logger, opts ...ServiceOption) (*Service, error) {
	if users == nil {
		return nil, fmt.Errorf("auth.Service: user repository is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("auth.Service: token issuer is required")
	}
	if logger == nil {
		logger = logging.Nop()
	}

	s := &Service{
		users:  users,
		tokens: tokens,
		logger: logger,
		cost:   bcrypt.DefaultCost,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Register creates an account and signs the user in
func (s *Service) Register(ctx context.Context, name, email, password string) (Session, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	switch {
	case name == "":
		return Session{}, &ValidationError{Msg: "name is required"}
	case !validEmail(email):
		return Session{}, &ValidationError{Msg: "a valid email is required"}
	case len(password) < minPasswordLen:
		return Session{}, &ValidationError{Msg: fmt.Sprintf("password must be at least %d characters", minPasswordLen)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return Session{}, fmt.Errorf("auth: hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.clock().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return Session{}, ErrEmailTaken
		}
		return Session{}, fmt.Errorf("auth: create user: %w", err)
	}

	s.logger.Info("user registered", "user", user.ID)
	return s.session(user)
}

// Login verifies credentials and issues a token
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	email = normalizeEmail(email)

	if s.limiter != nil && !s.limiter.Allow(ctx, email) {
		s.logger.Warn("login throttled", "email", email)
		return Session{}, ErrTooManyAttempts
	}

	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("auth: find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	return s.session(user)
}

// Me returns the account behind a user ID
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("auth: find user: %w", err)
	}
	return user, nil
}

// Authenticate resolves a session token to a user ID
func (s *Service) Authenticate(token string) (uuid.UUID, error) {
	return s.tokens.Parse(token)
}

// Verify resolves a session token to a user ID and the token expiry
func (s *Service) Verify(token string) (uuid.UUID, time.Time, error) {
	return s.tokens.Verify(token)
}

// TokenTTL is the lifetime of issued sessions
func (s *Service) TokenTTL() time.Duration {
	return s.tokens.TTL()
}

func (s *Service) session(user domain.User) (Session, error) {
	token, exp, err := s.tokens.Issue(user.ID)
	if err != nil {
		return Session{}, err
	}
	return Session{User: user, Token: token, ExpiresAt: exp}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
