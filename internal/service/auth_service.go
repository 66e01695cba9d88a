package service

import (
	"context"
	"errors"
	"fmt"
	"pressroom"
	"strings"
	"time"

	"pressroom/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AuthService verifies credentials and establishes session contexts.
type AuthService struct {
	users    repository.Users
	sessions repository.Sessions
}

func NewAuthService(users repository.Users, sessions repository.Sessions) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

var _ Authorization = (*AuthService)(nil)

// Register creates a new user. The email is checked first for a friendly
// conflict error; the store's UNIQUE constraint backstops the race between
// concurrent registrations.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (int, error) {
	if p.Username == "" || p.Email == "" || p.Password == "" {
		return 0, fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	// Role is stored as sent; an empty role falls back to the
	// non-privileged default.
	role := p.Role
	if role == "" {
		role = pressroom.RoleUser
	}

	existing, err := s.users.GetByEmail(ctx, p.Email)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrEmailTaken
	}

	hash, err := hashPassword(p.Password)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	id, err := s.users.Create(ctx, pressroom.User{
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return 0, mapUniqueViolation(err)
	}
	return id, nil
}

// Login resolves a principal from credentials and issues a session token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (pressroom.Principal, string, error) {
	if email == "" || password == "" {
		return pressroom.Principal{}, "", fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return pressroom.Principal{}, "", err
	}
	if u == nil {
		return pressroom.Principal{}, "", ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return pressroom.Principal{}, "", ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(ctx, u.Email)
	if err != nil {
		return pressroom.Principal{}, "", err
	}
	return u.Principal(), token, nil
}

// Resolve re-derives the principal bound to a session token. The user row is
// re-read on every call, so role and profile changes take effect without a
// new login. ErrUnauthenticated means no/expired session; ErrNotFound means
// the session outlived its user row.
func (s *AuthService) Resolve(ctx context.Context, token string) (pressroom.Principal, error) {
	if token == "" {
		return pressroom.Principal{}, ErrUnauthenticated
	}

	email, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return pressroom.Principal{}, err
	}
	if email == "" {
		return pressroom.Principal{}, ErrUnauthenticated
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return pressroom.Principal{}, err
	}
	if u == nil {
		return pressroom.Principal{}, ErrNotFound
	}
	return u.Principal(), nil
}

// Logout invalidates a session token. Unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash (constant-time inside bcrypt)
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// mapUniqueViolation translates a storage-level UNIQUE failure into the
// matching conflict error, keeping the raw error otherwise.
func mapUniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if !strings.Contains(strings.ToUpper(msg), "UNIQUE") {
		return err
	}
	if strings.Contains(msg, "users.username") {
		return ErrUsernameTaken
	}
	return ErrEmailTaken
}
