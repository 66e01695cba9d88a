package service

import (
	"context"
	"errors"
	"pressroom"

	"pressroom/internal/repository"
	"pressroom/internal/sanitizer"
)

// Domain errors shared across services. Handlers map these to HTTP codes;
// anything else is treated as an internal fault.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("insufficient privileges")
	ErrEmailTaken         = errors.New("email already in use")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrNotFound           = errors.New("not found")
)

// Authorization verifies credentials and owns the session lifecycle.
type Authorization interface {
	Register(ctx context.Context, p RegisterParams) (int, error)
	Login(ctx context.Context, email, password string) (pressroom.Principal, string, error)
	Resolve(ctx context.Context, token string) (pressroom.Principal, error)
	Logout(ctx context.Context, token string) error
}

// Accounts covers self-service profile updates and the admin user listing.
type Accounts interface {
	UpdateProfile(ctx context.Context, principal pressroom.Principal, sessionToken string, patch ProfilePatch) (pressroom.Principal, error)
	ListUsers(ctx context.Context, principal pressroom.Principal) ([]pressroom.Principal, error)
}

// Articles exposes the content operations. Ownership is always stamped from
// the principal argument, never from caller-supplied data.
type Articles interface {
	GetAll(ctx context.Context) ([]pressroom.Article, error)
	GetByID(ctx context.Context, id int) (pressroom.Article, error)
	Create(ctx context.Context, principal pressroom.Principal, draft ArticleDraft) (pressroom.Article, error)
	ListMine(ctx context.Context, principal pressroom.Principal) ([]pressroom.Article, error)
	UpdateStatus(ctx context.Context, principal pressroom.Principal, id int, status string) (pressroom.Article, error)
	Delete(ctx context.Context, principal pressroom.Principal, id int) error
}

type Service struct {
	Authorization
	Accounts
	Articles
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, clean sanitizer.Sanitizer) *Service {
	gate := NewGate()
	return &Service{
		Authorization: NewAuthService(repos.Users, repos.Sessions),
		Accounts:      NewAccountService(repos.Users, repos.Sessions, gate),
		Articles:      NewArticleService(repos.Articles, gate, clean),
	}
}
