package service

import (
	"context"
	"database/sql"
	"errors"
	"pressroom"

	"pressroom/internal/repository"
)

// AccountService handles self-service profile updates and the admin-only
// user listing.
type AccountService struct {
	users    repository.Users
	sessions repository.Sessions
	gate     *Gate
}

func NewAccountService(users repository.Users, sessions repository.Sessions, gate *Gate) *AccountService {
	return &AccountService{users: users, sessions: sessions, gate: gate}
}

var _ Accounts = (*AccountService)(nil)

// UpdateProfile applies a partial profile update. Every field of the patch is
// validated against the uniqueness invariants before anything is written, so
// a single conflict aborts the whole patch with no partial commit. When the
// login email changes, the live session token is re-keyed to the new email
// so the caller stays logged in.
func (s *AccountService) UpdateProfile(ctx context.Context, principal pressroom.Principal, sessionToken string, patch ProfilePatch) (pressroom.Principal, error) {
	if principal.IsAnonymous() {
		return pressroom.Principal{}, ErrUnauthenticated
	}

	u, err := s.users.GetByID(ctx, principal.ID)
	if err != nil {
		return pressroom.Principal{}, err
	}
	if u == nil {
		return pressroom.Principal{}, ErrNotFound
	}

	username, email, hash := u.Username, u.Email, u.PasswordHash

	if patch.Username != "" && patch.Username != u.Username {
		other, err := s.users.GetByUsername(ctx, patch.Username)
		if err != nil {
			return pressroom.Principal{}, err
		}
		if other != nil && other.ID != u.ID {
			return pressroom.Principal{}, ErrUsernameTaken
		}
		username = patch.Username
	}

	if patch.Email != "" && patch.Email != u.Email {
		other, err := s.users.GetByEmail(ctx, patch.Email)
		if err != nil {
			return pressroom.Principal{}, err
		}
		if other != nil && other.ID != u.ID {
			return pressroom.Principal{}, ErrEmailTaken
		}
		email = patch.Email
	}

	if patch.Password != "" {
		hash, err = hashPassword(patch.Password)
		if err != nil {
			return pressroom.Principal{}, err
		}
	}

	if err := s.users.UpdateProfile(ctx, u.ID, username, email, hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pressroom.Principal{}, ErrNotFound
		}
		return pressroom.Principal{}, mapUniqueViolation(err)
	}

	if email != u.Email && sessionToken != "" {
		if err := s.sessions.Rebind(ctx, sessionToken, email); err != nil {
			return pressroom.Principal{}, err
		}
	}

	return pressroom.Principal{
		ID:       u.ID,
		Username: username,
		Email:    email,
		Role:     u.Role,
	}, nil
}

// ListUsers returns the redacted view of every user. Admin only.
func (s *AccountService) ListUsers(ctx context.Context, principal pressroom.Principal) ([]pressroom.Principal, error) {
	if err := s.gate.Authorize(principal, ActionListUsers); err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]pressroom.Principal, 0, len(users))
	for i := range users {
		out = append(out, users[i].Principal())
	}
	return out, nil
}
