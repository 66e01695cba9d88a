package repository

import (
	"context"
	"database/sql"
	"pressroom"
	"time"

	"github.com/redis/go-redis/v9"
)

// Users is the credential store: identity rows with unique username/email.
// Lookups return (nil, nil) when no row matches.
type Users interface {
	Create(ctx context.Context, u pressroom.User) (int, error)
	GetByID(ctx context.Context, id int) (*pressroom.User, error)
	GetByEmail(ctx context.Context, email string) (*pressroom.User, error)
	GetByUsername(ctx context.Context, username string) (*pressroom.User, error)
	UpdateProfile(ctx context.Context, id int, username, email, passwordHash string) error
	List(ctx context.Context) ([]pressroom.User, error)
}

// Articles is the article store consumed by the content services.
type Articles interface {
	Create(ctx context.Context, a pressroom.Article) (int, error)
	GetByID(ctx context.Context, id int) (*pressroom.Article, error)
	GetAll(ctx context.Context) ([]pressroom.Article, error)
	ListByUser(ctx context.Context, userID int) ([]pressroom.Article, error)
	UpdateStatus(ctx context.Context, id int, status string) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// Sessions binds opaque tokens to login emails for the lifetime of a session.
// Resolve returns ("", nil) when the token is unknown or expired.
type Sessions interface {
	Issue(ctx context.Context, email string) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
	Rebind(ctx context.Context, token, email string) error
	Delete(ctx context.Context, token string) error
}

type Repository struct {
	Users    Users
	Articles Articles
	Sessions Sessions
}

func NewRepository(db *sql.DB, rdb *redis.Client, sessionTTL time.Duration) *Repository {
	return &Repository{
		Users:    NewUserRepository(db),
		Articles: NewArticleRepository(db),
		Sessions: NewSessionRedis(rdb, sessionTTL),
	}
}
