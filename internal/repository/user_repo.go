package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"pressroom"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL = `INSERT INTO users (username, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?)`

	selectUserByIDSQL       = `SELECT id, username, email, password_hash, role, created_at FROM users WHERE id = ?`
	selectUserByEmailSQL    = `SELECT id, username, email, password_hash, role, created_at FROM users WHERE email = ?`
	selectUserByUsernameSQL = `SELECT id, username, email, password_hash, role, created_at FROM users WHERE username = ?`

	updateUserProfileSQL = `UPDATE users SET username = ?, email = ?, password_hash = ? WHERE id = ?`
	listUsersSQL         = `SELECT id, username, email, password_hash, role, created_at FROM users ORDER BY id ASC`
)

// Create inserts a new user and returns its ID. A UNIQUE violation on
// username/email surfaces as a wrapped driver error for the service to map.
func (r *UserRepository) Create(ctx context.Context, u pressroom.User) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", u.Email, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", u.Email, err)
	}
	return int(lastID), nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*pressroom.User, error) {
	return r.getOne(ctx, selectUserByIDSQL, id)
}

// GetByEmail fetches a user by login email (exact match, as stored).
// Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*pressroom.User, error) {
	return r.getOne(ctx, selectUserByEmailSQL, email)
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*pressroom.User, error) {
	return r.getOne(ctx, selectUserByUsernameSQL, username)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*pressroom.User, error) {
	var u pressroom.User
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user by %v: %w", arg, err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

// UpdateProfile overwrites username, email and password hash in one statement
// so a patch is applied atomically or not at all.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int, username, email, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, updateUserProfileSQL, username, email, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update user %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for user %d: %w", id, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns all users ordered by id.
func (r *UserRepository) List(ctx context.Context) ([]pressroom.User, error) {
	rows, err := r.db.QueryContext(ctx, listUsersSQL)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := make([]pressroom.User, 0, 16)
	for rows.Next() {
		var u pressroom.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		u.CreatedAt = u.CreatedAt.UTC()
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
