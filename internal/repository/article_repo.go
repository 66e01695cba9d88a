package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"pressroom"
)

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

var _ Articles = (*ArticleRepository)(nil)

const (
	insertArticleSQL = `INSERT INTO articles (title, author, content, published_date, status, user_id) VALUES (?, ?, ?, ?, ?, ?)`

	selectArticleByIDSQL = `SELECT id, title, author, content, published_date, status, user_id FROM articles WHERE id = ?`
	selectAllArticlesSQL = `SELECT id, title, author, content, published_date, status, user_id FROM articles ORDER BY published_date DESC`
	selectByUserSQL      = `SELECT id, title, author, content, published_date, status, user_id FROM articles WHERE user_id = ? ORDER BY published_date DESC`

	updateArticleStatusSQL = `UPDATE articles SET status = ? WHERE id = ?`
	deleteArticleSQL       = `DELETE FROM articles WHERE id = ?`
)

// Create inserts a new article and returns its ID.
func (r *ArticleRepository) Create(ctx context.Context, a pressroom.Article) (int, error) {
	res, err := r.db.ExecContext(ctx, insertArticleSQL,
		a.Title,
		a.Author,
		a.Content,
		a.PublishedDate.UTC().Format("2006-01-02 15:04:05"),
		a.Status,
		a.UserID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert article %q: %w", a.Title, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for article %q: %w", a.Title, err)
	}
	return int(lastID), nil
}

// GetByID fetches an article by id. Returns (nil, nil) if not found.
func (r *ArticleRepository) GetByID(ctx context.Context, id int) (*pressroom.Article, error) {
	var a pressroom.Article
	err := r.db.QueryRowContext(ctx, selectArticleByIDSQL, id).
		Scan(&a.ID, &a.Title, &a.Author, &a.Content, &a.PublishedDate, &a.Status, &a.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select article %d: %w", id, err)
	}
	a.PublishedDate = a.PublishedDate.UTC()
	return &a, nil
}

// GetAll returns all articles, newest first.
func (r *ArticleRepository) GetAll(ctx context.Context) ([]pressroom.Article, error) {
	return r.list(ctx, selectAllArticlesSQL)
}

// ListByUser returns the articles owned by the given user, newest first.
func (r *ArticleRepository) ListByUser(ctx context.Context, userID int) ([]pressroom.Article, error) {
	return r.list(ctx, selectByUserSQL, userID)
}

func (r *ArticleRepository) list(ctx context.Context, query string, args ...any) ([]pressroom.Article, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	out := make([]pressroom.Article, 0, 32)
	for rows.Next() {
		var a pressroom.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Author, &a.Content, &a.PublishedDate, &a.Status, &a.UserID); err != nil {
			return nil, fmt.Errorf("scan article row: %w", err)
		}
		a.PublishedDate = a.PublishedDate.UTC()
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus sets the status of an article. The bool reports whether a row
// was actually updated.
func (r *ArticleRepository) UpdateStatus(ctx context.Context, id int, status string) (bool, error) {
	res, err := r.db.ExecContext(ctx, updateArticleStatusSQL, status, id)
	if err != nil {
		return false, fmt.Errorf("update article %d status: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for article %d: %w", id, err)
	}
	return n > 0, nil
}

// Delete removes an article. The bool reports whether a row existed.
func (r *ArticleRepository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteArticleSQL, id)
	if err != nil {
		return false, fmt.Errorf("delete article %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for article %d: %w", id, err)
	}
	return n > 0, nil
}
