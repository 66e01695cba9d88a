package service

import (
	"context"
	"fmt"
	"pressroom"
	"time"

	"pressroom/internal/repository"
	"pressroom/internal/sanitizer"
)

// ArticleService implements the content operations on top of the article
// store. Submitted HTML passes through the sanitizer before storage.
type ArticleService struct {
	articles repository.Articles
	gate     *Gate
	clean    sanitizer.Sanitizer
}

func NewArticleService(articles repository.Articles, gate *Gate, clean sanitizer.Sanitizer) *ArticleService {
	return &ArticleService{articles: articles, gate: gate, clean: clean}
}

var _ Articles = (*ArticleService)(nil)

// GetAll returns all articles; read access is public.
func (s *ArticleService) GetAll(ctx context.Context) ([]pressroom.Article, error) {
	return s.articles.GetAll(ctx)
}

// GetByID returns one article or ErrNotFound.
func (s *ArticleService) GetByID(ctx context.Context, id int) (pressroom.Article, error) {
	a, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return pressroom.Article{}, err
	}
	if a == nil {
		return pressroom.Article{}, ErrNotFound
	}
	return *a, nil
}

// Create stores a new article owned by the principal. Ownership and the
// publication time are stamped server-side; the content is sanitized.
func (s *ArticleService) Create(ctx context.Context, principal pressroom.Principal, draft ArticleDraft) (pressroom.Article, error) {
	if err := s.gate.Authorize(principal, ActionCreateArticle); err != nil {
		return pressroom.Article{}, err
	}
	if draft.Title == "" {
		return pressroom.Article{}, fmt.Errorf("%w: title is required", ErrValidation)
	}

	a := pressroom.Article{
		Title:         draft.Title,
		Author:        draft.Author,
		Content:       s.clean.Clean(draft.Content),
		PublishedDate: time.Now().UTC(),
		Status:        pressroom.StatusPending,
		UserID:        principal.ID,
	}
	id, err := s.articles.Create(ctx, a)
	if err != nil {
		return pressroom.Article{}, err
	}
	a.ID = id
	return a, nil
}

// ListMine returns the principal's own articles; the query is always scoped
// to the resolved principal, never to caller-supplied IDs.
func (s *ArticleService) ListMine(ctx context.Context, principal pressroom.Principal) ([]pressroom.Article, error) {
	if err := s.gate.Authorize(principal, ActionListOwnArticles); err != nil {
		return nil, err
	}
	return s.articles.ListByUser(ctx, principal.ID)
}

// UpdateStatus changes an article's review status and returns the updated
// article.
func (s *ArticleService) UpdateStatus(ctx context.Context, principal pressroom.Principal, id int, status string) (pressroom.Article, error) {
	if err := s.gate.Authorize(principal, ActionUpdateArticleStatus); err != nil {
		return pressroom.Article{}, err
	}
	if status == "" {
		return pressroom.Article{}, fmt.Errorf("%w: status is required", ErrValidation)
	}

	a, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return pressroom.Article{}, err
	}
	if a == nil {
		return pressroom.Article{}, ErrNotFound
	}

	ok, err := s.articles.UpdateStatus(ctx, id, status)
	if err != nil {
		return pressroom.Article{}, err
	}
	if !ok {
		return pressroom.Article{}, ErrNotFound
	}
	a.Status = status
	return *a, nil
}

// Delete removes an article. Only the owner or an admin may do this.
func (s *ArticleService) Delete(ctx context.Context, principal pressroom.Principal, id int) error {
	if err := s.gate.Authorize(principal, ActionDeleteArticle); err != nil {
		return err
	}

	a, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return ErrNotFound
	}
	if err := s.gate.CanManageArticle(principal, a.UserID); err != nil {
		return err
	}

	ok, err := s.articles.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
