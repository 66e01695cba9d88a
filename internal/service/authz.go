package service

import "pressroom"

// Action is an authorization-sensitive operation a principal may attempt.
type Action int

const (
	ActionCreateArticle Action = iota
	ActionListOwnArticles
	ActionUpdateArticleStatus
	ActionDeleteArticle
	ActionListUsers
)

// Gate decides whether a principal may perform an action. The principal is
// always passed explicitly; nothing is read from ambient state.
type Gate struct{}

func NewGate() *Gate { return &Gate{} }

// Authorize returns nil when allowed, ErrUnauthenticated for anonymous
// callers and ErrForbidden for authenticated callers lacking privilege.
func (g *Gate) Authorize(p pressroom.Principal, a Action) error {
	if p.IsAnonymous() {
		return ErrUnauthenticated
	}
	switch a {
	case ActionListUsers:
		if !p.IsAdmin() {
			return ErrForbidden
		}
	case ActionUpdateArticleStatus:
		// TODO: verify user role here — any authenticated user can currently
		// change any article's status.
	case ActionCreateArticle, ActionListOwnArticles, ActionDeleteArticle:
		// Any authenticated principal. Delete additionally goes through
		// CanManageArticle once the owner is known.
	}
	return nil
}

// CanManageArticle allows the owner of an article, or an admin, to act on it.
func (g *Gate) CanManageArticle(p pressroom.Principal, ownerID int) error {
	if p.IsAnonymous() {
		return ErrUnauthenticated
	}
	if p.ID != ownerID && !p.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
