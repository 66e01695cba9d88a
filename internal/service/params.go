package service

// RegisterParams carries a registration request. All of Username, Email and
// Password are required; Role defaults to the non-privileged role when empty.
type RegisterParams struct {
	Username string
	Email    string
	Password string
	Role     string
}

// ProfilePatch is a partial profile update. An empty field means "leave
// unchanged" — callers rely on this, so none of the fields can be cleared
// through a patch (none of them may be empty anyway).
type ProfilePatch struct {
	Username string
	Email    string
	Password string
}

// ArticleDraft is the caller-supplied part of a new article. The owner and
// publication time come from the server side.
type ArticleDraft struct {
	Title   string
	Author  string
	Content string // raw HTML; sanitized before storage
}
