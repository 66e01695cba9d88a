package handlers

import (
	"errors"
	"net/http"
	"pressroom"

	"pressroom/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	// sessionCookieName carries the opaque session token. The cookie has no
	// Max-Age; server-side TTL in the session store governs validity.
	sessionCookieName = "session_id"

	principalCtxKey    = "principal"
	sessionTokenCtxKey = "sessionToken"
)

// sessionRequired resolves the session cookie into a Principal and stores it
// in the Gin context. abortStatus is used for anonymous callers: the article
// endpoints answer 403, the auth endpoints 401. A session whose user row has
// vanished is 401 everywhere.
func (h *Handler) sessionRequired(abortStatus int) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(abortStatus, gin.H{"error": "authentication required"})
			return
		}

		principal, err := h.services.Resolve(c.Request.Context(), token)
		switch {
		case err == nil:
		case errors.Is(err, service.ErrUnauthenticated):
			c.AbortWithStatusJSON(abortStatus, gin.H{"error": "authentication required"})
			return
		case errors.Is(err, service.ErrNotFound):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		default:
			if h.log != nil {
				h.log.Errorw("session_resolve_failed", "err", err)
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": errInternal})
			return
		}

		c.Set(principalCtxKey, principal)
		c.Set(sessionTokenCtxKey, token)
		c.Next()
	}
}

// currentPrincipal returns the principal resolved by sessionRequired.
func currentPrincipal(c *gin.Context) pressroom.Principal {
	v, ok := c.Get(principalCtxKey)
	if !ok {
		return pressroom.Principal{}
	}
	p, _ := v.(pressroom.Principal)
	return p
}

// currentSessionToken returns the raw token resolved by sessionRequired.
func currentSessionToken(c *gin.Context) string {
	v, ok := c.Get(sessionTokenCtxKey)
	if !ok {
		return ""
	}
	t, _ := v.(string)
	return t
}
