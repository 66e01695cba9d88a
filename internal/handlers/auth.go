package handlers

import (
	"net/http"

	"pressroom/internal/service"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type updateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary      Log in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  pressroom.Principal
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	if input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	principal, token, err := h.services.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_login_failed", "email", input.Email, "err", err)
		}
		h.writeServiceError(c, err, "auth_login_error")
		return
	}

	// No Max-Age on purpose: the browser keeps the cookie for the session,
	// the store-side TTL decides when it stops resolving.
	c.SetCookie(sessionCookieName, token, 0, "/", "", false, true)
	c.JSON(http.StatusOK, principal)
}

// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      plain
// @Success      200  {string}  string
// @Failure      400  {object}  map[string]string
// @Router       /api/auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input registerRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	if input.Username == "" || input.Email == "" || input.Password == "" || input.Role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "all fields are required"})
		return
	}

	_, err := h.services.Register(c.Request.Context(), service.RegisterParams{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
	})
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_register_failed", "email", input.Email, "err", err)
		}
		h.writeServiceError(c, err, "auth_register_error")
		return
	}

	c.String(http.StatusOK, "user registered successfully")
}

// @Summary      Current principal ("who am I")
// @Tags         auth
// @Produce      json
// @Success      200  {object}  pressroom.Principal
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/me [get]
func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentPrincipal(c))
}

// @Summary      Update own profile (partial)
// @Description  Empty fields are left unchanged. A uniqueness conflict aborts the whole patch.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  pressroom.Principal
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/auth/update [patch]
func (h *Handler) updateProfile(c *gin.Context) {
	var input updateProfileRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	principal, err := h.services.UpdateProfile(
		c.Request.Context(),
		currentPrincipal(c),
		currentSessionToken(c),
		service.ProfilePatch{
			Username: input.Username,
			Email:    input.Email,
			Password: input.Password,
		},
	)
	if err != nil {
		h.writeServiceError(c, err, "auth_update_profile_error", "user_id", currentPrincipal(c).ID)
		return
	}

	c.JSON(http.StatusOK, principal)
}

// @Summary      List all users (admin)
// @Tags         auth
// @Produce      json
// @Success      200  {array}   pressroom.Principal
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/auth/users [get]
func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.services.ListUsers(c.Request.Context(), currentPrincipal(c))
	if err != nil {
		h.writeServiceError(c, err, "auth_list_users_error")
		return
	}
	c.JSON(http.StatusOK, users)
}

// @Summary      Log out (invalidate session)
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/logout [post]
func (h *Handler) logout(c *gin.Context) {
	if err := h.services.Logout(c.Request.Context(), currentSessionToken(c)); err != nil {
		h.writeServiceError(c, err, "auth_logout_error")
		return
	}
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
