package handlers

import (
	"net/http"

	"pressroom/internal/logger"
	"pressroom/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerArticleRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", h.login)
		auth.POST("/register", h.register)

		// Protected auth endpoints reject anonymous callers with 401.
		session := auth.Group("", h.sessionRequired(http.StatusUnauthorized))
		{
			session.GET("/me", h.me)
			session.PATCH("/update", h.updateProfile)
			session.GET("/users", h.listUsers)
			session.POST("/logout", h.logout)
		}
	}
}

func (h *Handler) registerArticleRoutes(r *gin.Engine) {
	articles := r.Group("/api/articles")
	{
		// Read access is public.
		articles.GET("", h.listArticles)
		articles.GET("/:id", h.getArticle)

		// Write access rejects anonymous callers with 403.
		session := articles.Group("", h.sessionRequired(http.StatusForbidden))
		{
			session.POST("", h.createArticle)
			session.GET("/my", h.myArticles)
			session.PATCH("/:id/status", h.updateArticleStatus)
			session.DELETE("/:id", h.deleteArticle)
		}
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
