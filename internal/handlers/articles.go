package handlers

import (
	"net/http"
	"strconv"

	"pressroom/internal/service"

	"github.com/gin-gonic/gin"
)

const errInvalidArticleID = "invalid article id"

type createArticleRequest struct {
	Title   string `json:"title" binding:"required"`
	Author  string `json:"author"`
	Content string `json:"content"`
}

type statusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// articleID parses the :id path parameter, answering 400 on garbage.
// Returns (0, false) if the request was already handled.
func (h *Handler) articleID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidArticleID})
		return 0, false
	}
	return id, true
}

// @Summary      List all articles
// @Tags         articles
// @Produce      json
// @Success      200  {array}  pressroom.Article
// @Router       /api/articles [get]
func (h *Handler) listArticles(c *gin.Context) {
	articles, err := h.services.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err, "articles_list_error")
		return
	}
	c.JSON(http.StatusOK, articles)
}

// @Summary      Get one article
// @Tags         articles
// @Produce      json
// @Param        id   path      int  true  "Article ID"
// @Success      200  {object}  pressroom.Article
// @Failure      404  {object}  map[string]string
// @Router       /api/articles/{id} [get]
func (h *Handler) getArticle(c *gin.Context) {
	id, ok := h.articleID(c)
	if !ok {
		return
	}
	article, err := h.services.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err, "articles_get_error", "id", id)
		return
	}
	c.JSON(http.StatusOK, article)
}

// @Summary      Submit a new article
// @Description  Ownership is stamped from the session principal; content is sanitized before storage.
// @Tags         articles
// @Accept       json
// @Produce      json
// @Success      200  {object}  pressroom.Article
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/articles [post]
func (h *Handler) createArticle(c *gin.Context) {
	var input createArticleRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	article, err := h.services.Create(c.Request.Context(), currentPrincipal(c), service.ArticleDraft{
		Title:   input.Title,
		Author:  input.Author,
		Content: input.Content,
	})
	if err != nil {
		h.writeServiceError(c, err, "articles_create_error", "user_id", currentPrincipal(c).ID)
		return
	}
	c.JSON(http.StatusOK, article)
}

// @Summary      List own articles
// @Tags         articles
// @Produce      json
// @Success      200  {array}   pressroom.Article
// @Failure      403  {object}  map[string]string
// @Router       /api/articles/my [get]
func (h *Handler) myArticles(c *gin.Context) {
	articles, err := h.services.ListMine(c.Request.Context(), currentPrincipal(c))
	if err != nil {
		h.writeServiceError(c, err, "articles_list_mine_error", "user_id", currentPrincipal(c).ID)
		return
	}
	c.JSON(http.StatusOK, articles)
}

// @Summary      Change article status
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        id   path      int  true  "Article ID"
// @Success      200  {object}  pressroom.Article
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/articles/{id}/status [patch]
func (h *Handler) updateArticleStatus(c *gin.Context) {
	id, ok := h.articleID(c)
	if !ok {
		return
	}
	var input statusUpdateRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	article, err := h.services.UpdateStatus(c.Request.Context(), currentPrincipal(c), id, input.Status)
	if err != nil {
		h.writeServiceError(c, err, "articles_update_status_error", "id", id)
		return
	}
	c.JSON(http.StatusOK, article)
}

// @Summary      Delete an article (owner or admin)
// @Tags         articles
// @Produce      json
// @Param        id   path      int  true  "Article ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/articles/{id} [delete]
func (h *Handler) deleteArticle(c *gin.Context) {
	id, ok := h.articleID(c)
	if !ok {
		return
	}
	if err := h.services.Delete(c.Request.Context(), currentPrincipal(c), id); err != nil {
		h.writeServiceError(c, err, "articles_delete_error", "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
