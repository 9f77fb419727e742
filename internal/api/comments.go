package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/repository"
	"github.com/news-api/internal/service"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comments").Logger(),
	}
}

// List handles GET /api/articles/:article_id/comments
func (h *CommentHandler) List(c *gin.Context) {
	articleID, err := idParam(c, "article_id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	opts, err := repository.ParseListOptions(listParams(c), repository.CommentColumns)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	comments, err := h.services.Comments.ListForArticle(c.Request.Context(), articleID, opts)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// Create handles POST /api/articles/:article_id/comments. The author may be
// given as "username" or "author".
func (h *CommentHandler) Create(c *gin.Context) {
	articleID, err := idParam(c, "article_id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req struct {
		Username string `json:"username"`
		Author   string `json:"author"`
		Body     string `json:"body"`
	}
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	author, err := actingUser(c, req.Username, req.Author)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if err := requireFields(author, req.Body); err != nil {
		respondError(c, h.log, err)
		return
	}

	comment, err := h.services.Comments.Create(c.Request.Context(), &models.Comment{
		Author:    author,
		ArticleID: articleID,
		Body:      req.Body,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// Get handles GET /api/comments/:comment_id
func (h *CommentHandler) Get(c *gin.Context) {
	id, err := idParam(c, "comment_id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	comment, err := h.services.Comments.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

// Vote handles PATCH /api/comments/:comment_id with {"inc_votes": n}
func (h *CommentHandler) Vote(c *gin.Context) {
	id, err := idParam(c, "comment_id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	delta, err := voteDelta(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	comment, err := h.services.Comments.Vote(c.Request.Context(), id, delta)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Delete handles DELETE /api/comments/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) {
	id, err := idParam(c, "comment_id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.services.Comments.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
