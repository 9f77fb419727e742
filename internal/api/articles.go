package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/repository"
	"github.com/news-api/internal/service"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "articles").Logger(),
	}
}

// List handles GET /api/articles?author=&topic=&sort_by=&order=&limit=&p=
func (h *ArticleHandler) List(c *gin.Context) {
	opts, err := repository.ParseListOptions(listParams(c), repository.ArticleColumns)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	filter := repository.ArticleFilter{
		Author:      c.Query("author"),
		Topic:       c.Query("topic"),
		ListOptions: opts,
	}

	articles, total, err := h.services.Articles.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles, "total_count": total})
}

// Get handles GET /api/articles/:article_id
func (h *ArticleHandler) Get(c *gin.Context) {
	id, err := idParam(c, "article_id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	article, err := h.services.Articles.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": article})
}

// Create handles POST /api/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var req struct {
		Title    string `json:"title"`
		Body     string `json:"body"`
		Topic    string `json:"topic"`
		Author   string `json:"author"`
		Username string `json:"username"`
	}
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	author, err := actingUser(c, req.Author, req.Username)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if err := requireFields(req.Title, req.Body, req.Topic, author); err != nil {
		respondError(c, h.log, err)
		return
	}

	article, err := h.services.Articles.Create(c.Request.Context(), &models.Article{
		Title:  req.Title,
		Body:   req.Body,
		Topic:  req.Topic,
		Author: author,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"article": article})
}

// Vote handles PATCH /api/articles/:article_id with {"inc_votes": n}
func (h *ArticleHandler) Vote(c *gin.Context) {
	id, err := idParam(c, "article_id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	delta, err := voteDelta(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	article, err := h.services.Articles.Vote(c.Request.Context(), id, delta)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Delete handles DELETE /api/articles/:article_id
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, err := idParam(c, "article_id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.services.Articles.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// actingUser resolves the author of a write. Behind the gate the token's user
// is the author and naming anyone else in the body is Forbidden.
func actingUser(c *gin.Context, named ...string) (string, error) {
	claimed := firstNonEmpty(named...)
	user := c.GetString(ctxUser)
	if user == "" {
		return claimed, nil
	}
	if claimed != "" && claimed != user {
		return "", apperror.New(apperror.Forbidden, apperror.MsgForbidden)
	}
	return user, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
