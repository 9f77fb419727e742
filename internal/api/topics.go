package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/service"
	"github.com/rs/zerolog"
)

// TopicHandler handles topic endpoints
type TopicHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewTopicHandler creates a new TopicHandler
func NewTopicHandler(services *service.Services, log zerolog.Logger) *TopicHandler {
	return &TopicHandler{
		services: services,
		log:      log.With().Str("handler", "topics").Logger(),
	}
}

// List handles GET /api/topics
func (h *TopicHandler) List(c *gin.Context) {
	topics, err := h.services.Topics.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

// Get handles GET /api/topics/:slug
func (h *TopicHandler) Get(c *gin.Context) {
	topic, err := h.services.Topics.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topic": topic})
}

// Create handles POST /api/topics
func (h *TopicHandler) Create(c *gin.Context) {
	var req struct {
		Slug        string `json:"slug"`
		Description string `json:"description"`
	}
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	if err := requireFields(req.Slug, req.Description); err != nil {
		respondError(c, h.log, err)
		return
	}

	topic, err := h.services.Topics.Create(c.Request.Context(), &models.Topic{Slug: req.Slug, Description: req.Description})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"topic": topic})
}
