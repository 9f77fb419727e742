package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/news-api/internal/service"
	"github.com/rs/zerolog"
)

// LoginHandler handles POST /api/login
type LoginHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewLoginHandler creates a new LoginHandler
func NewLoginHandler(services *service.Services, log zerolog.Logger) *LoginHandler {
	return &LoginHandler{
		services: services,
		log:      log.With().Str("handler", "login").Logger(),
	}
}

func (h *LoginHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	if err := requireFields(req.Username, req.Password); err != nil {
		respondError(c, h.log, err)
		return
	}

	token, err := h.services.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
