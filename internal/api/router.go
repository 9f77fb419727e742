package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/auth"
	"github.com/news-api/internal/config"
	"github.com/news-api/internal/service"
	"github.com/rs/zerolog"
)

const (
	msgMethodNotAllowed = "Method not allowed!"
	msgRouteNotFound    = "Route not found"

	requestIDHeader = "X-Request-ID"
	ctxRequestID    = "request_id"
	ctxUser         = "user"
)

// HealthChecker reports whether the backing store is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// PoolStatser is implemented by health checkers that can report connection
// pool usage; /health includes the numbers when available
type PoolStatser interface {
	Stats() sql.DBStats
}

// route is one entry of the static route table
type route struct {
	method      string
	path        string
	description string
	queries     []string
	handler     gin.HandlerFunc
}

// protected reports whether the bearer gate applies to the route
func (r route) protected() bool {
	return r.method != http.MethodGet && r.path != "/api/login"
}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, health HealthChecker, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"msg": msgMethodNotAllowed})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"msg": msgRouteNotFound})
	})

	// Health check
	router.GET("/health", healthCheck(health))

	routes := apiRoutes(services, log)
	routes = append(routes, route{
		method:      http.MethodGet,
		path:        "/api",
		description: "serves a description of every available endpoint",
		handler:     describeRoutes(routes),
	})

	gate := authMiddleware(services.Auth)
	for _, r := range routes {
		handlers := []gin.HandlerFunc{r.handler}
		if cfg.Auth.Required && r.protected() {
			handlers = []gin.HandlerFunc{gate, r.handler}
		}
		router.Handle(r.method, r.path, handlers...)
	}

	return router
}

func apiRoutes(services *service.Services, log zerolog.Logger) []route {
	topics := NewTopicHandler(services, log)
	users := NewUserHandler(services, log)
	articles := NewArticleHandler(services, log)
	comments := NewCommentHandler(services, log)
	login := NewLoginHandler(services, log)

	listQueries := []string{"sort_by", "order", "limit", "p"}

	return []route{
		{method: http.MethodPost, path: "/api/login", description: "exchanges a username and password for a signed token", handler: login.Login},

		{method: http.MethodGet, path: "/api/topics", description: "serves an array of all topics", handler: topics.List},
		{method: http.MethodPost, path: "/api/topics", description: "adds a topic", handler: topics.Create},
		{method: http.MethodGet, path: "/api/topics/:slug", description: "serves a single topic", handler: topics.Get},

		{method: http.MethodGet, path: "/api/users", description: "serves an array of all users", handler: users.List},
		{method: http.MethodPost, path: "/api/users", description: "adds a user", handler: users.Create},
		{method: http.MethodGet, path: "/api/users/:username", description: "serves a single user", handler: users.Get},

		{
			method:      http.MethodGet,
			path:        "/api/articles",
			description: "serves a page of articles with their comment counts and the total match count",
			queries:     append([]string{"author", "topic"}, listQueries...),
			handler:     articles.List,
		},
		{method: http.MethodPost, path: "/api/articles", description: "adds an article", handler: articles.Create},
		{method: http.MethodGet, path: "/api/articles/:article_id", description: "serves a single article", handler: articles.Get},
		{method: http.MethodPatch, path: "/api/articles/:article_id", description: "increments an article's votes by inc_votes", handler: articles.Vote},
		{method: http.MethodDelete, path: "/api/articles/:article_id", description: "deletes an article and its comments", handler: articles.Delete},

		{
			method:      http.MethodGet,
			path:        "/api/articles/:article_id/comments",
			description: "serves a page of comments for an article",
			queries:     listQueries,
			handler:     comments.List,
		},
		{method: http.MethodPost, path: "/api/articles/:article_id/comments", description: "adds a comment to an article", handler: comments.Create},

		{method: http.MethodGet, path: "/api/comments/:comment_id", description: "serves a single comment", handler: comments.Get},
		{method: http.MethodPatch, path: "/api/comments/:comment_id", description: "increments a comment's votes by inc_votes", handler: comments.Vote},
		{method: http.MethodDelete, path: "/api/comments/:comment_id", description: "deletes a comment", handler: comments.Delete},
	}
}

// describeRoutes serves the route table as {"METHOD path": {description, queries}}
func describeRoutes(routes []route) gin.HandlerFunc {
	endpoints := gin.H{
		"GET /api": gin.H{"description": "serves a description of every available endpoint"},
	}
	for _, r := range routes {
		entry := gin.H{"description": r.description}
		if len(r.queries) > 0 {
			entry["queries"] = r.queries
		}
		endpoints[r.method+" "+r.path] = entry
	}

	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"endpoints": endpoints})
	}
}

// healthCheck returns the health status, including a database ping
func healthCheck(health HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		body := gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "news-api",
		}

		if health != nil {
			ctx, cancel := contextWithTimeout(c, 2*time.Second)
			defer cancel()

			if err := health.HealthCheck(ctx); err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "unhealthy"
				body["database"] = "unreachable"
			} else {
				body["database"] = "ok"
			}

			if pool, ok := health.(PoolStatser); ok {
				stats := pool.Stats()
				body["pool"] = gin.H{
					"open_connections": stats.OpenConnections,
					"in_use":           stats.InUse,
					"idle":             stats.Idle,
					"wait_count":       stats.WaitCount,
				}
			}
		}

		c.JSON(status, body)
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("error", err).
					Str("request_id", c.GetString(ctxRequestID)).
					Msg("Panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": apperror.MsgInternal})
			}
		}()
		c.Next()
	}
}

// loggingMiddleware tags each request with an id and logs it on completion
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(ctxRequestID, requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+requestIDHeader)

		if isPreflight(c.Request) {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// isPreflight reports whether r is a CORS preflight; other OPTIONS requests
// fall through to routing
func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions &&
		r.Header.Get("Origin") != "" &&
		r.Header.Get("Access-Control-Request-Method") != ""
}

// authMiddleware rejects requests without a valid bearer token
func authMiddleware(authSvc service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := auth.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": apperror.MsgUnauthorized})
			return
		}

		claims, err := authSvc.Authenticate(token)
		if err != nil {
			status, msg := apperror.Describe(err)
			c.AbortWithStatusJSON(status, gin.H{"msg": msg})
			return
		}

		c.Set(ctxUser, claims.User)
		c.Next()
	}
}

// contextWithTimeout creates a context with timeout for handlers
func contextWithTimeout(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), timeout)
}
