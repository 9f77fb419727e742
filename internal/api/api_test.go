package api_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/news-api/internal/api"
	"github.com/news-api/internal/auth"
	"github.com/news-api/internal/config"
	"github.com/news-api/internal/mocks"
	"github.com/news-api/internal/seed"
	"github.com/news-api/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type testServer struct {
	router *gin.Engine
	tokens *auth.JWT
}

func fixtureDir(t *testing.T) string {
	t.Helper()
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(currentFile)))
	return filepath.Join(projectRoot, "testdata", "seed")
}

// setupTestRouter seeds an in-memory store from the fixture files and wires
// the real services and router on top of it.
func setupTestRouter(t *testing.T, authRequired bool, health api.HealthChecker) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	repos := mocks.NewStore().Repositories()
	_, err := seed.NewLoader(repos, hasher, 100, zerolog.Nop()).Run(context.Background(), fixtureDir(t))
	require.NoError(t, err)

	tokens := auth.NewJWT(testSecret, time.Hour)
	services := service.NewServices(repos, hasher, tokens, zerolog.Nop())
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: testSecret, TokenTTL: time.Hour, Required: authRequired}}

	return &testServer{
		router: api.NewRouter(services, cfg, health, zerolog.Nop()),
		tokens: tokens,
	}
}

func (s *testServer) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func assertMsg(t *testing.T, w *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	assert.Equal(t, status, w.Code, w.Body.String())
	assert.Equal(t, msg, decode(t, w)["msg"])
}

type failingHealth struct{}

func (failingHealth) HealthCheck(ctx context.Context) error { return errors.New("connection refused") }

type pooledHealth struct{}

func (pooledHealth) HealthCheck(ctx context.Context) error { return nil }

func (pooledHealth) Stats() sql.DBStats {
	return sql.DBStats{OpenConnections: 3, InUse: 1, Idle: 2}
}

func TestHealthEndpoint(t *testing.T) {
	w := setupTestRouter(t, false, nil).do("GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "news-api", body["service"])

	assert.NotContains(t, body, "pool")

	w = setupTestRouter(t, false, failingHealth{}).do("GET", "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unhealthy", decode(t, w)["status"])

	w = setupTestRouter(t, false, pooledHealth{}).do("GET", "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, "ok", body["database"])
	pool := body["pool"].(map[string]interface{})
	assert.Equal(t, float64(3), pool["open_connections"])
	assert.Equal(t, float64(1), pool["in_use"])
	assert.Equal(t, float64(2), pool["idle"])
}

func TestMethodNotAllowed(t *testing.T) {
	s := setupTestRouter(t, false, nil)

	tests := []struct {
		method string
		path   string
	}{
		{"DELETE", "/api"},
		{"PUT", "/api/topics"},
		{"DELETE", "/api/topics"},
		{"PATCH", "/api/users"},
		{"DELETE", "/api/users/butter_bridge"},
		{"PUT", "/api/articles"},
		{"POST", "/api/articles/1"},
		{"PUT", "/api/articles/1/comments"},
		{"POST", "/api/comments/1"},
		{"GET", "/api/login"},
		{"OPTIONS", "/api/articles"},
		{"OPTIONS", "/api/comments/1"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assertMsg(t, s.do(tt.method, tt.path, ""), http.StatusMethodNotAllowed, "Method not allowed!")
		})
	}
}

func TestRouteNotFound(t *testing.T) {
	s := setupTestRouter(t, false, nil)
	assertMsg(t, s.do("GET", "/not-a-route", ""), http.StatusNotFound, "Route not found")
	assertMsg(t, s.do("GET", "/api/nothing/here", ""), http.StatusNotFound, "Route not found")
	assertMsg(t, s.do("OPTIONS", "/api/nothing/here", ""), http.StatusNotFound, "Route not found")
}

func TestAPIDescription(t *testing.T) {
	s := setupTestRouter(t, false, nil)

	w := s.do("GET", "/api", "")
	require.Equal(t, http.StatusOK, w.Code)

	endpoints, ok := decode(t, w)["endpoints"].(map[string]interface{})
	require.True(t, ok)
	for _, key := range []string{"GET /api", "GET /api/topics", "POST /api/login", "PATCH /api/articles/:article_id", "DELETE /api/comments/:comment_id"} {
		assert.Contains(t, endpoints, key)
	}

	articles := endpoints["GET /api/articles"].(map[string]interface{})
	assert.ElementsMatch(t, []interface{}{"author", "topic", "sort_by", "order", "limit", "p"}, articles["queries"])
}

func TestTopics(t *testing.T) {
	s := setupTestRouter(t, false, nil)

	w := s.do("POST", "/api/topics", `{"slug":"S","description":"D"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	topic := decode(t, w)["topic"].(map[string]interface{})
	assert.Equal(t, "S", topic["slug"])
	assert.Equal(t, "D", topic["description"])

	w = s.do("GET", "/api/topics", "")
	require.Equal(t, http.StatusOK, w.Code)
	topics := decode(t, w)["topics"].([]interface{})
	slugs := make([]string, 0, len(topics))
	for _, tp := range topics {
		entry := tp.(map[string]interface{})
		assert.Len(t, entry, 2)
		slugs = append(slugs, entry["slug"].(string))
	}
	assert.Contains(t, slugs, "S")

	assertMsg(t, s.do("POST", "/api/topics", `{"slug":"S","description":"again"}`), http.StatusConflict, "Already exists!")
	assertMsg(t, s.do("POST", "/api/topics", `{"slug":"x"}`), http.StatusBadRequest, "Missing required data!")
	assertMsg(t, s.do("POST", "/api/topics", `{not json`), http.StatusBadRequest, "Bad request!")

	w = s.do("GET", "/api/topics/cats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assertMsg(t, s.do("GET", "/api/topics/dogs", ""), http.StatusNotFound, "Topic not found!")
}

func TestUsers(t *testing.T) {
	s := setupTestRouter(t, false, nil)

	w := s.do("GET", "/api/users/butter_bridge", "")
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{
		"username":   "butter_bridge",
		"name":       "jonny",
		"avatar_url": "https://www.healthytherapies.com/wp-content/uploads/2016/06/Lime3.jpg",
	}, user, "password hash is never serialized")

	assertMsg(t, s.do("GET", "/api/users/not-a-user", ""), http.StatusNotFound, "User not found!")

	w = s.do("POST", "/api/users", `{"username":"weegembump","name":"Gemma","avatar_url":"https://example.com/g.jpg","password":"hunter2"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")

	w = s.do("GET", "/api/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["users"], 5)
}

func TestGetArticle(t *testing.T) {
	s := setupTestRouter(t, false, nil)

	w := s.do("GET", "/api/articles/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	article := decode(t, w)["article"].(map[string]interface{})

	keys := make([]string, 0, len(article))
	for k := range article {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"article_id", "title", "body", "votes", "topic", "author", "created_at", "comment_count"}, keys)
	assert.Equal(t, float64(13), article["comment_count"])
	assert.Equal(t, float64(100), article["votes"])

	assertMsg(t, s.do("GET", "/api/articles/9999", ""), http.StatusNotFound, "Article not found!")
	assertMsg(t, s.do("GET", "/api/articles/dog", ""), http.StatusBadRequest, "Bad request!")
	assertMsg(t, s.do("GET", "/api/articles/3000000000", ""), http.StatusBadRequest, "Bad request!")
	assertMsg(t, s.do("GET", "/api/articles/-1", ""), http.StatusNotFound, "Article not found!")
}

func TestListArticles(t *testing.T) {
	s := setupTestRouter(t, false, nil)

	list := func(t *testing.T, query string) ([]map[string]interface{}, float64) {
		t.Helper()
		w := s.do("GET", "/api/articles"+query, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decode(t, w)
		raw := body["articles"].([]interface{})
		out := make([]map[string]interface{}, 0, len(raw))
		for _, a := range raw {
			out = append(out, a.(map[string]interface{}))
		}
		return out, body["total_count"].(float64)
	}

	t.Run("defaults", func(t *testing.T) {
		articles, total := list(t, "")
		assert.Len(t, articles, 10)
		assert.Equal(t, float64(12), total)
		assert.Equal(t, float64(1), articles[0]["article_id"], "newest first")
		assert.NotContains(t, articles[0], "body")
	})

	t.Run("filters", func(t *testing.T) {
		articles, total := list(t, "?author=icellusedkars&topic=mitch")
		assert.Equal(t, float64(len(articles)), total)
		require.NotEmpty(t, articles)
		for _, a := range articles {
			assert.Equal(t, "icellusedkars", a["author"])
			assert.Equal(t, "mitch", a["topic"])
		}
	})

	t.Run("unknown filter value is empty", func(t *testing.T) {
		articles, total := list(t, "?topic=not-a-topic")
		assert.Empty(t, articles)
		assert.Zero(t, total)
	})

	t.Run("sort asc", func(t *testing.T) {
		articles, _ := list(t, "?sort_by=votes&order=asc&limit=20")
		for i := 1; i < len(articles); i++ {
			assert.LessOrEqual(t, articles[i-1]["votes"], articles[i]["votes"])
		}
		assert.Equal(t, float64(100), articles[len(articles)-1]["votes"])
	})

	t.Run("invalid order falls back to desc", func(t *testing.T) {
		articles, _ := list(t, "?sort_by=comment_count&order=sideways&limit=20")
		for i := 1; i < len(articles); i++ {
			assert.GreaterOrEqual(t, articles[i-1]["comment_count"], articles[i]["comment_count"])
		}
	})

	t.Run("pagination", func(t *testing.T) {
		all, _ := list(t, "?sort_by=article_id&order=asc&limit=100")
		page3, total := list(t, "?sort_by=article_id&order=asc&limit=5&p=3")
		assert.Equal(t, float64(12), total)
		require.Len(t, page3, 2)
		assert.Equal(t, all[10]["article_id"], page3[0]["article_id"])
		assert.Equal(t, all[11]["article_id"], page3[1]["article_id"])
	})

	t.Run("bad queries", func(t *testing.T) {
		assertMsg(t, s.do("GET", "/api/articles?sort_by=not_a_column", ""), http.StatusBadRequest, "Invalid sort_by: not_a_column")
		assertMsg(t, s.do("GET", "/api/articles?limit=abc", ""), http.StatusBadRequest, "Invalid limit")
		assertMsg(t, s.do("GET", "/api/articles?p=0", ""), http.StatusBadRequest, "Invalid page")
		assertMsg(t, s.do("GET", "/api/articles?p=1000000000000000000", ""), http.StatusBadRequest, "Invalid page")
		assertMsg(t, s.do("GET", "/api/articles/1/comments?p=1000000000000000000", ""), http.StatusBadRequest, "Invalid page")
	})

	t.Run("limit above total returns every row", func(t *testing.T) {
		articles, total := list(t, "?limit=200")
		assert.Len(t, articles, 12)
		assert.Equal(t, float64(12), total)
	})
}

func TestPostArticle(t *testing.T) {
	s := setupTestRouter(t, false, nil)

	w := s.do("POST", "/api/articles", `{"title":"New","body":"text","topic":"cats","author":"rogersop"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	article := decode(t, w)["article"].(map[string]interface{})
	assert.Equal(t, float64(13), article["article_id"])
	assert.Equal(t, float64(0), article["votes"])

	assertMsg(t, s.do("POST", "/api/articles", `{"title":"New","body":"text","topic":"dogs","author":"rogersop"}`),
		http.StatusUnprocessableEntity, "Relation does not exist!")
	assertMsg(t, s.do("POST", "/api/articles", `{"title":"New","topic":"cats","author":"rogersop"}`),
		http.StatusBadRequest, "Missing required data!")
}

func TestArticleVotes(t *testing.T) {
	s := setupTestRouter(t, false, nil)

	for i := 0; i < 2; i++ {
		w := s.do("PATCH", "/api/articles/1", `{"inc_votes": 20}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	w := s.do("GET", "/api/articles/1", "")
	assert.Equal(t, float64(140), decode(t, w)["article"].(map[string]interface{})["votes"])

	w = s.do("PATCH", "/api/articles/1", `{"inc_votes": -40}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(100), body["votes"], "vote responses are the bare row")
	assert.Equal(t, "butter_bridge", body["author"])
	assert.Equal(t, "I find this existence challenging", body["body"])

	badBodies := []string{
		`{}`,
		`{"inc_votes": "cat"}`,
		`{"inc_votes": 1.5}`,
		`{"inc_votes": null}`,
		`{"inc_votes": 1, "name": "Mitch"}`,
		`{"votes": 1}`,
		`{"inc_votes": 3000000000}`,
		`[1]`,
		``,
	}
	for _, b := range badBodies {
		t.Run(b, func(t *testing.T) {
			assertMsg(t, s.do("PATCH", "/api/articles/1", b), http.StatusBadRequest, "Bad request!")
		})
	}

	w = s.do("GET", "/api/articles/1", "")
	assert.Equal(t, float64(100), decode(t, w)["article"].(map[string]interface{})["votes"], "rejected bodies never reach the store")

	assertMsg(t, s.do("PATCH", "/api/articles/9999", `{"inc_votes": 1}`), http.StatusNotFound, "Article not found!")
	assertMsg(t, s.do("PATCH", "/api/articles/one", `{"inc_votes": 1}`), http.StatusBadRequest, "Bad request!")
}

func TestDeleteArticle(t *testing.T) {
	s := setupTestRouter(t, false, nil)

	w := s.do("DELETE", "/api/articles/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	assertMsg(t, s.do("GET", "/api/articles/1", ""), http.StatusNotFound, "Article not found!")
	assertMsg(t, s.do("GET", "/api/articles/1/comments", ""), http.StatusNotFound, "Article not found!")
	assertMsg(t, s.do("GET", "/api/comments/2", ""), http.StatusNotFound, "Comment not found!")
	assertMsg(t, s.do("DELETE", "/api/articles/1", ""), http.StatusNotFound, "Article not found!")
}

func TestArticleComments(t *testing.T) {
	s := setupTestRouter(t, false, nil)

	w := s.do("POST", "/api/articles/1/comments", `{"username":"butter_bridge","body":"hi"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	comment := decode(t, w)["comment"].(map[string]interface{})
	assert.NotZero(t, comment["comment_id"])
	assert.Equal(t, float64(1), comment["article_id"])
	assert.Equal(t, "butter_bridge", comment["author"])
	assert.Equal(t, float64(0), comment["votes"])

	w = s.do("GET", "/api/articles/1/comments?limit=50", "")
	require.Equal(t, http.StatusOK, w.Code)
	comments := decode(t, w)["comments"].([]interface{})
	assert.Len(t, comments, 14)
	bodies := make([]string, 0, len(comments))
	for _, c := range comments {
		entry := c.(map[string]interface{})
		assert.Equal(t, float64(1), entry["article_id"])
		bodies = append(bodies, entry["body"].(string))
	}
	assert.Contains(t, bodies, "hi")
	assert.Equal(t, "hi", comments[0].(map[string]interface{})["body"], "newest first")

	w = s.do("GET", "/api/articles/2/comments?sort_by=votes&order=asc", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do("GET", "/api/articles/4/comments", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", string(mustJSON(t, decode(t, w)["comments"])))

	assertMsg(t, s.do("GET", "/api/articles/9999/comments", ""), http.StatusNotFound, "Article not found!")
	assertMsg(t, s.do("GET", "/api/articles/x/comments", ""), http.StatusBadRequest, "Bad request!")
	assertMsg(t, s.do("GET", "/api/articles/1/comments?sort_by=body", ""), http.StatusBadRequest, "Invalid sort_by: body")

	assertMsg(t, s.do("POST", "/api/articles/9999/comments", `{"username":"butter_bridge","body":"hi"}`),
		http.StatusUnprocessableEntity, "Article not found!")
	assertMsg(t, s.do("POST", "/api/articles/1/comments", `{"username":"ghost","body":"hi"}`),
		http.StatusUnprocessableEntity, "Relation does not exist!")
	assertMsg(t, s.do("POST", "/api/articles/1/comments", `{"username":"butter_bridge"}`),
		http.StatusBadRequest, "Missing required data!")

	w = s.do("POST", "/api/articles/2/comments", `{"author":"rogersop","body":"author alias"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestComments(t *testing.T) {
	s := setupTestRouter(t, false, nil)

	w := s.do("GET", "/api/comments/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	comment := decode(t, w)["comment"].(map[string]interface{})
	assert.Equal(t, float64(9), comment["article_id"])
	assert.Equal(t, float64(16), comment["votes"])

	w = s.do("PATCH", "/api/comments/1", `{"inc_votes": 5}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(21), decode(t, w)["votes"])
	w = s.do("PATCH", "/api/comments/1", `{"inc_votes": -5}`)
	assert.Equal(t, float64(16), decode(t, w)["votes"])

	assertMsg(t, s.do("PATCH", "/api/comments/1", `{"inc_votes": "x"}`), http.StatusBadRequest, "Bad request!")
	assertMsg(t, s.do("PATCH", "/api/comments/9999", `{"inc_votes": 1}`), http.StatusNotFound, "Comment not found!")

	w = s.do("DELETE", "/api/comments/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do("GET", "/api/articles/9/comments", "")
	require.Equal(t, http.StatusOK, w.Code)
	for _, c := range decode(t, w)["comments"].([]interface{}) {
		assert.NotEqual(t, float64(1), c.(map[string]interface{})["comment_id"])
	}

	assertMsg(t, s.do("DELETE", "/api/comments/1", ""), http.StatusNotFound, "Comment not found!")
	assertMsg(t, s.do("DELETE", "/api/comments/abc", ""), http.StatusBadRequest, "Bad request!")
	assertMsg(t, s.do("DELETE", "/api/comments/3000000000", ""), http.StatusBadRequest, "Bad request!")
	assertMsg(t, s.do("PATCH", "/api/comments/3000000000", `{"inc_votes": 1}`), http.StatusBadRequest, "Bad request!")
}

func TestLogin(t *testing.T) {
	s := setupTestRouter(t, false, nil)

	w := s.do("POST", "/api/login", `{"username":"butter_bridge","password":"b4tt3r"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := decode(t, w)["token"].(string)
	claims, err := s.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "butter_bridge", claims.User)

	assertMsg(t, s.do("POST", "/api/login", `{"username":"butter_bridge","password":"wrong"}`),
		http.StatusUnauthorized, "Invalid username or password")
	assertMsg(t, s.do("POST", "/api/login", `{"username":"nobody","password":"b4tt3r"}`),
		http.StatusUnauthorized, "Invalid username or password")
	assertMsg(t, s.do("POST", "/api/login", `{"username":"lurker","password":"anything"}`),
		http.StatusUnauthorized, "Invalid username or password")
	assertMsg(t, s.do("POST", "/api/login", `{"username":"butter_bridge"}`),
		http.StatusBadRequest, "Missing required data!")
}

func TestAuthGate(t *testing.T) {
	s := setupTestRouter(t, true, nil)

	token, err := s.tokens.Issue("rogersop")
	require.NoError(t, err)
	expired, err := auth.NewJWT(testSecret, -time.Minute).Issue("rogersop")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, s.do("GET", "/api/articles", "").Code, "reads stay public")
	assert.Equal(t, http.StatusOK, s.do("POST", "/api/login", `{"username":"rogersop","password":"p4ul"}`).Code)

	assertMsg(t, s.do("POST", "/api/topics", `{"slug":"gated","description":"d"}`), http.StatusUnauthorized, "Unauthorized!")
	assertMsg(t, s.do("POST", "/api/topics", `{"slug":"gated","description":"d"}`, "Authorization", "Bearer "+expired),
		http.StatusUnauthorized, "Unauthorized!")
	assertMsg(t, s.do("DELETE", "/api/comments/1", "", "Authorization", "Basic abc"), http.StatusUnauthorized, "Unauthorized!")

	w := s.do("POST", "/api/topics", `{"slug":"gated","description":"d"}`, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = s.do("POST", "/api/articles/1/comments", `{"body":"from the token"}`, "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "rogersop", decode(t, w)["comment"].(map[string]interface{})["author"])

	bearer := "Bearer " + token
	assertMsg(t, s.do("POST", "/api/articles/1/comments", `{"username":"butter_bridge","body":"impostor"}`, "Authorization", bearer),
		http.StatusForbidden, "Forbidden!")
	assertMsg(t, s.do("POST", "/api/articles", `{"title":"t","body":"b","topic":"cats","author":"butter_bridge"}`, "Authorization", bearer),
		http.StatusForbidden, "Forbidden!")

	w = s.do("POST", "/api/articles", `{"title":"t","body":"b","topic":"cats","author":"rogersop"}`, "Authorization", bearer)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "rogersop", decode(t, w)["article"].(map[string]interface{})["author"])
}

func TestCORSAndRequestID(t *testing.T) {
	s := setupTestRouter(t, false, nil)

	w := s.do("OPTIONS", "/api/articles", "",
		"Origin", "https://example.com",
		"Access-Control-Request-Method", "PATCH")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")

	w = s.do("GET", "/api/topics", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = s.do("GET", "/api/topics", "", "X-Request-ID", "abc-123")
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
