package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/bistroboss/bistro-services/internal/cart"
	"github.com/bistroboss/bistro-services/internal/menu"
	"github.com/bistroboss/bistro-services/internal/review"
	"github.com/bistroboss/bistro-services/internal/tokens"
	"github.com/bistroboss/bistro-services/internal/users"
	"github.com/bistroboss/bistro-services/pkg/middleware"
)

const testSecret = "handler-test-secret-32-bytes-xxx"

// testEnv wires the full route table against in-memory repositories.
type testEnv struct {
	router   *gin.Engine
	issuer   *tokens.Issuer
	menuRepo *menu.MemoryRepository
	cartRepo *cart.MemoryRepository
	userRepo *users.MemoryRepository
	usersSvc *users.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		issuer:   tokens.NewIssuer(testSecret, time.Hour),
		menuRepo: menu.NewMemoryRepository(),
		cartRepo: cart.NewMemoryRepository(),
		userRepo: users.NewMemoryRepository(),
	}
	env.usersSvc = users.NewService(env.userRepo)

	requireAuth := middleware.RequireAuth(env.issuer)
	requireAdmin := middleware.RequireAdmin(env.usersSvc)

	r := gin.New()
	root := r.Group("/")
	NewAuthHandler(env.issuer).Register(root)
	NewMenuHandler(env.menuRepo, nil, requireAuth, requireAdmin).Register(root)
	NewReviewHandler(review.NewMemoryRepository(), requireAuth).Register(root)
	NewCartHandler(env.cartRepo, requireAuth).Register(root)
	NewUserHandler(env.usersSvc, requireAuth).Register(root)

	env.router = r
	return env
}

// token mints a valid bearer token for email.
func (e *testEnv) token(t *testing.T, email string) string {
	t.Helper()
	tok, err := e.issuer.Issue(map[string]interface{}{"email": email})
	require.NoError(t, err)
	return tok
}

// do runs a request through the router. A non-empty token is sent as a
// bearer credential; a non-nil body is JSON-encoded.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rw := httptest.NewRecorder()
	e.router.ServeHTTP(rw, req)
	return rw
}

func decodeBody(t *testing.T, rw *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &out))
	return out
}
