package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// fakeVerifier implements Verifier
type fakeVerifier struct{}

func (f *fakeVerifier) Verify(ctx context.Context, raw string) (map[string]interface{}, error) {
	if raw == "goodtoken" {
		return map[string]interface{}{"email": "test@example.com"}, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// fakeAdminChecker implements AdminChecker
type fakeAdminChecker struct {
	admins map[string]bool
	err    error
}

func (f *fakeAdminChecker) IsAdmin(ctx context.Context, email string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.admins[email], nil
}

func TestRequireAuth_NoHeader(t *testing.T) {
	g := gin.New()
	reached := false
	g.GET("/", RequireAuth(&fakeVerifier{}), func(c *gin.Context) {
		reached = true
		c.Status(http.StatusOK)
	})

	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusUnauthorized, rw.Code)
	require.False(t, reached, "handler must not run after rejection")

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &body))
	require.Equal(t, true, body["error"])
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	g := gin.New()
	g.GET("/", RequireAuth(&fakeVerifier{}), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "BadHeader")
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusForbidden, rw.Code)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	g := gin.New()
	reached := false
	g.GET("/", RequireAuth(&fakeVerifier{}), func(c *gin.Context) {
		reached = true
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tampered")
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusForbidden, rw.Code)
	require.False(t, reached, "handler must not run after rejection")
}

func TestRequireAuth_ValidToken(t *testing.T) {
	g := gin.New()
	g.GET("/", RequireAuth(&fakeVerifier{}), func(c *gin.Context) {
		require.Equal(t, "test@example.com", ClaimsEmail(c))
		c.JSON(http.StatusOK, gin.H{"email": ClaimsEmail(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer goodtoken")
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusOK, rw.Code)
}

func TestRequireAdmin_NonAdminRejected(t *testing.T) {
	g := gin.New()
	ac := &fakeAdminChecker{admins: map[string]bool{}}
	reached := false
	g.POST("/", RequireAuth(&fakeVerifier{}), RequireAdmin(ac), func(c *gin.Context) {
		reached = true
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer goodtoken")
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusForbidden, rw.Code)
	require.False(t, reached)
}

func TestRequireAdmin_AdminAllowed(t *testing.T) {
	g := gin.New()
	ac := &fakeAdminChecker{admins: map[string]bool{"test@example.com": true}}
	g.POST("/", RequireAuth(&fakeVerifier{}), RequireAdmin(ac), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer goodtoken")
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusOK, rw.Code)
}

// RequireAdmin without a prior RequireAuth has no verified email and rejects.
func TestRequireAdmin_NoClaims(t *testing.T) {
	g := gin.New()
	ac := &fakeAdminChecker{admins: map[string]bool{"test@example.com": true}}
	g.POST("/", RequireAdmin(ac), func(c *gin.Context) { c.Status(http.StatusOK) })

	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodPost, "/", nil))

	require.Equal(t, http.StatusForbidden, rw.Code)
}

func TestRequireAdmin_LookupError(t *testing.T) {
	g := gin.New()
	ac := &fakeAdminChecker{err: fmt.Errorf("store down")}
	g.POST("/", RequireAuth(&fakeVerifier{}), RequireAdmin(ac), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer goodtoken")
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusInternalServerError, rw.Code)
}
