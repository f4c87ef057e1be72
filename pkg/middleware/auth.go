package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bistroboss/bistro-services/pkg/metrics"
)

// ClaimsKey is the gin context key under which RequireAuth stores the
// verified token claims.
const ClaimsKey = "claims"

// Verifier is the minimal interface the auth gate depends on.
type Verifier interface {
	Verify(ctx context.Context, raw string) (map[string]interface{}, error)
}

// AdminChecker reports whether the account behind an email holds the
// admin role. Implemented by the users service.
type AdminChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// RequireAuth returns a Gin middleware that verifies Bearer tokens using
// the provided verifier. A missing header rejects with 401, anything
// else that fails verification with 403; every rejection aborts the
// chain. On success the decoded claims are stored in the context.
func RequireAuth(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			metrics.AuthRejected.WithLabelValues("no_token").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": true, "message": "unauthorized access"})
			return
		}
		const prefix = "Bearer "
		if !strings.HasPrefix(auth, prefix) {
			metrics.AuthRejected.WithLabelValues("invalid_token").Inc()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": true, "message": "unauthorized access"})
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(auth, prefix))

		claims, err := ver.Verify(c.Request.Context(), raw)
		if err != nil {
			// Expired and tampered tokens are deliberately indistinguishable here.
			metrics.AuthRejected.WithLabelValues("invalid_token").Inc()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": true, "message": "unauthorized access"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireAdmin returns a Gin middleware enforcing the admin role. It
// must run after RequireAuth: the verified email is read from context
// claims and checked against the user store.
func RequireAdmin(ac AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := ClaimsEmail(c)
		if email == "" {
			metrics.AuthRejected.WithLabelValues("not_admin").Inc()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": true, "message": "forbidden access"})
			return
		}
		ok, err := ac.IsAdmin(c.Request.Context(), email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": true, "message": "role lookup failed"})
			return
		}
		if !ok {
			metrics.AuthRejected.WithLabelValues("not_admin").Inc()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": true, "message": "forbidden access"})
			return
		}
		c.Next()
	}
}

// ClaimsEmail extracts the verified email from context claims; empty
// when RequireAuth has not run or the token carried no email.
func ClaimsEmail(c *gin.Context) string {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return ""
	}
	cm, ok := v.(map[string]interface{})
	if !ok {
		return ""
	}
	email, _ := cm["email"].(string)
	return email
}
