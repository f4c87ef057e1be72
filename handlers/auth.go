package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bistroboss/bistro-services/internal/tokens"
)

// AuthHandler issues bearer tokens for the identity supplied by the
// external sign-in flow. The service never checks credentials itself;
// whatever claims the client presents are signed and handed back.
type AuthHandler struct {
	issuer *tokens.Issuer
}

func NewAuthHandler(issuer *tokens.Issuer) *AuthHandler {
	return &AuthHandler{issuer: issuer}
}

// Register routes
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/jwt", h.Issue)
}

// Issue signs the posted claims object and returns {token: "..."}.
func (h *AuthHandler) Issue(c *gin.Context) {
	var claims map[string]interface{}
	if err := c.ShouldBindJSON(&claims); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "invalid claims body"})
		return
	}
	token, err := h.issuer.Issue(claims)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "claims required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
