package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bistroboss/bistro-services/internal/cart"
	"github.com/bistroboss/bistro-services/internal/menu"
	"github.com/bistroboss/bistro-services/internal/users"
	"github.com/bistroboss/bistro-services/pkg/logger"
)

// storeError maps repository failures onto responses. Malformed ids are
// the caller's fault; everything else is surfaced as a 500 with a log
// line, with no per-request recovery beyond that.
func storeError(c *gin.Context, err error) {
	if errors.Is(err, menu.ErrInvalidID) || errors.Is(err, users.ErrInvalidID) || errors.Is(err, cart.ErrInvalidID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "invalid id"})
		return
	}
	logger.Errorf("store operation failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "store operation failed"})
}
