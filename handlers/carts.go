package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/bistroboss/bistro-services/internal/cart"
	"github.com/bistroboss/bistro-services/pkg/middleware"
)

// CartHandler serves cart entries. Listing is scoped to the requesting
// identity: the email query parameter must match the verified token
// email exactly, a mismatch is rejected rather than corrected.
type CartHandler struct {
	repo        cart.Repository
	requireAuth gin.HandlerFunc
}

func NewCartHandler(repo cart.Repository, requireAuth gin.HandlerFunc) *CartHandler {
	return &CartHandler{repo: repo, requireAuth: requireAuth}
}

// Register routes
func (h *CartHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/carts", h.requireAuth, h.ListOwn)
	rg.POST("/carts", h.Create)
	rg.DELETE("/carts/:id", h.Delete)
}

func (h *CartHandler) ListOwn(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusOK, []bson.M{})
		return
	}
	if email != middleware.ClaimsEmail(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": true, "message": "forbidden access"})
		return
	}
	result, err := h.repo.ListByEmail(c.Request.Context(), email)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CartHandler) Create(c *gin.Context) {
	var item bson.M
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "invalid body"})
		return
	}
	result, err := h.repo.Insert(c.Request.Context(), item)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CartHandler) Delete(c *gin.Context) {
	result, err := h.repo.DeleteByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
