package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/bistroboss/bistro-services/internal/review"
)

// ReviewHandler serves the public review listing and authenticated
// review submission.
type ReviewHandler struct {
	repo        review.Repository
	requireAuth gin.HandlerFunc
}

func NewReviewHandler(repo review.Repository, requireAuth gin.HandlerFunc) *ReviewHandler {
	return &ReviewHandler{repo: repo, requireAuth: requireAuth}
}

// Register routes
func (h *ReviewHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/review", h.List)
	rg.POST("/review", h.requireAuth, h.Create)
}

func (h *ReviewHandler) List(c *gin.Context) {
	result, err := h.repo.List(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var doc bson.M
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "invalid body"})
		return
	}
	result, err := h.repo.Insert(c.Request.Context(), doc)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
