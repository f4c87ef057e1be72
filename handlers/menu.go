package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/bistroboss/bistro-services/internal/menu"
	"github.com/bistroboss/bistro-services/internal/storage"
)

// MenuHandler serves the public menu listing and the admin-gated
// mutations. When an image store is configured it also handles item
// image upload and presigned download URLs.
type MenuHandler struct {
	repo         menu.Repository
	images       *storage.ImageStore
	requireAuth  gin.HandlerFunc
	requireAdmin gin.HandlerFunc
}

func NewMenuHandler(repo menu.Repository, images *storage.ImageStore, requireAuth, requireAdmin gin.HandlerFunc) *MenuHandler {
	return &MenuHandler{repo: repo, images: images, requireAuth: requireAuth, requireAdmin: requireAdmin}
}

// Register routes
func (h *MenuHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/menu", h.List)
	rg.POST("/menu", h.requireAuth, h.requireAdmin, h.Create)
	rg.DELETE("/menu/:id", h.requireAuth, h.requireAdmin, h.Delete)
	if h.images != nil {
		rg.POST("/menu/:id/image", h.requireAuth, h.requireAdmin, h.UploadImage)
		rg.GET("/menu/:id/image", h.ImageURL)
	}
}

func (h *MenuHandler) List(c *gin.Context) {
	result, err := h.repo.List(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *MenuHandler) Create(c *gin.Context) {
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

func (h *MenuHandler) Delete(c *gin.Context) {
	result, err := h.repo.DeleteByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UploadImage stores the request body as the item's image and records
// the object key on the menu document.
func (h *MenuHandler) UploadImage(c *gin.Context) {
	id := c.Param("id")
	key := "menu/" + id
	contentType := c.ContentType()
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := h.images.UploadImage(c.Request.Context(), key, c.Request.Body, c.Request.ContentLength, contentType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "image upload failed"})
		return
	}
	result, err := h.repo.SetImageKey(c.Request.Context(), id, key)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ImageURL returns a short-lived presigned URL for the item's image.
func (h *MenuHandler) ImageURL(c *gin.Context) {
	key := "menu/" + c.Param("id")
	url, err := h.images.PresignedImageURL(c.Request.Context(), key, 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": true, "message": "image not available"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
