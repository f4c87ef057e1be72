package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/bistroboss/bistro-services/internal/users"
	"github.com/bistroboss/bistro-services/pkg/middleware"
)

// UserHandler manages account routes: idempotent creation on first
// sign-in, listing, admin promotion, the admin flag probe, and removal.
type UserHandler struct {
	svc         *users.Service
	requireAuth gin.HandlerFunc
}

func NewUserHandler(svc *users.Service, requireAuth gin.HandlerFunc) *UserHandler {
	return &UserHandler{svc: svc, requireAuth: requireAuth}
}

// Register routes. Creation and promotion stay open: accounts are made
// by the external sign-in flow, and promotion must work before the
// first admin exists.
func (h *UserHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/users", h.requireAuth, h.List)
	rg.POST("/users", h.Create)
	rg.PATCH("/users/admin/:id", h.Promote)
	rg.GET("/users/admin/:email", h.requireAuth, h.AdminFlag)
	rg.DELETE("/users/:id", h.Delete)
}

func (h *UserHandler) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Create inserts the posted account document unless the email is
// already known; re-creation reports "user already exist" and writes
// nothing.
func (h *UserHandler) Create(c *gin.Context) {
	var doc bson.M
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": "invalid body"})
		return
	}
	result, existed, err := h.svc.CreateIfAbsent(c.Request.Context(), doc)
	if err != nil {
		storeError(c, err)
		return
	}
	if existed {
		c.JSON(http.StatusOK, gin.H{"message": "user already exist"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *UserHandler) Promote(c *gin.Context) {
	result, err := h.svc.PromoteToAdmin(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AdminFlag answers {admin:bool} for the given email. A requester
// asking about someone else's email gets {admin:false} without a store
// lookup; the verified token identity is the only trusted email source.
func (h *UserHandler) AdminFlag(c *gin.Context) {
	email := c.Param("email")
	if middleware.ClaimsEmail(c) != email {
		c.JSON(http.StatusOK, gin.H{"admin": false})
		return
	}
	ok, err := h.svc.IsAdmin(c.Request.Context(), email)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": ok})
}

func (h *UserHandler) Delete(c *gin.Context) {
	result, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
