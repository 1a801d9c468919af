package announcement

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"securecampus/internal/apperr"
	"securecampus/internal/auth"
)

// Handler exposes the announcement endpoints. Reads are public;
// mutations require an admin token.
type Handler struct {
	repo *Repository
}

// NewHandler creates the handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes mounts /announcements.
func (h *Handler) RegisterRoutes(r gin.IRouter, requireAuth gin.HandlerFunc) {
	grp := r.Group("/announcements")
	grp.GET("", h.list)
	grp.GET("/:id", h.get)

	admin := grp.Group("", requireAuth, auth.RequireRole(auth.RoleAdmin))
	admin.POST("", h.create)
	admin.PUT("/:id", h.update)
	admin.DELETE("/:id", h.remove)
}

type createRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type updateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list announcements"})
		return
	}
	if items == nil {
		items = []Announcement{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) get(c *gin.Context) {
	a, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "announcement not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load announcement"})
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	a, err := h.repo.Create(c.Request.Context(), req.Title, req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create announcement"})
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *Handler) update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	a, err := h.repo.Update(c.Request.Context(), c.Param("id"), req.Title, req.Content)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "announcement not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update announcement"})
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "announcement not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete announcement"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
