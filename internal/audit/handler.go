package audit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"securecampus/internal/auth"
)

// MetaFrom extracts the audited request attributes, defaulting to
// "unknown" when absent.
func MetaFrom(c *gin.Context) Meta {
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	ua := c.Request.UserAgent()
	if ua == "" {
		ua = "unknown"
	}
	return Meta{IPAddress: ip, UserAgent: ua}
}

// Handler exposes the admin-facing log queries.
type Handler struct {
	repo *Repository
}

// NewHandler creates the handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes mounts /logs behind the auth gate. The full listing and
// the suspicious-activity view are admin only; my-activity is open to
// any authenticated user.
func (h *Handler) RegisterRoutes(r gin.IRouter, requireAuth gin.HandlerFunc) {
	grp := r.Group("/logs", requireAuth)
	grp.GET("", auth.RequireRole(auth.RoleAdmin), h.list)
	grp.GET("/suspicious", auth.RequireRole(auth.RoleAdmin), h.suspicious)
	grp.GET("/my-activity", h.myActivity)
}

func (h *Handler) list(c *gin.Context) {
	limit := 100
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	entries, err := h.repo.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list logs"})
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) suspicious(c *gin.Context) {
	entries, err := h.repo.ListSuspicious(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list logs"})
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) myActivity(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
		return
	}
	entries, err := h.repo.ListByUser(c.Request.Context(), claims.UserID())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list logs"})
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	c.JSON(http.StatusOK, entries)
}
