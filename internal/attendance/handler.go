package attendance

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"securecampus/internal/apperr"
	"securecampus/internal/audit"
	"securecampus/internal/auth"
)

// Handler exposes the attendance endpoints. All of them require a token.
type Handler struct {
	service *Service
}

// NewHandler creates the handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts /attendance behind the auth gate.
func (h *Handler) RegisterRoutes(r gin.IRouter, requireAuth gin.HandlerFunc) {
	grp := r.Group("/attendance", requireAuth)
	grp.POST("/check-in", h.checkIn)
	grp.GET("/my-attendance", h.myAttendance)
	grp.GET("/all", auth.RequireRole(auth.RoleAdmin), h.all)
}

type checkInRequest struct {
	Location string `json:"location"`
}

func (h *Handler) checkIn(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
		return
	}

	var req checkInRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
	}

	rec, err := h.service.CheckIn(c.Request.Context(), claims.UserID(), req.Location, audit.MetaFrom(c))
	if err != nil {
		if errors.Is(err, apperr.ErrAlreadyCheckedIn) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Already checked in today"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "check-in failed"})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *Handler) myAttendance(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
		return
	}
	recs, err := h.service.History(c.Request.Context(), claims.UserID())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list attendance"})
		return
	}
	if recs == nil {
		recs = []Record{}
	}
	c.JSON(http.StatusOK, recs)
}

func (h *Handler) all(c *gin.Context) {
	recs, err := h.service.All(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list attendance"})
		return
	}
	if recs == nil {
		recs = []Record{}
	}
	c.JSON(http.StatusOK, recs)
}
