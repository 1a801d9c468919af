package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"securecampus/internal/apperr"
	"securecampus/internal/audit"
	"securecampus/internal/auth"
)

// Handler exposes the auth and user endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates the handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public /auth routes and the protected /users
// routes. requireAuth is the bearer-token gate shared by every protected
// route group.
func (h *Handler) RegisterRoutes(r gin.IRouter, requireAuth gin.HandlerFunc) {
	authGrp := r.Group("/auth")
	authGrp.POST("/register", h.register)
	authGrp.POST("/login", h.login)

	users := r.Group("/users", requireAuth)
	users.GET("/me", h.me)
	users.GET("", auth.RequireRole(auth.RoleAdmin), h.list)
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	res, err := h.service.Register(c.Request.Context(), RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}, audit.MetaFrom(c))
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
		case errors.Is(err, apperr.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "registration failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	res, err := h.service.Login(c.Request.Context(), LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, audit.MetaFrom(c))
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrTooManyAttempts):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Too many login attempts. Try again later."})
		case errors.Is(err, apperr.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "login failed"})
		}
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) me(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
		return
	}
	u, err := h.service.Get(c.Request.Context(), claims.UserID())
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unknown user"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load user"})
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) list(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list users"})
		return
	}
	if users == nil {
		users = []User{}
	}
	c.JSON(http.StatusOK, users)
}
