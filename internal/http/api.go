package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"user-dashboard/internal/auth"
	"user-dashboard/internal/domain"
	"user-dashboard/internal/service"
	"user-dashboard/internal/web"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth        service.AuthService
	users       service.UserAdminService
	codec       *auth.TokenCodec
	logger      *logrus.Logger
	environment string
	corsOrigin  string
}

func NewHandler(authSvc service.AuthService, userSvc service.UserAdminService, codec *auth.TokenCodec, logger *logrus.Logger, environment, corsOrigin string) *Handler {
	return &Handler{
		auth:        authSvc,
		users:       userSvc,
		codec:       codec,
		logger:      logger,
		environment: environment,
		corsOrigin:  corsOrigin,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(h.corsOrigin))

	api := router.Group("/api")
	{
		api.GET("/health", h.health)

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", h.register)
			authRoutes.POST("/login", h.login)
			authRoutes.GET("/me", h.authenticate, h.me)
			authRoutes.GET("/test", routeProbe("Auth route is working"))
		}

		users := api.Group("/users")
		{
			users.GET("/test", routeProbe("User route is working"))

			admin := users.Group("", h.authenticate, h.requireAdmin)
			admin.GET("", h.listUsers)
			admin.GET("/:id", h.getUser)
			admin.POST("", h.createUser)
			admin.PUT("/:id", h.updateUser)
			admin.DELETE("/:id", h.deleteUser)
		}
	}

	web.Register(router)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Endpoint not found"})
	})
}

func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func routeProbe(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   message,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "OK",
		"message":     "API is running smoothly",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.environment,
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r registerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, domain.NewValidationError(err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(c, domain.NewValidationError("Name, email, and password are required"))
		return
	}

	token, user, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"token":   token,
		"user":    user,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, domain.NewValidationError(err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(c, domain.NewValidationError("Email and password are required"))
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    currentUser(c),
	})
}

func (h *Handler) listUsers(c *gin.Context) {
	params := service.ListParams{
		Page:      intQuery(c, "page", 1),
		Limit:     intQuery(c, "limit", 10),
		Search:    c.Query("search"),
		Role:      c.Query("role"),
		IsActive:  c.Query("isActive"),
		SortBy:    c.DefaultQuery("sortBy", "createdAt"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
	}

	page, err := h.users.List(c.Request.Context(), params)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    page,
	})
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

type createUserRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

func (r createUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, domain.NewValidationError(err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(c, domain.NewValidationError("Name, email, and password are required"))
		return
	}

	user, err := h.users.Create(c.Request.Context(), service.CreateParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.failAdminDuplicate(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully",
		"data":    user,
	})
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

func (h *Handler) updateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, domain.NewValidationError(err.Error()))
		return
	}

	user, err := h.users.Update(c.Request.Context(), c.Param("id"), service.UpdateParams{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.failAdminDuplicate(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User updated successfully",
		"data":    user,
	})
}

func (h *Handler) deleteUser(c *gin.Context) {
	caller := currentUser(c)
	if caller == nil {
		h.fail(c, errors.New("no authenticated user on request"))
		return
	}

	deleted, err := h.users.Delete(c.Request.Context(), caller.ID, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted successfully",
		"data":    gin.H{"deletedUser": deleted},
	})
}

func intQuery(c *gin.Context, key string, fallback int) int {
	value, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return value
}

// fail maps a service error to the wire taxonomy. Infrastructure errors are
// logged with their cause and surfaced as a generic 500.
func (h *Handler) fail(c *gin.Context, err error) {
	status, message := mapError(err)
	if status == http.StatusInternalServerError {
		h.logger.WithError(err).Error("request failed")
	}
	c.JSON(status, gin.H{"success": false, "message": message})
}

// failAdminDuplicate is fail with the admin wording for duplicate emails.
func (h *Handler) failAdminDuplicate(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrDuplicateEmail) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User with this email already exists"})
		return
	}
	h.fail(c, err)
}

func mapError(err error) (int, string) {
	if ve, ok := domain.AsValidationError(err); ok {
		return http.StatusBadRequest, ve.Message
	}
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusBadRequest, "Email already exists"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, domain.ErrAccountInactive):
		return http.StatusUnauthorized, "Account is deactivated"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, "Invalid user ID format"
	case errors.Is(err, domain.ErrSelfDeletion):
		return http.StatusBadRequest, "Cannot delete your own account"
	}
	return http.StatusInternalServerError, "Server error"
}
