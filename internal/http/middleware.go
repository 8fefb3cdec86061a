package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"user-dashboard/internal/domain"
)

const userContextKey = "currentUser"

const bearerPrefix = "Bearer "

// authenticate extracts and verifies the bearer token, loads the referenced
// user, and attaches it to the request context. Rejections are terminal:
// the handler chain is aborted with a 401.
func (h *Handler) authenticate(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		unauthorized(c, "Access denied. No token provided.")
		return
	}

	claims, err := h.codec.Verify(strings.TrimPrefix(header, bearerPrefix))
	if err != nil {
		unauthorized(c, "Access denied. Invalid token.")
		return
	}

	user, err := h.auth.GetByID(c.Request.Context(), claims.Subject)
	if err != nil || !user.IsActive {
		unauthorized(c, "Access denied. User not found or inactive.")
		return
	}

	c.Set(userContextKey, user)
	c.Next()
}

// requireAdmin gates a route on the attached user's role. It must run after
// authenticate.
func (h *Handler) requireAdmin(c *gin.Context) {
	user := currentUser(c)
	if user == nil || user.Role != domain.RoleAdmin {
		unauthorized(c, "Access denied. Admin privileges required.")
		return
	}
	c.Next()
}

func currentUser(c *gin.Context) *domain.PublicUser {
	value, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := value.(*domain.PublicUser)
	return user
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
}
