package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devtrails/bootcamp-api/internal/domain/entity"
	"github.com/devtrails/bootcamp-api/internal/domain/repository"
	"github.com/devtrails/bootcamp-api/pkg/apperr"
	"github.com/devtrails/bootcamp-api/pkg/helpers"
	"github.com/devtrails/bootcamp-api/pkg/response"
)

// CtxUserKey is the Gin context key holding the authenticated *entity.User.
const CtxUserKey = "currentUser"

// Protect authenticates the request: it extracts the bearer token from the
// Authorization header (falling back to the token cookie), verifies it, and
// resolves the embedded subject to a user record. Every failure mode
// returns the same 401 message.
func Protect(users repository.UserRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Fail(c, http.StatusUnauthorized, apperr.UnauthorizedMessage)
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, apperr.UnauthorizedMessage)
			return
		}
		uid, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, apperr.UnauthorizedMessage)
			return
		}
		user, err := users.GetByID(c.Request.Context(), uid)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, apperr.UnauthorizedMessage)
			return
		}
		c.Set(CtxUserKey, user)
		c.Next()
	}
}

// Authorize fails with 403 unless the authenticated user's role is in the
// allowed set. Must run after Protect.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Fail(c, http.StatusUnauthorized, apperr.UnauthorizedMessage)
			return
		}
		if !user.HasRole(roles...) {
			response.Fail(c, http.StatusForbidden,
				"User role "+user.Role+" is not authorized to access this resource.")
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by Protect, or nil.
func CurrentUser(c *gin.Context) *entity.User {
	if v, ok := c.Get(CtxUserKey); ok {
		if u, ok := v.(*entity.User); ok {
			return u
		}
	}
	return nil
}

func extractToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if cookie, err := c.Cookie("token"); err == nil {
		return cookie
	}
	return ""
}
