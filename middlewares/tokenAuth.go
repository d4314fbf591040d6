package middlewares

import (
	"CareUSmile/models"
	"CareUSmile/utils"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userTypeKey contextKey = "userType"
)

// ExtractAccessToken looks for the access token in the Authorization header,
// the accessToken cookie and finally the accessToken query parameter.
func ExtractAccessToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie != "" {
		return cookie
	}
	return c.DefaultQuery("accessToken", "")
}

// TokenAuthMiddleware validates the token and adds user details to the
// request context.
func TokenAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractAccessToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Missing access token"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(token, models.UserTypeAdmin, models.UserTypeUser)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token"})
			c.Abort()
			return
		}

		ctx := context.WithValue(c.Request.Context(), userIDKey, claims.UserID)
		ctx = context.WithValue(ctx, userTypeKey, claims.UserType)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// UserTypeAuthMiddleware restricts access to users with the given type.
func UserTypeAuthMiddleware(requiredType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userType, err := ExtractUserTypeFromContext(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User type not found in context"})
			c.Abort()
			return
		}

		if userType != requiredType {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Forbidden: insufficient privileges"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// ExtractUserIDFromContext retrieves the userID from the context.
func ExtractUserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok {
		return "", errors.New("user ID not found in context")
	}
	return userID, nil
}

// ExtractUserTypeFromContext retrieves the user type from the context.
func ExtractUserTypeFromContext(ctx context.Context) (string, error) {
	userType, ok := ctx.Value(userTypeKey).(string)
	if !ok {
		return "", errors.New("user type not found in context")
	}
	return userType, nil
}
