package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storyhive/internal/db"
	"storyhive/internal/models"
)

const CheckUserKey = "user"

// LoadUser parses an optional bearer token and sets the authenticated user
// on the context. Requests without (or with invalid) tokens pass through
// anonymously; AuthRequired decides whether that is acceptable.
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			tokenString := strings.TrimPrefix(header, "Bearer ")
			if userID, err := ParseToken(tokenString); err == nil {
				var user models.User
				if result := db.DB.First(&user, userID); result.Error == nil {
					c.Set(CheckUserKey, &user)
				}
			}
		}
		c.Next()
	}
}

// AuthRequired ensures a user is authenticated.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthenticated",
			})
			return
		}
		c.Next()
	}
}

// RoleRequired ensures the authenticated user holds one of the given roles.
func RoleRequired(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, exists := c.Get(CheckUserKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthenticated",
			})
			return
		}
		user := u.(*models.User)
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Unauthorized",
		})
	}
}
