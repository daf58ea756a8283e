package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"pinboard/internal/auth"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	UserIDKey   = "userID"
	UserRoleKey = "userRole"
)

// JWTAuthMiddleware rejects requests without a valid bearer token. When
// roles are given, the token's role claim must be one of them.
func JWTAuthMiddleware(jwtSecret string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, err := parseAuthHeader(c, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Invalid or missing token",
			})
			return
		}

		if len(roles) > 0 && !containsRole(roles, role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "Insufficient role",
			})
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(UserRoleKey, role)
		c.Next()
	}
}

// OptionalJWTAuthMiddleware resolves the identity when a valid bearer token
// is present and lets the request through anonymously otherwise. Used on
// routes where privacy filtering depends on who is asking.
func OptionalJWTAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		userID, role, err := parseAuthHeader(c, jwtSecret)
		if err != nil {
			// A malformed token on an optional route is still rejected:
			// the caller claimed an identity and failed to prove it.
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Invalid or missing token",
			})
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(UserRoleKey, role)
		c.Next()
	}
}

func parseAuthHeader(c *gin.Context, jwtSecret string) (primitive.ObjectID, string, error) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return primitive.NilObjectID, "", fmt.Errorf("missing bearer token")
	}
	tokenStr := strings.TrimPrefix(header, "Bearer ")

	userIDStr, role, err := auth.ParseToken(jwtSecret, tokenStr)
	if err != nil {
		return primitive.NilObjectID, "", err
	}
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		return primitive.NilObjectID, "", fmt.Errorf("invalid user id in token")
	}

	return userID, role, nil
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
