package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pinboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret-key"

func setupRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()

	protected := r.Group("/protected")
	protected.Use(middleware.JWTAuthMiddleware(testSecret, roles...))

	protected.GET("/resource", func(c *gin.Context) {
		userID, exists := c.Get(middleware.UserIDKey)
		if !exists {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "User ID not found in context"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Access granted",
			"user_id": userID.(primitive.ObjectID).Hex(),
		})
	})

	return r
}

func generateTestToken(userID primitive.ObjectID, role, jwtSecret string) string {
	claims := jwt.MapClaims{
		"user_id": userID.Hex(),
		"role":    role,
		"exp":     jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(jwtSecret))

	return tokenString
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	// Arrange
	router := setupRouter()
	userID := primitive.NewObjectID()
	token := generateTestToken(userID, "user", testSecret)

	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Access granted")
	assert.Contains(t, resp.Body.String(), userID.Hex())
}

func TestJWTAuthMiddleware_NoAuthHeader(t *testing.T) {
	router := setupRouter()

	req, _ := http.NewRequest("GET", "/protected/resource", nil)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestJWTAuthMiddleware_BadSignature(t *testing.T) {
	router := setupRouter()
	token := generateTestToken(primitive.NewObjectID(), "user", "wrong-secret")

	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestJWTAuthMiddleware_RoleAllowed(t *testing.T) {
	router := setupRouter("user", "admin")
	token := generateTestToken(primitive.NewObjectID(), "admin", testSecret)

	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestJWTAuthMiddleware_RoleRejected(t *testing.T) {
	router := setupRouter("admin")
	token := generateTestToken(primitive.NewObjectID(), "user", testSecret)

	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func setupOptionalRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()

	r.GET("/open", middleware.OptionalJWTAuthMiddleware(testSecret), func(c *gin.Context) {
		if userID, exists := c.Get(middleware.UserIDKey); exists {
			c.JSON(http.StatusOK, gin.H{"user_id": userID.(primitive.ObjectID).Hex()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": nil})
	})

	return r
}

func TestOptionalJWTAuthMiddleware_Anonymous(t *testing.T) {
	router := setupOptionalRouter()

	req, _ := http.NewRequest("GET", "/open", nil)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "null")
}

func TestOptionalJWTAuthMiddleware_WithToken(t *testing.T) {
	router := setupOptionalRouter()
	userID := primitive.NewObjectID()
	token := generateTestToken(userID, "user", testSecret)

	req, _ := http.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), userID.Hex())
}

func TestOptionalJWTAuthMiddleware_BadToken(t *testing.T) {
	router := setupOptionalRouter()

	req, _ := http.NewRequest("GET", "/open", nil)
	req.Header.Set("Authorization", "Bearer garbage")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
