package auth_test

import (
	"os"
	"testing"
	"time"

	"pinboard/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-key"

func TestGenerateAndParseToken(t *testing.T) {
	os.Setenv("JWT_EXPIRY_HOURS", "24")

	userID := "64fbd2481a5fbb6ef6a11233"
	token, err := auth.GenerateToken(testSecret, userID, "user")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedUserID, parsedRole, err := auth.ParseToken(testSecret, token)

	assert.NoError(t, err)
	assert.Equal(t, userID, parsedUserID)
	assert.Equal(t, "user", parsedRole)
}

func TestParseToken_InvalidToken(t *testing.T) {
	_, _, err := auth.ParseToken(testSecret, "invalid-token")

	assert.Error(t, err)
	assert.Equal(t, "invalid token", err.Error())
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := auth.GenerateToken("some-other-secret", "64fbd2481a5fbb6ef6a11233", "user")
	assert.NoError(t, err)

	_, _, err = auth.ParseToken(testSecret, token)

	assert.Error(t, err)
	assert.Equal(t, "invalid token", err.Error())
}

func TestParseToken_ExpiredToken(t *testing.T) {
	claims := jwt.MapClaims{
		"user_id": "64fbd2481a5fbb6ef6a11233",
		"role":    "user",
		"exp":     time.Now().Add(-1 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	expiredToken, _ := token.SignedString([]byte(testSecret))

	_, _, err := auth.ParseToken(testSecret, expiredToken)

	assert.Error(t, err)
	assert.Equal(t, "invalid token", err.Error())
}

func TestParseToken_MissingClaims(t *testing.T) {
	claims := jwt.MapClaims{
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenWithoutUserID, _ := token.SignedString([]byte(testSecret))

	_, _, err := auth.ParseToken(testSecret, tokenWithoutUserID)

	assert.Error(t, err)
	assert.Equal(t, "invalid claims", err.Error())
}
