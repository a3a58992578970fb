package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"budget/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTestJWT() {
	InitJWT(&config.Config{JWT: config.JWTConfig{Secret: "test-secret"}})
}

func TestGenerateAndParseToken(t *testing.T) {
	initTestJWT()

	token, err := GenerateToken("user-1", "user@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestParseToken_Expired(t *testing.T) {
	initTestJWT()

	token, err := GenerateToken("user-1", "user@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	initTestJWT()
	token, err := GenerateToken("user-1", "user@example.com", time.Hour)
	require.NoError(t, err)

	InitJWT(&config.Config{JWT: config.JWTConfig{Secret: "another-secret"}})
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuth(), func(c *gin.Context) {
		c.JSON(200, gin.H{"user_id": GetCurrentUserID(c), "email": GetCurrentUserEmail(c)})
	})
	return r
}

func TestJWTAuth_ValidToken(t *testing.T) {
	initTestJWT()
	token, err := GenerateToken("user-1", "user@example.com", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	authTestRouter().ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
	assert.Contains(t, w.Body.String(), "user@example.com")
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	initTestJWT()

	w := httptest.NewRecorder()
	authTestRouter().ServeHTTP(w, httptest.NewRequest("GET", "/protected", nil))

	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), "Authentication required")
}

func TestJWTAuth_NotBearer(t *testing.T) {
	initTestJWT()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	authTestRouter().ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid authorization header")
}

func TestJWTAuth_GarbageToken(t *testing.T) {
	initTestJWT()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	authTestRouter().ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}
