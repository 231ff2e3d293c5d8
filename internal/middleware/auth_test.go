package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillport_backend/internal/auth"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/private", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})
	r.GET("/admin", AuthMiddleware(), RequireRoles("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/public", OptionalAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})
	return r
}

// expiredToken signs a token with the test secret whose expiry is
// already in the past.
func expiredToken(t *testing.T, userID, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"sub":     userID,
		"iat":     time.Now().Add(-2 * time.Hour).Unix(),
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	auth.Init("test-secret", 15)
	r := newTestRouter()

	t.Run("missing token", func(t *testing.T) {
		w := doRequest(r, "/private", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doRequest(r, "/private", "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := auth.GenerateToken("user-1", "talent")
		require.NoError(t, err)

		w := doRequest(r, "/private", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user-1")
	})

	t.Run("wrong signing key", func(t *testing.T) {
		auth.Init("other-secret", 15)
		token, err := auth.GenerateToken("user-1", "talent")
		require.NoError(t, err)
		auth.Init("test-secret", 15)

		w := doRequest(r, "/private", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// Authentication and authorization failures must stay distinguishable:
// a bad session is 401, a valid session without the role is 403.
func TestAuthVersusRoleFailures(t *testing.T) {
	auth.Init("test-secret", 15)
	r := newTestRouter()

	w := doRequest(r, "/admin", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	talentToken, err := auth.GenerateToken("user-1", "talent")
	require.NoError(t, err)
	w = doRequest(r, "/admin", talentToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken, err := auth.GenerateToken("admin-1", "admin")
	require.NoError(t, err)
	w = doRequest(r, "/admin", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuth(t *testing.T) {
	auth.Init("test-secret", 15)
	r := newTestRouter()

	t.Run("anonymous passes", func(t *testing.T) {
		w := doRequest(r, "/public", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("valid token resolves identity", func(t *testing.T) {
		token, err := auth.GenerateToken("user-1", "talent")
		require.NoError(t, err)

		w := doRequest(r, "/public", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user-1")
	})

	t.Run("unparseable token resolves to anonymous", func(t *testing.T) {
		w := doRequest(r, "/public", "bogus")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "user-1")
	})

	t.Run("expired token resolves to anonymous", func(t *testing.T) {
		token := expiredToken(t, "user-1", "talent")

		w := doRequest(r, "/public", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "user-1")
	})
}
