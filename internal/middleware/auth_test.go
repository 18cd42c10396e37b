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
)

const testSecret = "test-secret"

func newIdentityRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(NewIdentityMiddleware(testSecret).Middleware())
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"address": c.GetString("address")})
	})
	return r
}

func signToken(t *testing.T, secret, address string, ttl time.Duration) string {
	t.Helper()

	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	if address != "" {
		claims["addr"] = address
	}
	claims["exp"] = time.Now().Add(ttl).Unix()

	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func do(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestIdentityMiddleware_ValidToken(t *testing.T) {
	r := newIdentityRouter()

	rec := do(r, "Bearer "+signToken(t, testSecret, "addr1", time.Minute))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"address":"addr1"}`, rec.Body.String())
}

func TestIdentityMiddleware_MissingToken(t *testing.T) {
	r := newIdentityRouter()

	rec := do(r, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIdentityMiddleware_MalformedHeader(t *testing.T) {
	r := newIdentityRouter()

	rec := do(r, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIdentityMiddleware_WrongSecret(t *testing.T) {
	r := newIdentityRouter()

	rec := do(r, "Bearer "+signToken(t, "other-secret", "addr1", time.Minute))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIdentityMiddleware_ExpiredToken(t *testing.T) {
	r := newIdentityRouter()

	rec := do(r, "Bearer "+signToken(t, testSecret, "addr1", -time.Minute))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIdentityMiddleware_MissingAddressClaim(t *testing.T) {
	r := newIdentityRouter()

	rec := do(r, "Bearer "+signToken(t, testSecret, "", time.Minute))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestID_Generated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestID_KeepsCallerSupplied(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "fixed-id", rec.Header().Get("X-Request-ID"))
}
