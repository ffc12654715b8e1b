package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lihoubrak/shopping-api/middleware"
)

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", middleware.ValidateToken, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.MustGet("user_id").(uint)})
	})
	return r
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := setupAuthRouter()

	tests := []struct {
		name       string
		authHeader string
		wantCode   int
	}{
		{"missing_header", "", http.StatusUnauthorized},
		{"garbage_token", "Bearer not.a.token", http.StatusUnauthorized},
		{
			"wrong_secret",
			"Bearer " + signToken(t, "other-secret", jwt.MapClaims{"user_id": 7}),
			http.StatusUnauthorized,
		},
		{
			"missing_user_id",
			"Bearer " + signToken(t, "test-secret", jwt.MapClaims{"sub": "7"}),
			http.StatusUnauthorized,
		},
		{
			"valid",
			"Bearer " + signToken(t, "test-secret", jwt.MapClaims{"user_id": 7}),
			http.StatusOK,
		},
		{
			"valid_without_bearer_prefix",
			signToken(t, "test-secret", jwt.MapClaims{"user_id": 7}),
			http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code, w.Body.String())
			if tt.wantCode == http.StatusOK {
				assert.JSONEq(t, `{"id": 7}`, w.Body.String())
			}
		})
	}
}
