package auth

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

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerifierExtractsUserID(t *testing.T) {
	v := NewVerifier(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"userId": 7,
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	userID, err := v.UserID(token)
	require.NoError(t, err)
	assert.EqualValues(t, 7, userID)
}

func TestVerifierRejectsBadTokens(t *testing.T) {
	v := NewVerifier(testSecret)

	cases := map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": signToken(t, "other-secret", jwt.MapClaims{"userId": 7}),
		"expired": signToken(t, testSecret, jwt.MapClaims{
			"userId": 7,
			"exp":    time.Now().Add(-time.Hour).Unix(),
		}),
		"missing userId": signToken(t, testSecret, jwt.MapClaims{"sub": "7"}),
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.UserID(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestMiddlewareSetsUserOnContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Middleware(NewVerifier(testSecret)))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": UserIDFromContext(c)})
	})

	token := signToken(t, testSecret, jwt.MapClaims{"userId": 7})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":7}`, w.Body.String())
}

func TestMiddlewareRejectsMissingOrMalformedHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Middleware(NewVerifier(testSecret)))
	r.GET("/me", func(c *gin.Context) { c.Status(http.StatusOK) })

	for name, header := range map[string]string{
		"absent":    "",
		"no scheme": "token-without-scheme",
		"empty":     "Bearer ",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
