package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"inventory-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	manager := NewJWTManager("secret", zap.NewNop())

	token, expiresAt, err := manager.GenerateToken("admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), expiresAt, 5*time.Second)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, tokenIssuer, claims.Issuer)
}

func TestJWTManager_RejectsForeignSignature(t *testing.T) {
	token, _, err := NewJWTManager("other", zap.NewNop()).GenerateToken("admin")
	require.NoError(t, err)

	_, err = NewJWTManager("secret", zap.NewNop()).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_Expired(t *testing.T) {
	manager := NewJWTManager("secret", zap.NewNop())
	past := time.Now().Add(-time.Hour)
	claims := JWTClaims{
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past),
			IssuedAt:  jwt.NewNumericDate(past.Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(NewJWTManager("secret", zap.NewNop()), "admin", "admin123", zap.NewNop())

	router := gin.New()
	router.POST("/api/auth/login", handler.Login)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"admin","password":"admin123"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Bearer", resp.Type)
	assert.NotEmpty(t, resp.Token)
	assert.InDelta(t, 600, resp.ExpiresIn, 2)
}

func TestAuthHandler_LoginRejectsBadCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(NewJWTManager("secret", zap.NewNop()), "admin", "admin123", zap.NewNop())

	router := gin.New()
	router.Use(renderErrors)
	router.POST("/api/auth/login", handler.Login)

	cases := map[string]int{
		`{"username":"admin","password":"nope"}`: http.StatusUnauthorized,
		`{"username":"root","password":"admin123"}`: http.StatusUnauthorized,
		`{"username":"admin"}`:                      http.StatusBadRequest,
	}

	for body, status := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		assert.Equal(t, status, w.Code, body)
	}
}

func renderErrors(c *gin.Context) {
	c.Next()
	if len(c.Errors) == 0 {
		return
	}
	if stdErr, ok := c.Errors.Last().Err.(*errors.StandardError); ok {
		c.JSON(stdErr.HTTPStatus(), stdErr)
	}
}
