package middleware

import (
	"strings"

	"inventory-service/internal/auth"
	"inventory-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UsernameContextKey holds the token subject of an authenticated request
const UsernameContextKey = "username"

// AuthMiddleware validates bearer JWT tokens
func AuthMiddleware(jwtManager *auth.JWTManager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Missing authorization header",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			c.Error(errors.NewUnauthorized("missing authorization header", "Header: Authorization"))
			c.Abort()
			return
		}

		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		if !ok || scheme != "Bearer" || tokenString == "" {
			logger.Warn("Invalid authorization header format",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			c.Error(errors.NewUnauthorized("invalid authorization header format", "Expected: Bearer <token>"))
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			if err == auth.ErrExpiredToken {
				c.Error(errors.NewUnauthorized("token expired", "Token has expired, please login again"))
			} else {
				c.Error(errors.NewUnauthorized("invalid token", err.Error()))
			}
			c.Abort()
			return
		}

		c.Set(UsernameContextKey, claims.Username)

		logger.Debug("Token validated",
			zap.String("username", claims.Username),
			zap.String("path", c.Request.URL.Path),
		)

		c.Next()
	}
}
