package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/inventory-api/internal/config"
	"github.com/BruksfildServices01/inventory-api/internal/httperr"
)

const ContextUsername = "username"

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_authorization_header", "Authorization header is required.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid_authorization_header", "Authorization header must be 'Bearer <token>'.")
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			// Expired and malformed tokens get the same generic answer.
			abortUnauthorized(c, "invalid_token", "Token is invalid or expired.")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid_token_claims", "Token claims are malformed.")
			return
		}

		username, ok := claims["sub"].(string)
		if !ok || username == "" {
			abortUnauthorized(c, "invalid_token_payload", "Token subject is missing.")
			return
		}

		c.Set(ContextUsername, username)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	httperr.Unauthorized(c, code, message)
	c.Abort()
}
