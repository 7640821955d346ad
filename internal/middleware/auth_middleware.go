package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sparkbytes/backend/config"
	"github.com/sparkbytes/backend/internal/helpers"
)

func AuthConfigMiddleware(authCfg *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("auth_config", authCfg)
		c.Next()
	}
}

func GetAuthConfig(c *gin.Context) *config.AuthConfig {
	cfg, exists := c.Get("auth_config")
	if !exists {
		return nil
	}
	return cfg.(*config.AuthConfig)
}

// JWTAuthMiddleware accepts the bearer token from the Authorization header,
// falling back to the "token" cookie for browser clients. Identity for
// mutation paths comes only from here, never from request bodies.
func JWTAuthMiddleware(authCfg *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Missing authorization token.")
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(authCfg.Secret), nil
		})
		if err != nil || !token.Valid {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid token claims.")
			c.Abort()
			return
		}

		rawID, ok := claims["user_id"].(string)
		if !ok {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid token claims.")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(rawID)
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid token claims.")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		if role, ok := claims["role"].(string); ok {
			c.Set("role", role)
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	cookie, err := c.Cookie("token")
	if err != nil {
		return ""
	}
	return cookie
}
