package middleware

import (
	"net/http"
	"strings"

	intconfig "coachingfees/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const adminEmailKey = "admin_email"

// RequireAdmin guards dashboard routes: a valid HS256 bearer token whose
// email claim is in the administrator allow-list. Token problems are 401;
// a valid token outside the allow-list is 403.
func RequireAdmin(env intconfig.Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if !strings.HasPrefix(authz, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		token, err := jwt.Parse(strings.TrimPrefix(authz, "Bearer "), func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(env.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		email, _ := claims["email"].(string)
		if !env.IsAdmin(email) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not an administrator"})
			return
		}

		c.Set(adminEmailKey, email)
		c.Next()
	}
}

// GetAdminEmail returns the authenticated admin email, when set.
func GetAdminEmail(c *gin.Context) string {
	if v, ok := c.Get(adminEmailKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
