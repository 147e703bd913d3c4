package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/shoporia/ecommerce-api/config"
	"github.com/shoporia/ecommerce-api/models"
	"github.com/shoporia/ecommerce-api/store"
)

// Context keys set by the auth chain.
const (
	AuthUserIDKey = "auth_user_id"
	ProfileKey    = "profile"
)

// RequireSignin verifies the JWT from the Authorization header or the signed
// cookie "t" and stores the token subject in the context.
func RequireSignin(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")
		if tokenString == "" {
			tokenString, _ = c.Cookie("t")
		}
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid token signing method")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}
		sub, _ := claims["_id"].(string)
		if sub == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		c.Set(AuthUserIDKey, sub)
		c.Next()
	}
}

// IsAuth resolves the :userId route parameter and rejects callers whose token
// subject does not own that profile. The loaded profile is stored in the
// context for the handler.
func IsAuth(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := st.Users().GetByID(c.Request.Context(), c.Param("userId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
			c.Abort()
			return
		}

		sub := c.GetString(AuthUserIDKey)
		if sub == "" || sub != profile.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}

		c.Set(ProfileKey, profile)
		c.Next()
	}
}

// IsAdmin rejects profiles with role 0. Any nonzero role counts as elevated.
func IsAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := Profile(c)
		if profile == nil || profile.Role == models.RoleUser {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin resource! Access denied"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Profile returns the profile loaded by IsAuth, or nil.
func Profile(c *gin.Context) *models.User {
	if v, ok := c.Get(ProfileKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
