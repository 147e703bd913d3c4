package authControllers

import (
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/shoporia/ecommerce-api/config"
	"github.com/shoporia/ecommerce-api/models"
	"github.com/shoporia/ecommerce-api/store"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	About    string `json:"about"`
}

type SigninRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// IssueToken signs a 24h HS256 token carrying the user id as subject.
func IssueToken(cfg *config.Config, userID string) (string, error) {
	claims := jwt.MapClaims{
		"_id": userID,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// validateSignup enforces the signup rules: name required, email 4-32 chars
// containing @, password at least 6 chars with a digit.
func validateSignup(req SignupRequest) string {
	if strings.TrimSpace(req.Name) == "" {
		return "Name is required"
	}
	if !strings.Contains(req.Email, "@") {
		return "Email must contain @"
	}
	if len(req.Email) < 4 {
		return "Email must be at least 4 characters"
	}
	if len(req.Email) > 32 {
		return "Email must not exceed 32 characters"
	}
	if len(req.Password) < 6 {
		return "Password must contain at least 6 characters"
	}
	hasDigit := false
	for _, r := range req.Password {
		if unicode.IsDigit(r) {
			hasDigit = true
			break
		}
	}
	if !hasDigit {
		return "Password must contain a number"
	}
	return ""
}

// POST /signup
func Signup(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}
		if msg := validateSignup(req); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}

		user := models.User{
			ID:    uuid.NewString(),
			Name:  strings.TrimSpace(req.Name),
			Email: strings.TrimSpace(req.Email),
			About: req.About,
			Role:  models.RoleUser,
		}
		user.SetPassword(req.Password)

		if err := st.Users().Create(c.Request.Context(), &user); err != nil {
			if errors.Is(err, store.ErrConflict) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not create user"})
			return
		}

		user.Sanitize()
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// POST /signin
func Signin(st store.Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SigninRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
			return
		}

		user, err := st.Users().GetByEmail(c.Request.Context(), req.Email)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User with that email does not exist. Please signup"})
			return
		}

		if !user.Authenticate(req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email and password don't match"})
			return
		}

		token, err := IssueToken(cfg, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		// Persist the token as "t" so browser clients stay signed in.
		c.SetCookie("t", token, int((24 * time.Hour).Seconds()), "/", "", false, true)

		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user": gin.H{
				"_id":   user.ID,
				"email": user.Email,
				"name":  user.Name,
				"role":  user.Role,
			},
		})
	}
}

// GET /signout
func Signout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie("t", "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"message": "Signout success"})
	}
}
