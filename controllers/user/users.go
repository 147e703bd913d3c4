package userControllers

import (
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"

	"github.com/shoporia/ecommerce-api/middleware"
	"github.com/shoporia/ecommerce-api/store"
)

type UpdateUserInput struct {
	Name     *string `json:"name"`
	About    *string `json:"about"`
	Password *string `json:"password"`
}

// GET /user/:userId
func Read() gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := middleware.Profile(c)
		if profile == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User profile not found"})
			return
		}
		profile.Sanitize()
		c.JSON(http.StatusOK, profile)
	}
}

// PUT /user/:userId - partial update; only fields present in the request are
// applied.
func Update(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := middleware.Profile(c)
		if profile == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User profile not found"})
			return
		}

		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
				return
			}
			profile.Name = name
		}
		if input.About != nil {
			profile.About = *input.About
		}
		if input.Password != nil {
			if msg := validatePassword(*input.Password); msg != "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": msg})
				return
			}
			profile.SetPassword(*input.Password)
		}

		if err := st.Users().Update(c.Request.Context(), profile); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You are not authorized to perform this action"})
			return
		}

		profile.Sanitize()
		c.JSON(http.StatusOK, profile)
	}
}

// GET /orders/by/user/:userId
func PurchaseHistory(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := middleware.Profile(c)
		if profile == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User profile not found"})
			return
		}

		orders, err := st.Orders().ListByUser(c.Request.Context(), profile.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func validatePassword(password string) string {
	if len(password) < 6 {
		return "Password must contain at least 6 characters"
	}
	for _, r := range password {
		if unicode.IsDigit(r) {
			return ""
		}
	}
	return "Password must contain a number"
}
