package categoryControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shoporia/ecommerce-api/models"
	"github.com/shoporia/ecommerce-api/store"
)

type categoryInput struct {
	Name string `json:"name" binding:"required"`
}

// normalizeName applies the trim-on-save rule and validates length.
func normalizeName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "Name is required"
	}
	if len(name) > 32 {
		return "", "Name must not exceed 32 characters"
	}
	return name, ""
}

// POST /category/create/:userId
func Create(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input categoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}
		name, msg := normalizeName(input.Name)
		if msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}

		category := models.Category{ID: uuid.NewString(), Name: name}
		if err := st.Categories().Create(c.Request.Context(), &category); err != nil {
			if errors.Is(err, store.ErrConflict) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Name already exists"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not create category"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": category})
	}
}

// GET /category/:categoryId
func Read(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		category, err := st.Categories().GetByID(c.Request.Context(), c.Param("categoryId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// PUT /category/:categoryId/:userId
func Update(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		category, err := st.Categories().GetByID(c.Request.Context(), c.Param("categoryId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
			return
		}

		var input categoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}
		name, msg := normalizeName(input.Name)
		if msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}

		category.Name = name
		if err := st.Categories().Update(c.Request.Context(), category); err != nil {
			if errors.Is(err, store.ErrConflict) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Name already exists"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not update category"})
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// DELETE /category/:categoryId/:userId
func Remove(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := st.Categories().Delete(c.Request.Context(), c.Param("categoryId")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
	}
}

// GET /categories
func List(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := st.Categories().List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}
