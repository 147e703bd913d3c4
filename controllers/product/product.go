package productcontroller

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shoporia/ecommerce-api/models"
	"github.com/shoporia/ecommerce-api/store"
)

// maxPhotoBytes caps uploaded product photos at 1MB.
const maxPhotoBytes = 1000000

// readPhoto loads an uploaded photo into memory, enforcing the size cap
// before any record is touched.
func readPhoto(header *multipart.FileHeader) ([]byte, string, string) {
	if header.Size > maxPhotoBytes {
		return nil, "", "Image should be less than 1mb in size"
	}
	file, err := header.Open()
	if err != nil {
		return nil, "", "Image could not be uploaded"
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil || len(data) > maxPhotoBytes {
		return nil, "", "Image could not be uploaded"
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, ""
}

// POST /product/create/:userId - multipart form create.
func Create(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		description := c.PostForm("description")
		priceStr := c.PostForm("price")
		categoryID := c.PostForm("category")
		quantityStr := c.PostForm("quantity")
		shippingStr := c.PostForm("shipping")

		if name == "" || description == "" || priceStr == "" ||
			categoryID == "" || quantityStr == "" || shippingStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
			return
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}
		quantity, err := strconv.Atoi(quantityStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
			return
		}
		shipping := shippingStr == "true" || shippingStr == "1"

		if _, err := st.Categories().GetByID(c.Request.Context(), categoryID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
			return
		}

		product := models.Product{
			ID:          uuid.NewString(),
			Name:        name,
			Description: description,
			Price:       price,
			Quantity:    quantity,
			Shipping:    shipping,
			CategoryID:  categoryID,
		}

		if header, err := c.FormFile("photo"); err == nil {
			data, contentType, msg := readPhoto(header)
			if msg != "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": msg})
				return
			}
			product.Photo = data
			product.PhotoContentType = contentType
		}

		if err := st.Products().Create(c.Request.Context(), &product); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not create product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// GET /product/:productId
func Read(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := st.Products().GetByID(c.Request.Context(), c.Param("productId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// PUT /product/:productId/:userId - multipart form partial update; only
// fields present in the request are applied.
func Update(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := st.Products().GetByID(c.Request.Context(), c.Param("productId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product not found"})
			return
		}

		if name, ok := c.GetPostForm("name"); ok {
			product.Name = name
		}
		if description, ok := c.GetPostForm("description"); ok {
			product.Description = description
		}
		if priceStr, ok := c.GetPostForm("price"); ok {
			price, err := strconv.ParseFloat(priceStr, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
				return
			}
			product.Price = price
		}
		if quantityStr, ok := c.GetPostForm("quantity"); ok {
			quantity, err := strconv.Atoi(quantityStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
				return
			}
			product.Quantity = quantity
		}
		if shippingStr, ok := c.GetPostForm("shipping"); ok {
			product.Shipping = shippingStr == "true" || shippingStr == "1"
		}
		if categoryID, ok := c.GetPostForm("category"); ok {
			if _, err := st.Categories().GetByID(c.Request.Context(), categoryID); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
			product.CategoryID = categoryID
		}

		if header, err := c.FormFile("photo"); err == nil {
			data, contentType, msg := readPhoto(header)
			if msg != "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": msg})
				return
			}
			product.Photo = data
			product.PhotoContentType = contentType
		}

		if err := st.Products().Update(c.Request.Context(), product); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not update product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// DELETE /product/:productId/:userId
func Remove(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := st.Products().Delete(c.Request.Context(), c.Param("productId")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}

// GET /product/photo/:productId - streams the stored binary with its content
// type.
func Photo(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := st.Products().GetByID(c.Request.Context(), c.Param("productId"))
		if err != nil || !product.HasPhoto() {
			c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
			return
		}
		contentType := product.PhotoContentType
		if contentType == "" {
			contentType = http.DetectContentType(product.Photo)
		}
		c.Data(http.StatusOK, contentType, product.Photo)
	}
}
