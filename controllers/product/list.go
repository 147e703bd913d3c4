package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shoporia/ecommerce-api/store"
)

func limitQuery(c *gin.Context, fallback int) int {
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// GET /products?sortBy=&order=&limit= - photo excluded, category joined.
func List(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts := store.ListOptions{
			SortBy: c.DefaultQuery("sortBy", "_id"),
			Order:  c.DefaultQuery("order", "asc"),
			Limit:  limitQuery(c, 6),
		}
		products, err := st.Products().List(c.Request.Context(), opts)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Products not found"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /products/related/:productId?limit= - same category, excluding the
// product itself.
func ListRelated(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := st.Products().ListRelated(
			c.Request.Context(), c.Param("productId"), limitQuery(c, 6))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Products not found"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /products/categories - ids of categories actually used by products.
func ListCategories(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ids, err := st.Products().DistinctCategoryIDs(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Products not found"})
			return
		}
		c.JSON(http.StatusOK, ids)
	}
}

// GET /products/search?search=&category= - case-insensitive name substring,
// optionally narrowed to one category ("All" means no narrowing).
func ListSearch(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		term := c.Query("search")
		if term == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No search query provided"})
			return
		}
		categoryID := c.Query("category")
		if categoryID == "All" {
			categoryID = ""
		}

		products, err := st.Products().SearchByName(c.Request.Context(), term, categoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Products not found"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

type searchFilters struct {
	Category []string  `json:"category"`
	Price    []float64 `json:"price"`
}

type searchBody struct {
	Order   string        `json:"order"`
	SortBy  string        `json:"sortBy"`
	Limit   int           `json:"limit"`
	Skip    int           `json:"skip"`
	Filters searchFilters `json:"filters"`
}

// POST /products/by/search - shop-page filter query. The price filter is an
// inclusive [min,max] range; category is set membership. The returned size is
// the total match count, independent of skip/limit.
func ListBySearch(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := searchBody{Order: "desc", SortBy: "_id", Limit: 100}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		params := store.SearchParams{
			CategoryIDs: body.Filters.Category,
			SortBy:      body.SortBy,
			Order:       body.Order,
			Skip:        body.Skip,
			Limit:       body.Limit,
		}
		if len(body.Filters.Price) == 2 {
			min, max := body.Filters.Price[0], body.Filters.Price[1]
			params.PriceMin = &min
			params.PriceMax = &max
		}

		size, products, err := st.Products().Search(c.Request.Context(), params)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Products not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"size": size, "data": products})
	}
}
