package orderControllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shoporia/ecommerce-api/middleware"
	"github.com/shoporia/ecommerce-api/models"
	"github.com/shoporia/ecommerce-api/store"
)

type orderLine struct {
	ProductID string  `json:"_id" binding:"required"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Count     int     `json:"count" binding:"required"`
}

type orderPayload struct {
	Products      []orderLine `json:"products" binding:"required"`
	TransactionID string      `json:"transaction_id"`
	Amount        float64     `json:"amount"`
	Address       string      `json:"address"`
}

type createOrderRequest struct {
	Order orderPayload `json:"order" binding:"required"`
}

// PlaceOrder runs the whole checkout as one storage transaction: purchase
// history append, per-line stock decrement, then the order insert. Any
// failing step rolls the whole unit back, so inventory can never be
// decremented without a corresponding order.
func PlaceOrder(ctx context.Context, st store.Store, buyer *models.User, payload orderPayload) (*models.Order, error) {
	order := &models.Order{
		ID:            uuid.NewString(),
		TransactionID: payload.TransactionID,
		Amount:        payload.Amount,
		Address:       payload.Address,
		Status:        models.OrderStatusNotProcessed,
		UserID:        buyer.ID,
	}

	history := make([]models.PurchaseRecord, 0, len(payload.Products))
	for _, line := range payload.Products {
		order.Products = append(order.Products, models.CartItem{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Count:     line.Count,
		})
		history = append(history, models.PurchaseRecord{
			ID:            uuid.NewString(),
			ProductID:     line.ProductID,
			Name:          line.Name,
			Quantity:      line.Count,
			TransactionID: payload.TransactionID,
			Amount:        payload.Amount,
		})
	}

	err := st.Transaction(ctx, func(ctx context.Context, tx store.Store) error {
		if err := tx.Users().AppendHistory(ctx, buyer.ID, history); err != nil {
			return err
		}
		for _, line := range payload.Products {
			if err := tx.Products().DecrementStock(ctx, line.ProductID, line.Count); err != nil {
				return err
			}
		}
		return tx.Orders().Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// POST /order/create/:userId
func Create(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyer := middleware.Profile(c)
		if buyer == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User profile not found"})
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil || len(req.Order.Products) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order payload"})
			return
		}
		for _, line := range req.Order.Products {
			if line.Count <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order payload"})
				return
			}
		}

		order, err := PlaceOrder(c.Request.Context(), st, buyer, req.Order)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrInsufficientStock):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Could not update product"})
			case errors.Is(err, store.ErrNotFound):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product not found"})
			default:
				c.JSON(http.StatusBadRequest, gin.H{"error": "Could not create order"})
			}
			return
		}

		broadcastOrderEvent("created", *order)
		c.JSON(http.StatusOK, order)
	}
}

// GET /order/list/:userId - admin: all orders, newest first.
func ListOrders(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := st.Orders().List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /order/status-values/:userId
func GetStatusValues() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.OrderStatusValues())
	}
}

type updateStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// PUT /order/:orderId/status/:userId
func UpdateOrderStatus(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
			return
		}
		if !req.Status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}

		order, err := st.Orders().UpdateStatus(c.Request.Context(), c.Param("orderId"), req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order not found"})
			return
		}

		broadcastOrderEvent("status", *order)
		c.JSON(http.StatusOK, order)
	}
}
