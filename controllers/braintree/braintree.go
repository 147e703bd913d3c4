package braintreeControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shoporia/ecommerce-api/config"
)

// Gateway talks to the external payment processor. It performs no local
// bookkeeping; checkout and payment are independent calls from the client.
type Gateway struct {
	cfg    config.BraintreeConfig
	client *http.Client
}

func NewGateway(cfg *config.Config) *Gateway {
	return &Gateway{
		cfg:    cfg.Braintree,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// post sends an authenticated JSON request and decodes the processor's
// response. Processor errors are surfaced verbatim.
func (g *Gateway) post(ctx context.Context, path string, payload interface{}) (map[string]interface{}, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.APIURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(g.cfg.PublicKey, g.cfg.PrivateKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("payment gateway error (%d): %s", resp.StatusCode, string(raw))
	}

	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %w", err)
	}
	return out, nil
}

// GenerateToken requests a client-side payment token.
func (g *Gateway) GenerateToken(ctx context.Context) (map[string]interface{}, error) {
	return g.post(ctx, "/client_token", map[string]interface{}{
		"merchant_id": g.cfg.MerchantID,
	})
}

// Sale submits a sale with immediate settlement.
func (g *Gateway) Sale(ctx context.Context, nonce string, amount float64) (map[string]interface{}, error) {
	return g.post(ctx, "/transactions", map[string]interface{}{
		"merchant_id":          g.cfg.MerchantID,
		"amount":               amount,
		"payment_method_nonce": nonce,
		"options": map[string]interface{}{
			"submit_for_settlement": true,
		},
	})
}

// GET /braintree/getToken/:userId
func GenerateTokenHandler(g *Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := g.GenerateToken(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, token)
	}
}

type paymentRequest struct {
	PaymentMethodNonce string  `json:"paymentMethodNonce" binding:"required"`
	Amount             float64 `json:"amount" binding:"required"`
}

// POST /braintree/payment/:userId
func ProcessPaymentHandler(g *Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req paymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "paymentMethodNonce and amount are required"})
			return
		}

		result, err := g.Sale(c.Request.Context(), req.PaymentMethodNonce, req.Amount)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
