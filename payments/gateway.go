package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrSignatureMismatch is returned when a payment callback fails the
// HMAC check.
var ErrSignatureMismatch = errors.New("payment signature mismatch")

// GatewayOrder is the payment intent the gateway hands back; its ID is
// what the client-side widget is opened with.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// Gateway abstracts the external payment service so the checkout flow
// can be exercised without network access.
type Gateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (GatewayOrder, error)
	VerifySignature(gatewayOrderID, paymentID, signature string) error
}

// Client talks to a Razorpay-style gateway: basic-auth order creation
// plus HMAC-SHA256 callback verification.
type Client struct {
	http      *resty.Client
	keyID     string
	keySecret string
}

func NewClient(baseURL, keyID, keySecret string) *Client {
	return &Client{
		http:      resty.New().SetTimeout(30 * time.Second).SetBaseURL(baseURL),
		keyID:     keyID,
		keySecret: keySecret,
	}
}

func NewClientFromEnv() *Client {
	baseURL := os.Getenv("PAYMENT_GATEWAY_URL")
	if baseURL == "" {
		baseURL = "https://api.razorpay.com"
	}
	return NewClient(baseURL, os.Getenv("PAYMENT_KEY_ID"), os.Getenv("PAYMENT_KEY_SECRET"))
}

func (c *Client) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (GatewayOrder, error) {
	if c.keyID == "" || c.keySecret == "" {
		return GatewayOrder{}, fmt.Errorf("payment gateway credentials are not set")
	}

	body := map[string]any{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBasicAuth(c.keyID, c.keySecret).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(body).
		Post("/v1/orders")

	if err != nil {
		return GatewayOrder{}, err
	}

	if resp.StatusCode() != 200 {
		return GatewayOrder{}, fmt.Errorf("gateway order request failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var order GatewayOrder
	if err := json.Unmarshal(resp.Body(), &order); err != nil {
		return GatewayOrder{}, fmt.Errorf("failed to parse gateway response: %w", err)
	}

	if order.ID == "" {
		return GatewayOrder{}, fmt.Errorf("order id not found in gateway response")
	}

	return order, nil
}

// VerifySignature checks the widget callback: the gateway signs
// "<orderID>|<paymentID>" with the key secret.
func (c *Client) VerifySignature(gatewayOrderID, paymentID, signature string) error {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureMismatch
	}
	return nil
}

// ToPaise converts whole-rupee amounts to the gateway's minor unit.
func ToPaise(rupees float64) int64 {
	return int64(math.Round(rupees * 100))
}
