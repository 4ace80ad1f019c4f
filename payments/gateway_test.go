package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "key_test", user)
		require.Equal(t, "secret_test", pass)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(104000), body["amount"])
		assert.Equal(t, "INR", body["currency"])

		json.NewEncoder(w).Encode(map[string]any{
			"id":       "order_abc123",
			"amount":   body["amount"],
			"currency": body["currency"],
			"receipt":  body["receipt"],
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key_test", "secret_test")
	order, err := client.CreateOrder(context.Background(), 104000, "INR", "rcpt-1")
	require.NoError(t, err)
	assert.Equal(t, "order_abc123", order.ID)
	assert.Equal(t, int64(104000), order.Amount)
	assert.Equal(t, "rcpt-1", order.Receipt)
}

func TestCreateOrderGatewayFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bad request"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key_test", "secret_test")
	_, err := client.CreateOrder(context.Background(), 100, "INR", "rcpt-2")
	assert.Error(t, err)
}

func TestCreateOrderMissingCredentials(t *testing.T) {
	client := NewClient("http://localhost:0", "", "")
	_, err := client.CreateOrder(context.Background(), 100, "INR", "rcpt-3")
	assert.Error(t, err)
}

func TestVerifySignature(t *testing.T) {
	client := NewClient("http://localhost:0", "key_test", "secret_test")

	good := sign("secret_test", "order_abc", "pay_xyz")
	assert.NoError(t, client.VerifySignature("order_abc", "pay_xyz", good))

	assert.ErrorIs(t, client.VerifySignature("order_abc", "pay_xyz", "forged"), ErrSignatureMismatch)

	wrongSecret := sign("other_secret", "order_abc", "pay_xyz")
	assert.ErrorIs(t, client.VerifySignature("order_abc", "pay_xyz", wrongSecret), ErrSignatureMismatch)

	otherPayment := sign("secret_test", "order_abc", "pay_other")
	assert.ErrorIs(t, client.VerifySignature("order_abc", "pay_xyz", otherPayment), ErrSignatureMismatch)
}

func TestToPaise(t *testing.T) {
	assert.Equal(t, int64(104000), ToPaise(1040))
	assert.Equal(t, int64(0), ToPaise(0))
	assert.Equal(t, int64(99950), ToPaise(999.5))
}
