package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sreedhargoud/camrental-backend/pkg/config"
	apperrors "github.com/sreedhargoud/camrental-backend/pkg/errors"
	"github.com/sreedhargoud/camrental-backend/pkg/logger"
)

func testGateway(cfg config.RazorpayConfig) Gateway {
	return NewRazorpayGateway(cfg, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
}

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	gw := testGateway(config.RazorpayConfig{KeySecret: "secret"})

	valid := sign("secret", "order_abc", "pay_xyz")
	require.NoError(t, gw.VerifySignature("order_abc", "pay_xyz", valid))

	err := gw.VerifySignature("order_abc", "pay_xyz", "deadbeef")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized))

	// Signature from another key must not validate.
	other := sign("other-secret", "order_abc", "pay_xyz")
	err = gw.VerifySignature("order_abc", "pay_xyz", other)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized))

	err = gw.VerifySignature("", "pay_xyz", valid)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}

func TestCreateOrderSendsPaise(t *testing.T) {
	var captured createOrderRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key-id", user)
		assert.Equal(t, "key-secret", pass)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(GatewayOrder{
			ID:       "order_abc",
			Amount:   captured.Amount,
			Currency: captured.Currency,
			Receipt:  captured.Receipt,
			Status:   "created",
		})
	}))
	defer server.Close()

	gw := testGateway(config.RazorpayConfig{
		KeyID:     "key-id",
		KeySecret: "key-secret",
		BaseURL:   server.URL,
		Timeout:   time.Second,
	})

	order, err := gw.CreateOrder(context.Background(), 2640, "order-1")
	require.NoError(t, err)
	assert.Equal(t, "order_abc", order.ID)
	assert.Equal(t, int64(264000), captured.Amount)
	assert.Equal(t, "INR", captured.Currency)
	assert.Equal(t, "order-1", captured.Receipt)
}

func TestCreateOrderGatewayErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bad auth"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	gw := testGateway(config.RazorpayConfig{BaseURL: server.URL, Timeout: time.Second})

	_, err := gw.CreateOrder(context.Background(), 100, "order-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeDependency))

	_, err = gw.CreateOrder(context.Background(), 0, "order-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}
