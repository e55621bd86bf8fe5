package payments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sreedhargoud/camrental-backend/pkg/config"
	apperrors "github.com/sreedhargoud/camrental-backend/pkg/errors"
	"github.com/sreedhargoud/camrental-backend/pkg/logger"
)

// GatewayOrder is Razorpay's order handle, created before the client
// opens the checkout widget.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Gateway creates orders on and verifies callbacks from Razorpay.
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, receipt string) (*GatewayOrder, error)
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) error
}

type razorpayGateway struct {
	cfg    config.RazorpayConfig
	client *http.Client
	logg   *logger.Logger
}

// NewRazorpayGateway builds the Razorpay client.
func NewRazorpayGateway(cfg config.RazorpayConfig, logg *logger.Logger) Gateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &razorpayGateway{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logg:   logg,
	}
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// CreateOrder registers an order with Razorpay. The amount comes in
// rupees and goes over the wire in paise.
func (g *razorpayGateway) CreateOrder(ctx context.Context, amount int64, receipt string) (*GatewayOrder, error) {
	if amount <= 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "amount must be positive")
	}

	payload, err := json.Marshal(createOrderRequest{
		Amount:   amount * 100,
		Currency: "INR",
		Receipt:  receipt,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "encoding gateway order")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+"/v1/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "building gateway request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.cfg.KeyID, g.cfg.KeySecret)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "calling payment gateway")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "reading gateway response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.New(apperrors.CodeDependency,
			fmt.Sprintf("payment gateway returned status %d", resp.StatusCode))
	}

	var order GatewayOrder
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "decoding gateway response")
	}
	return &order, nil
}

// VerifySignature checks the callback signature: HMAC-SHA256 over
// "order_id|payment_id" keyed with the key secret, hex encoded. The
// comparison is constant-time.
func (g *razorpayGateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) error {
	if gatewayOrderID == "" || gatewayPaymentID == "" || signature == "" {
		return apperrors.New(apperrors.CodeValidation, "order id, payment id and signature are required")
	}

	mac := hmac.New(sha256.New, []byte(g.cfg.KeySecret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return apperrors.New(apperrors.CodeUnauthorized, "payment signature mismatch")
	}
	return nil
}
