package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sreedhargoud/camrental-backend/pkg/config"
	"github.com/sreedhargoud/camrental-backend/pkg/db/models"
	apperrors "github.com/sreedhargoud/camrental-backend/pkg/errors"
	"github.com/sreedhargoud/camrental-backend/pkg/logger"
)

// WhatsAppSender delivers booking confirmations through the WhatsApp
// Cloud API. It satisfies the booking finalizer's Notifier.
type WhatsAppSender struct {
	cfg    config.WhatsAppConfig
	client *http.Client
	logg   *logger.Logger
}

// NewWhatsAppSender builds the sender.
func NewWhatsAppSender(cfg config.WhatsAppConfig, logg *logger.Logger) *WhatsAppSender {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WhatsAppSender{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logg:   logg,
	}
}

type whatsAppMessage struct {
	MessagingProduct string           `json:"messaging_product"`
	To               string           `json:"to"`
	Type             string           `json:"type"`
	Text             whatsAppTextBody `json:"text"`
}

type whatsAppTextBody struct {
	Body string `json:"body"`
}

// OrderConfirmed sends the confirmation text for a finalized order.
func (s *WhatsAppSender) OrderConfirmed(ctx context.Context, order *models.Order) error {
	if !s.cfg.Enabled() {
		s.logg.Info(ctx, "whatsapp disabled, skipping confirmation message")
		return nil
	}

	to, err := NormalizePhone(order.PhoneNumber)
	if err != nil {
		return err
	}
	return s.sendText(ctx, to, confirmationBody(order))
}

func (s *WhatsAppSender) sendText(ctx context.Context, to, body string) error {
	payload, err := json.Marshal(whatsAppMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             whatsAppTextBody{Body: body},
	})
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "encoding whatsapp message")
	}

	url := fmt.Sprintf("%s/%s/messages", s.cfg.BaseURL, s.cfg.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "building whatsapp request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeDependency, err, "calling whatsapp api")
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.New(apperrors.CodeDependency,
			fmt.Sprintf("whatsapp api returned status %d", resp.StatusCode))
	}
	return nil
}

func confirmationBody(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s, your camera rental is confirmed!\n\n", order.UserName)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s (%s) %s", item.Name, item.RentalType, item.StartDate.Format("02 Jan 2006"))
		if !item.EndDate.Equal(item.StartDate) {
			fmt.Fprintf(&b, " to %s", item.EndDate.Format("02 Jan 2006"))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nTotal paid: Rs. %d\nOrder ID: %s", order.Total, order.ID)
	return b.String()
}

// NormalizePhone strips formatting and applies the Indian country code
// to bare 10-digit numbers.
func NormalizePhone(phone string) (string, error) {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	normalized := digits.String()
	switch {
	case len(normalized) == 10:
		return "91" + normalized, nil
	case len(normalized) == 12 && strings.HasPrefix(normalized, "91"):
		return normalized, nil
	}
	return "", apperrors.New(apperrors.CodeValidation,
		fmt.Sprintf("phone number %q is not a valid Indian number", phone))
}
