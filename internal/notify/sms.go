package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"book-bazaar/internal/model"

	"github.com/rs/zerolog"
)

// smsClient talks to the SMS/WhatsApp provider's JSON API.
type smsClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewSMSClient creates a provider client for OTP and order messages.
func NewSMSClient(baseURL, apiKey string, logger zerolog.Logger) *smsClient {
	return &smsClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger.With().Str("component", "sms-client").Logger(),
	}
}

type messageRequest struct {
	To      string `json:"to"`
	Channel string `json:"channel"`
	Message string `json:"message"`
}

func (c *smsClient) send(ctx context.Context, phone, message string, method model.DeliveryMethod) error {
	payload := messageRequest{
		To:      phone,
		Channel: string(method),
		Message: message,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build message request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("channel", string(method)).Msg("message dispatch failed")
		return fmt.Errorf("message dispatch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("channel", string(method)).
			Str("response", string(respBody)).
			Msg("provider rejected message")
		return fmt.Errorf("provider rejected message: status %d", resp.StatusCode)
	}

	c.logger.Debug().Str("channel", string(method)).Msg("message dispatched")

	return nil
}

// SendOTP delivers a one-time code over the chosen channel.
func (c *smsClient) SendOTP(ctx context.Context, phone, code string, method model.DeliveryMethod) error {
	message := fmt.Sprintf("Your Book Bazaar verification code is %s. It expires in 10 minutes.", code)
	return c.send(ctx, phone, message, method)
}

// NotifyCustomer sends the order confirmation to the customer.
func (c *smsClient) NotifyCustomer(ctx context.Context, order *model.Order, items []model.OrderItem, method model.DeliveryMethod) error {
	message := fmt.Sprintf(
		"Thank you for your order #%d! %d item(s), total Rs %.2f. We will ship to %s, %s soon.",
		order.ID, len(items), order.Total, order.City, order.State,
	)
	return c.send(ctx, order.PhoneNumber, message, method)
}
