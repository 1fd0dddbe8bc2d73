// Package notify pushes daily report summaries to an operator-configured
// webhook endpoint.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dudhwala/backend/internal/config"
)

// Client exposes the notification operations used by the application.
type Client interface {
	SendReport(ctx context.Context, req ReportMessage) error
}

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
	webhookURL string
}

// NewClient builds a webhook notification client from configuration values.
func NewClient(cfg config.NotifyConfig) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	if cfg.AuthToken != "" {
		restyClient.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.AuthToken))
	}

	return &WebhookClient{
		httpClient: restyClient,
		webhookURL: cfg.WebhookURL,
	}
}

// ReportMessage is the payload posted for one store's daily report.
type ReportMessage struct {
	StoreID   string    `json:"storeId"`
	StoreName string    `json:"storeName"`
	Date      time.Time `json:"date"`
	Text      string    `json:"text"`
}

// apiError represents an error payload returned by the webhook endpoint.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SendReport posts the report message to the configured webhook.
func (c *WebhookClient) SendReport(ctx context.Context, req ReportMessage) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetError(apiErr).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf("send report webhook: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Error
		}
		return fmt.Errorf("report webhook error: status=%d, message=%s", resp.StatusCode(), message)
	}

	return nil
}
