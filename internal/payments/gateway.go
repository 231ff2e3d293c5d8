package payments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Webhook event types the gateway delivers.
const (
	EventChargeSuccess   = "charge.success"
	EventChargeFailed    = "charge.failed"
	EventRefundProcessed = "refund.processed"
)

// SignatureHeader carries the HMAC-SHA512 of the raw webhook body.
const SignatureHeader = "X-Gateway-Signature"

// WebhookEvent is the parsed webhook payload.
type WebhookEvent struct {
	Event string           `json:"event"`
	Data  WebhookEventData `json:"data"`
}

type WebhookEventData struct {
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
}

// Settings is the merchant configuration the gateway exposes.
type Settings struct {
	MerchantName       string   `json:"merchant_name"`
	SupportedChannels  []string `json:"supported_channels"`
	DefaultCurrency    string   `json:"default_currency"`
	WebhooksConfigured bool     `json:"webhooks_configured"`
}

// Gateway is the client for the external payment provider.
type Gateway struct {
	secretKey     string
	webhookSecret string
	baseURL       string
	httpClient    *http.Client
}

type Config struct {
	SecretKey     string
	WebhookSecret string
	BaseURL       string
}

func NewGateway(cfg Config) *Gateway {
	return &Gateway{
		secretKey:     cfg.SecretKey,
		webhookSecret: cfg.WebhookSecret,
		baseURL:       cfg.BaseURL,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
	}
}

// VerifyWebhookSignature checks the signature header against the raw
// body. Callers must reject the request before parsing when this fails.
func (g *Gateway) VerifyWebhookSignature(body []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(g.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// initTransactionResponse mirrors the gateway's initialize reply.
type initTransactionResponse struct {
	Status bool `json:"status"`
	Data   struct {
		AuthorizationURL string `json:"authorization_url"`
		Reference        string `json:"reference"`
	} `json:"data"`
	Message string `json:"message"`
}

// InitTransaction registers a checkout with the gateway and returns the
// redirect URL the client completes payment at.
func (g *Gateway) InitTransaction(ctx context.Context, reference, email string, amount int64, currency string) (string, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"reference": reference,
		"email":     email,
		"amount":    amount,
		"currency":  currency,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/transaction/initialize", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var out initTransactionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode gateway response: %w", err)
	}
	if !out.Status {
		return "", fmt.Errorf("gateway rejected transaction: %s", out.Message)
	}

	return out.Data.AuthorizationURL, nil
}

// FetchSettings reads the merchant settings once.
func (g *Gateway) FetchSettings(ctx context.Context) (*Settings, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/settings", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("settings request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("settings returned status %d", resp.StatusCode)
	}

	var settings Settings
	if err := json.NewDecoder(resp.Body).Decode(&settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return &settings, nil
}

// Settings-poll backoff: the delay grows linearly per attempt up to a
// fixed ceiling. This is the only retry loop in the system.
const (
	settingsPollStep    = 2 * time.Second
	settingsPollCeiling = 30 * time.Second
)

// WaitForSettings polls the settings endpoint until it succeeds or the
// context is cancelled.
func (g *Gateway) WaitForSettings(ctx context.Context) (*Settings, error) {
	for attempt := 1; ; attempt++ {
		settings, err := g.FetchSettings(ctx)
		if err == nil {
			return settings, nil
		}

		delay := time.Duration(attempt) * settingsPollStep
		if delay > settingsPollCeiling {
			delay = settingsPollCeiling
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("gave up waiting for gateway settings: %w", err)
		case <-time.After(delay):
		}
	}
}
