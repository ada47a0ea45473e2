package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// SMSGateway posts messages to an HTTP SMS provider. The provider contract is
// a JSON body with "to" and "message"; 2xx means accepted.
type SMSGateway struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

type SMSGatewayArgs struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func NewSMSGateway(args SMSGatewayArgs) *SMSGateway {
	timeout := args.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &SMSGateway{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: args.BaseURL,
		apiKey:  args.APIKey,
	}
}

func (g *SMSGateway) SendSMSCode(ctx context.Context, phone, code string) error {
	payload, err := json.Marshal(map[string]string{
		"to":      phone,
		"message": fmt.Sprintf("Your verification code is %s", code),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	res, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send sms: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", res.StatusCode)
	}

	return nil
}
