package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"patient-intake/internal/platform/ratelimit"
)

// Client initiates best-effort voice/text delivery of a short message.
// Delivery retries are the provider's concern, not ours.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *ratelimit.Limiter
}

func NewClient(baseURL string, minInterval time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: ratelimit.New(minInterval),
	}
}

type callRequest struct {
	Destination string `json:"destination"`
	Message     string `json:"message"`
}

// Call asks the provider to deliver the message to the destination.
func (c *Client) Call(ctx context.Context, destination, message string) error {
	if c.baseURL == "" {
		return fmt.Errorf("notification service not configured")
	}

	c.limiter.Wait()

	jsonBody, err := json.Marshal(callRequest{Destination: destination, Message: message})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/calls", bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var bodyBytes []byte
		if resp.Body != nil {
			bodyBytes, _ = io.ReadAll(resp.Body)
		}
		return fmt.Errorf("notification api returned status: %s, body: %s", resp.Status, string(bodyBytes))
	}

	return nil
}
