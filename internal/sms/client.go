// Package sms talks to the device-backed SMS gateway over HTTP.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 20 * time.Second

// Client issues one POST per message with bearer-token auth. The response
// body is opaque and returned verbatim so the dispatcher can persist it as
// the audit trail.
type Client struct {
	BaseURL  string
	APIKey   string
	DeviceID string

	// HTTPClient overrides the default client; its timeout bounds the whole
	// send attempt.
	HTTPClient *http.Client
}

type sendRequest struct {
	DeviceID string `json:"device_id"`
	Phone    string `json:"phone"`
	Message  string `json:"message"`
}

// Send delivers one message to one canonical number. Any transport error or
// non-2xx status is a failure for this recipient only; the raw body (when
// readable) is still returned for the audit log.
func (c *Client) Send(ctx context.Context, phone, message string) (string, error) {
	body, err := json.Marshal(sendRequest{DeviceID: c.DeviceID, Phone: phone, Message: message})
	if err != nil {
		return "", fmt.Errorf("encode sms request: %w", err)
	}

	url := strings.TrimRight(c.BaseURL, "/") + "/sms/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create sms request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("sms gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read sms gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return string(raw), fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return string(raw), nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: defaultTimeout}
}
