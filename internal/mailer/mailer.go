// Package mailer dispatches transactional email through an external
// HTTP delivery API. There is no retry and no outbox: a provider failure
// is surfaced to the caller and the message is dropped.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Message is one email to dispatch.
type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	ReplyTo string `json:"reply_to,omitempty"`
}

// Mailer sends a message. Implementations other than Client exist only in
// tests.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
	Configured() bool
}

// Client posts messages to a delivery API with bearer authentication.
type Client struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a mail client. An empty apiURL or apiKey leaves the
// client unconfigured; Configured reports that state so handlers can fail
// before attempting a dispatch.
func NewClient(apiURL, apiKey string) *Client {
	return &Client{
		apiURL: apiURL,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Configured reports whether delivery credentials are present.
func (c *Client) Configured() bool {
	return c.apiURL != "" && c.apiKey != ""
}

// Send dispatches one message. Any non-2xx response is a failure.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if !c.Configured() {
		return fmt.Errorf("mail delivery is not configured")
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling delivery service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("delivery service returned status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}

	return nil
}
