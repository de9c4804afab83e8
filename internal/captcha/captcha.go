// Package captcha verifies client-supplied CAPTCHA tokens against an
// external verification service. The service is an opaque collaborator:
// one POST, one boolean answer, no retry.
package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Verifier checks a CAPTCHA token. Implementations other than Client exist
// only in tests.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

// Client verifies tokens against an HTTP verification endpoint using the
// conventional form-encoded secret/response/remoteip request.
type Client struct {
	verifyURL  string
	secret     string
	httpClient *http.Client
}

// NewClient creates a verifier for the given endpoint and secret.
func NewClient(verifyURL, secret string) *Client {
	return &Client{
		verifyURL: verifyURL,
		secret:    secret,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify returns whether the service accepted the token. A network or
// decode failure is an error, distinct from a clean rejection; callers
// treat both as grounds to refuse the submission.
func (c *Client) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	form := url.Values{
		"secret":   {c.secret},
		"response": {token},
	}
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("building verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("calling verification service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("verification service returned status %d", resp.StatusCode)
	}

	var vr verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return false, fmt.Errorf("decoding verification response: %w", err)
	}

	return vr.Success, nil
}
