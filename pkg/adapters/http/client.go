package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client posts form-encoded parameter sets, the protocol both remote USSD
// endpoints and the SMS delivery endpoint speak. It satisfies
// ports.RemoteSwitch.
type Client struct {
	hc *http.Client
}

// NewClient builds a client with the given per-call timeout. A zero timeout
// means no limit; callers should bound calls with the context instead.
func NewClient(timeout time.Duration) *Client {
	return &Client{hc: &http.Client{Timeout: timeout}}
}

// Post form-encodes params, POSTs them to endpoint and returns the raw
// response body.
func (c *Client) Post(ctx context.Context, params map[string]string, endpoint string) ([]byte, error) {
	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", endpoint, err)
	}
	return body, nil
}
