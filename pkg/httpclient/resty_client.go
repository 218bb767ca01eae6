package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout bounds a full request/response exchange.
const DefaultTimeout = 60 * time.Second

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client    *resty.Client
	closeOnce sync.Once
	closed    atomic.Bool
}

// NewRestyClient creates a new RestyClient with the specified timeout.
// A non-positive timeout falls back to DefaultTimeout.
func NewRestyClient(timeout time.Duration) *RestyClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := resty.New()
	c.SetTimeout(timeout)
	c.SetHeader("Accept", "application/json")
	return &RestyClient{client: c}
}

// PostJSON performs an HTTP POST with a JSON body and decodes the JSON
// response into out.
func (r *RestyClient) PostJSON(ctx context.Context, url string, body, out any) error {
	if r.closed.Load() {
		return fmt.Errorf("http client is closed")
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(url)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	if resp.IsError() {
		snippet := readBodySnippet(resp.Body())
		return fmt.Errorf("http response status %d: %s", resp.StatusCode(), snippet)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// Close tears down the idle connection pool. Idempotent.
func (r *RestyClient) Close() error {
	r.closeOnce.Do(func() {
		r.closed.Store(true)
		r.client.GetClient().CloseIdleConnections()
	})
	return nil
}

// readBodySnippet trims a response body for inclusion in error messages.
func readBodySnippet(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}
