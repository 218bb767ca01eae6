package httpclient

import "context"

// Client abstracts JSON-over-HTTP calls so callers can inject mocks or
// different transports.
type Client interface {
	// PostJSON serializes body, POSTs it to url, and decodes the 2xx
	// response body into out. Network failures, non-2xx statuses,
	// timeouts, and undecodable bodies all surface as a plain error.
	PostJSON(ctx context.Context, url string, body, out any) error
	// Close releases the underlying connection pool. Safe to call more
	// than once; the client is unusable afterwards.
	Close() error
}
