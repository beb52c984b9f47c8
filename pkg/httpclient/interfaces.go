package httpclient

import "context"

// Response is the part of an HTTP response the oracle client reads.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client performs GET requests. Tests substitute fakes; production uses the
// resty adapter.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
