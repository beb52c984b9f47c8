package oracle

import (
	"context"
	"time"

	"github.com/samvad-hq/oracle-linker/pkg/httpclient"
)

const defaultTimeout = 15 * time.Second

// Logger defines the logging surface the client relies on.
type Logger interface {
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) DebugObj(string, string, interface{}) {}
func (noopLogger) WarnObj(string, string, interface{})  {}

// Client performs oracle lookups over an httpclient.Client.
type Client struct {
	http    httpclient.Client
	builder RequestBuilder
	log     Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the transport used for fetches.
func WithHTTPClient(c httpclient.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(base string) Option {
	return func(cl *Client) { cl.builder.BaseURL = base }
}

// WithLogger sets the client logger.
func WithLogger(log Logger) Option {
	return func(cl *Client) {
		if log != nil {
			cl.log = log
		}
	}
}

// NewClient builds a Client. Without WithHTTPClient it uses a resty client
// with a 15s timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{log: noopLogger{}}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(defaultTimeout)
	}
	return c
}

// FindConnections asks the oracle how from and to are linked.
//
// It returns a *ValidationError before any network activity when the inputs
// are invalid and a *NetworkError when the fetch fails. Service-reported
// errors, including HTTP unauthorized, come back as a DomainError Response.
func (c *Client) FindConnections(ctx context.Context, from, to, apiKey string) (Response, error) {
	q, err := NewQuery(from, to, apiKey)
	if err != nil {
		return nil, err
	}
	return c.Find(ctx, q)
}

// Find runs an already validated query.
func (c *Client) Find(ctx context.Context, q Query) (Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	uri := c.builder.Build(q)
	c.log.DebugObj("oracle request", "oracle_request", map[string]any{
		"from": q.From(),
		"to":   q.To(),
	})

	resp, err := c.http.Get(ctx, uri, nil)
	if err != nil {
		return MapTransportFailure(FailureFromError(err))
	}
	if failure, failed := FailureFromStatus(resp.StatusCode()); failed {
		c.log.WarnObj("oracle returned error status", "oracle_status", map[string]any{
			"status": resp.StatusCode(),
			"body":   bodySnippet(resp.Body()),
		})
		return MapTransportFailure(failure)
	}

	body := resp.Body()
	doc, err := ParseDocument(body)
	if err != nil {
		c.log.WarnObj("oracle response is not xml", "oracle_response", describeBody(body, err))
		return Unclassified{Message: UnknownResponseMessage}, nil
	}

	result := Classify(doc)
	if result.Kind() == KindUnclassified {
		c.log.WarnObj("oracle response has unknown shape", "oracle_response", map[string]any{
			"root": doc.RootName(),
			"body": bodySnippet(body),
		})
	}
	return result, nil
}
