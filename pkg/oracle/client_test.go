package oracle

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"testing"
	"time"

	"github.com/samvad-hq/oracle-linker/pkg/httpclient"
)

type stubResponse struct {
	body       []byte
	statusCode int
}

func (s stubResponse) Body() []byte    { return s.body }
func (s stubResponse) StatusCode() int { return s.statusCode }

// stubHTTPClient records calls and returns a preset response or error.
type stubHTTPClient struct {
	calls []string
	resp  httpclient.Response
	err   error
}

func (s *stubHTTPClient) Get(_ context.Context, u string, _ map[string]string) (httpclient.Response, error) {
	s.calls = append(s.calls, u)
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

type recordingLogger struct {
	warnings []string
}

func (r *recordingLogger) DebugObj(string, string, interface{}) {}
func (r *recordingLogger) WarnObj(msg, _ string, _ interface{}) {
	r.warnings = append(r.warnings, msg)
}

func TestFindConnectionsValidatesBeforeFetching(t *testing.T) {
	stub := &stubHTTPClient{}
	client := NewClient(WithHTTPClient(stub))

	_, err := client.FindConnections(context.Background(), "Kevin Bacon", "Kevin Bacon", "key")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(stub.calls) != 0 {
		t.Fatalf("expected no fetch, got %v", stub.calls)
	}
}

func TestFindConnectionsAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "p=secret&a=Tom+Hanks&b=Kevin+Bacon" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(`<?xml version="1.0" standalone="no"?>
<link><actor>Kevin Bacon</actor><movie>Apollo 13 (1995)</movie><actor>Tom Hanks</actor></link>`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithHTTPClient(httpclient.NewRestyClient(2*time.Second)))
	resp, err := client.FindConnections(context.Background(), "Kevin Bacon", "Tom Hanks", "secret")
	if err != nil {
		t.Fatalf("FindConnections: %v", err)
	}
	g, ok := resp.(Graph)
	if !ok {
		t.Fatalf("expected Graph, got %#v", resp)
	}
	if !slices.Equal(g.Path, []string{"Kevin Bacon", "Apollo 13 (1995)", "Tom Hanks"}) {
		t.Fatalf("unexpected path %q", g.Path)
	}
}

func TestFindConnectionsUnauthorizedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "denied", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithHTTPClient(httpclient.NewRestyClient(2*time.Second)))
	resp, err := client.FindConnections(context.Background(), "Kevin Bacon", "Tom Hanks", "bad")
	if err != nil {
		t.Fatalf("expected domain error, got %v", err)
	}
	de, ok := resp.(DomainError)
	if !ok || de.Subtype != SubtypeUnauthorized {
		t.Fatalf("expected unauthorized DomainError, got %#v", resp)
	}
}

func TestFindConnectionsServerErrorIsNetworkError(t *testing.T) {
	stub := &stubHTTPClient{resp: stubResponse{statusCode: http.StatusInternalServerError, body: []byte("oops")}}
	log := &recordingLogger{}
	client := NewClient(WithHTTPClient(stub), WithLogger(log))

	_, err := client.FindConnections(context.Background(), "Kevin Bacon", "Tom Hanks", "k")
	var nerr *NetworkError
	if !errors.As(err, &nerr) || nerr.Kind != FailureHTTPStatus {
		t.Fatalf("expected http_status NetworkError, got %v", err)
	}
	if len(log.warnings) != 1 {
		t.Fatalf("expected one warning, got %v", log.warnings)
	}
}

func TestFindConnectionsTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient(WithBaseURL(srv.URL), WithHTTPClient(httpclient.NewRestyClient(50*time.Millisecond)))
	_, err := client.FindConnections(context.Background(), "Kevin Bacon", "Tom Hanks", "k")

	var nerr *NetworkError
	if !errors.As(err, &nerr) {
		t.Fatalf("expected *NetworkError, got %v", err)
	}
	if nerr.Kind != FailureTimeout {
		t.Fatalf("expected timeout, got %q", nerr.Kind)
	}
	if nerr.Message == "" || nerr.Message != nerr.Err.Error() {
		t.Fatalf("original message not preserved: %+v", nerr)
	}
}

func TestFindConnectionsSimulatedTimeoutKeepsMessage(t *testing.T) {
	cause := &url.Error{Op: "Get", URL: "http://oracleofbacon.org/cgi-bin/xml", Err: timeoutError{}}
	client := NewClient(WithHTTPClient(&stubHTTPClient{err: cause}))

	_, err := client.FindConnections(context.Background(), "Kevin Bacon", "Tom Hanks", "k")
	var nerr *NetworkError
	if !errors.As(err, &nerr) || nerr.Message != cause.Error() {
		t.Fatalf("unexpected error %#v", err)
	}
}

func TestFindConnectionsHTMLBodyIsUnclassified(t *testing.T) {
	body := []byte(`<!DOCTYPE html><html><head><title>Service Unavailable</title></head><body><p>down</body></html>`)
	log := &recordingLogger{}
	client := NewClient(WithHTTPClient(&stubHTTPClient{resp: stubResponse{statusCode: 200, body: body}}), WithLogger(log))

	resp, err := client.FindConnections(context.Background(), "Kevin Bacon", "Tom Hanks", "k")
	if err != nil {
		t.Fatalf("FindConnections: %v", err)
	}
	if resp != (Unclassified{Message: UnknownResponseMessage}) {
		t.Fatalf("expected Unclassified, got %#v", resp)
	}
	if len(log.warnings) != 1 {
		t.Fatalf("expected one warning, got %v", log.warnings)
	}
}

func TestHTMLTitle(t *testing.T) {
	if got := htmlTitle([]byte(`<html><head><title> Down for maintenance </title></head></html>`)); got != "Down for maintenance" {
		t.Fatalf("htmlTitle = %q", got)
	}
	if got := htmlTitle(nil); got != "" {
		t.Fatalf("expected empty title, got %q", got)
	}
}
