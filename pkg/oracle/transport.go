package oracle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
)

// FailureKind names a class of transport failure.
type FailureKind string

const (
	FailureTimeout           FailureKind = "timeout"
	FailureCanceled          FailureKind = "canceled"
	FailureConnectionReset   FailureKind = "connection_reset"
	FailureConnectionRefused FailureKind = "connection_refused"
	FailureConnectionAborted FailureKind = "connection_aborted"
	FailureInvalidArgument   FailureKind = "invalid_argument"
	FailureDNS               FailureKind = "dns"
	FailureUnexpectedEOF     FailureKind = "unexpected_eof"
	FailureMalformedResponse FailureKind = "malformed_response"
	FailureHeaderSyntax      FailureKind = "header_syntax"
	FailureProtocol          FailureKind = "protocol"
	FailureHTTPStatus        FailureKind = "http_status"
	FailureHTTPUnauthorized  FailureKind = "http_unauthorized"
	FailureOther             FailureKind = "other"
)

type outcome int

const (
	outcomeNetworkError outcome = iota
	outcomeUnauthorized
)

// transportOutcomes must hold an entry for every FailureKind.
var transportOutcomes = map[FailureKind]outcome{
	FailureTimeout:           outcomeNetworkError,
	FailureCanceled:          outcomeNetworkError,
	FailureConnectionReset:   outcomeNetworkError,
	FailureConnectionRefused: outcomeNetworkError,
	FailureConnectionAborted: outcomeNetworkError,
	FailureInvalidArgument:   outcomeNetworkError,
	FailureDNS:               outcomeNetworkError,
	FailureUnexpectedEOF:     outcomeNetworkError,
	FailureMalformedResponse: outcomeNetworkError,
	FailureHeaderSyntax:      outcomeNetworkError,
	FailureProtocol:          outcomeNetworkError,
	FailureHTTPStatus:        outcomeNetworkError,
	FailureHTTPUnauthorized:  outcomeUnauthorized,
	FailureOther:             outcomeNetworkError,
}

// FailureKinds lists every kind in the catalog.
func FailureKinds() []FailureKind {
	return []FailureKind{
		FailureTimeout,
		FailureCanceled,
		FailureConnectionReset,
		FailureConnectionRefused,
		FailureConnectionAborted,
		FailureInvalidArgument,
		FailureDNS,
		FailureUnexpectedEOF,
		FailureMalformedResponse,
		FailureHeaderSyntax,
		FailureProtocol,
		FailureHTTPStatus,
		FailureHTTPUnauthorized,
		FailureOther,
	}
}

// unauthorizedDocument mirrors the document the service itself emits for a
// bad API key.
const unauthorizedDocument = `<?xml version="1.0" standalone="no"?>
<error type="unauthorized">unauthorized use of xml interface</error>`

// TransportFailure is a failed fetch: either an error from the HTTP client
// or a non-2xx status.
type TransportFailure struct {
	Kind       FailureKind
	StatusCode int
	Err        error
}

// FailureFromError classifies an error returned by the HTTP client.
func FailureFromError(err error) TransportFailure {
	return TransportFailure{Kind: classifyError(err), Err: err}
}

// FailureFromStatus classifies a response status. ok is false for 2xx.
func FailureFromStatus(code int) (TransportFailure, bool) {
	if code >= 200 && code < 300 {
		return TransportFailure{}, false
	}
	f := TransportFailure{
		Kind:       FailureHTTPStatus,
		StatusCode: code,
		Err:        fmt.Errorf("%d %s", code, http.StatusText(code)),
	}
	if code == http.StatusUnauthorized || code == http.StatusForbidden {
		f.Kind = FailureHTTPUnauthorized
	}
	return f, true
}

// MapTransportFailure applies the outcome table. HTTP unauthorized becomes
// the same DomainError the service reports in XML; everything else is a
// *NetworkError.
func MapTransportFailure(f TransportFailure) (Response, error) {
	out, ok := transportOutcomes[f.Kind]
	if !ok {
		out = outcomeNetworkError
	}

	if out == outcomeUnauthorized {
		return ParseResponse([]byte(unauthorizedDocument)), nil
	}

	msg := ""
	if f.Err != nil {
		msg = f.Err.Error()
	}
	return nil, &NetworkError{
		Kind:       f.Kind,
		StatusCode: f.StatusCode,
		Message:    msg,
		Err:        f.Err,
	}
}

func classifyError(err error) FailureKind {
	if err == nil {
		return FailureOther
	}

	if errors.Is(err, context.Canceled) {
		return FailureCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailureTimeout
	}

	switch {
	case errors.Is(err, syscall.ECONNRESET):
		return FailureConnectionReset
	case errors.Is(err, syscall.ECONNREFUSED):
		return FailureConnectionRefused
	case errors.Is(err, syscall.ECONNABORTED), errors.Is(err, syscall.EPIPE):
		return FailureConnectionAborted
	case errors.Is(err, syscall.EINVAL):
		return FailureInvalidArgument
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return FailureDNS
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return FailureUnexpectedEOF
	}

	// net/http reports these with unexported error types.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "malformed HTTP"):
		return FailureMalformedResponse
	case strings.Contains(msg, "malformed MIME header"):
		return FailureHeaderSyntax
	}

	var urlErr *url.Error
	var opErr *net.OpError
	if errors.As(err, &urlErr) || errors.As(err, &opErr) {
		return FailureProtocol
	}
	return FailureOther
}
