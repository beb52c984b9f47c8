package oracle

import (
	"net/url"
	"regexp"
	"strings"
)

// DefaultBaseURL is the oracle's XML interface endpoint.
const DefaultBaseURL = "http://oracleofbacon.org/cgi-bin/xml"

// RequestBuilder turns a Query into the oracle request URI.
type RequestBuilder struct {
	BaseURL string
}

// Build returns the request URI. Parameter order (p, a, b) is fixed because
// the service depends on it; every value is query-escaped.
func (b RequestBuilder) Build(q Query) string {
	base := strings.TrimSpace(b.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}

	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString("?p=")
	sb.WriteString(url.QueryEscape(q.apiKey))
	sb.WriteString("&a=")
	sb.WriteString(url.QueryEscape(q.to))
	sb.WriteString("&b=")
	sb.WriteString(url.QueryEscape(q.from))
	return sb.String()
}

// BuildURI builds the URI against DefaultBaseURL.
func BuildURI(q Query) string {
	return RequestBuilder{}.Build(q)
}

var apiKeyParam = regexp.MustCompile(`([?&]p=)[^&\s"']*`)

// RedactAPIKey masks the p= value of any request URI embedded in s. Transport
// errors quote the full URI, so anything headed for a log or a terminal goes
// through here first.
func RedactAPIKey(s string) string {
	return apiKeyParam.ReplaceAllString(s, "${1}***")
}
