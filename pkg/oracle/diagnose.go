package oracle

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

func bodySnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		n := maxLen
		for n > 0 && !utf8.RuneStart(s[n]) {
			n--
		}
		return s[:n] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}

// describeBody summarises a body that failed XML decoding. Proxies and the
// service's own outage pages answer with HTML, so the page title is pulled
// out when there is one.
func describeBody(body []byte, parseErr error) map[string]any {
	out := map[string]any{
		"body":  bodySnippet(body),
		"error": parseErr.Error(),
	}
	if title := htmlTitle(body); title != "" {
		out["html_title"] = title
	}
	return out
}

func htmlTitle(body []byte) string {
	if len(bytes.TrimSpace(body)) == 0 {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
