package oracle

import (
	"strings"
	"testing"
)

func TestBuildURIOrderAndEscaping(t *testing.T) {
	q, err := NewQuery("Kevin Bacon", "Laurel & Hardy", "abc/123")
	if err != nil {
		t.Fatalf("NewQuery: %v", err)
	}

	got := BuildURI(q)
	want := "http://oracleofbacon.org/cgi-bin/xml?p=abc%2F123&a=Laurel+%26+Hardy&b=Kevin+Bacon"
	if got != want {
		t.Fatalf("BuildURI = %q, want %q", got, want)
	}
	if again := BuildURI(q); again != got {
		t.Fatalf("BuildURI not deterministic: %q vs %q", got, again)
	}
	if q.To() != "Laurel & Hardy" {
		t.Fatalf("query mutated: %q", q.To())
	}
}

func TestRequestBuilderCustomBase(t *testing.T) {
	q, _ := NewQuery("A", "B", "k")
	got := RequestBuilder{BaseURL: " http://localhost:8080/xml "}.Build(q)
	if !strings.HasPrefix(got, "http://localhost:8080/xml?p=k&a=B&b=A") {
		t.Fatalf("unexpected uri %q", got)
	}
}

func TestRedactAPIKey(t *testing.T) {
	q, err := NewQuery("Kevin Bacon", "Tom Hanks", "s3cr%t&key")
	if err != nil {
		t.Fatalf("NewQuery: %v", err)
	}
	msg := `Get "` + BuildURI(q) + `": context deadline exceeded`

	got := RedactAPIKey(msg)
	if strings.Contains(got, "s3cr") {
		t.Fatalf("key leaked: %s", got)
	}
	want := `Get "http://oracleofbacon.org/cgi-bin/xml?p=***&a=Tom+Hanks&b=Kevin+Bacon": context deadline exceeded`
	if got != want {
		t.Fatalf("RedactAPIKey = %s", got)
	}
	if plain := "connection refused"; RedactAPIKey(plain) != plain {
		t.Fatalf("unexpected change to %q", plain)
	}
}
