package oracle

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/charmap"
)

var errNoRootElement = errors.New("xml document has no root element")

// Node is an element in a parsed XML document.
type Node struct {
	Name     string
	Children []*Node

	text strings.Builder
}

// Text returns the concatenated character data of the node and all of its
// descendants, in document order.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return n.text.String()
}

// FindAll returns the node and every descendant named name, in document order.
func (n *Node) FindAll(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		if cur.Name == name {
			out = append(out, cur)
		}
		for _, c := range cur.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// Document is a parsed XML response.
type Document struct {
	Root *Node
}

// RootName returns the local name of the root element.
func (d *Document) RootName() string {
	if d == nil || d.Root == nil {
		return ""
	}
	return d.Root.Name
}

// ParseDocument decodes raw XML into a Document. Decoding stops once the
// root element closes, so trailing bytes after it are ignored.
//
// The decoder is lenient: HTML entities such as &nbsp; are resolved,
// mismatched end tags are tolerated, and a body that is not valid UTF-8 and
// fails to decode is retried as Windows-1252 (a superset of Latin-1).
func ParseDocument(data []byte) (*Document, error) {
	doc, err := decodeDocument(data)
	if err == nil || utf8.Valid(data) {
		return doc, err
	}

	latin, convErr := charmap.Windows1252.NewDecoder().Bytes(data)
	if convErr != nil {
		return nil, err
	}
	if retry, retryErr := decodeDocument(latin); retryErr == nil {
		return retry, nil
	}
	return nil, err
}

func decodeDocument(data []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel
	dec.Strict = false
	dec.Entity = xml.HTMLEntity

	var (
		root  *Node
		stack []*Node
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{Name: t.Name.Local}
			if len(stack) == 0 {
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return &Document{Root: root}, nil
			}
		case xml.CharData:
			for _, open := range stack {
				open.text.Write(t)
			}
		}
	}

	if root == nil {
		return nil, errNoRootElement
	}
	return nil, fmt.Errorf("decode xml: element <%s> not closed", root.Name)
}
