package oracle

import "strings"

type parseFunc func(doc *Document) Response

// shapes is checked in order; the first root name that matches wins.
var shapes = []struct {
	root  string
	parse parseFunc
}{
	{root: "error", parse: parseError},
	{root: "spellcheck", parse: parseSpellcheck},
	{root: "link", parse: parseGraph},
}

// Classify dispatches a parsed document to the parser for its root shape.
func Classify(doc *Document) Response {
	root := doc.RootName()
	for _, s := range shapes {
		if root == s.root {
			return s.parse(doc)
		}
	}
	return parseUnknown(doc)
}

// ParseResponse decodes raw XML and classifies it. Bodies that are not XML
// are reported as Unclassified.
func ParseResponse(data []byte) Response {
	doc, err := ParseDocument(data)
	if err != nil {
		return Unclassified{Message: UnknownResponseMessage}
	}
	return Classify(doc)
}

// errorSubtypes maps the first word of the service's error text.
var errorSubtypes = map[string]ErrorSubtype{
	"No":           SubtypeBadInput,
	"There":        SubtypeUnlinkable,
	"unauthorized": SubtypeUnauthorized,
}

func parseError(doc *Document) Response {
	msg := doc.Root.Text()
	subtype := SubtypeUnknown
	if words := strings.Fields(msg); len(words) > 0 {
		if st, ok := errorSubtypes[words[0]]; ok {
			subtype = st
		}
	}
	return DomainError{Subtype: subtype, Message: msg}
}

func parseSpellcheck(doc *Document) Response {
	return Spellcheck{Candidates: texts(doc.Root.FindAll("match"))}
}

// parseGraph interleaves actors and movies. Every actor is kept; a movie
// follows actor[i] only if movie[i] exists, and surplus movies are dropped.
func parseGraph(doc *Document) Response {
	actors := texts(doc.Root.FindAll("actor"))
	movies := texts(doc.Root.FindAll("movie"))

	path := make([]string, 0, len(actors)+len(movies))
	for i, actor := range actors {
		path = append(path, actor)
		if i < len(movies) {
			path = append(path, movies[i])
		}
	}
	return Graph{Path: path}
}

func parseUnknown(*Document) Response {
	return Unclassified{Message: UnknownResponseMessage}
}

func texts(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Text())
	}
	return out
}
