package oracle

// Kind tags a Response variant.
type Kind string

const (
	KindGraph        Kind = "graph"
	KindSpellcheck   Kind = "spellcheck"
	KindError        Kind = "error"
	KindUnclassified Kind = "unknown"
)

// ErrorSubtype classifies a service-reported error.
type ErrorSubtype string

const (
	SubtypeBadInput     ErrorSubtype = "badinput"
	SubtypeUnlinkable   ErrorSubtype = "unlinkable"
	SubtypeUnauthorized ErrorSubtype = "unauthorized"
	SubtypeUnknown      ErrorSubtype = "unknown"
)

// UnknownResponseMessage is the diagnostic carried by Unclassified.
const UnknownResponseMessage = "Unknown response type"

// Response is one of Graph, Spellcheck, DomainError or Unclassified.
type Response interface {
	Kind() Kind
	isResponse()
}

// Graph is a path alternating actor, movie, actor, ... ending on an actor.
type Graph struct {
	Path []string
}

// Spellcheck lists suggested corrections for an unrecognised name.
type Spellcheck struct {
	Candidates []string
}

// DomainError is an error the service reported in its own XML document.
// It is data, not a Go error.
type DomainError struct {
	Subtype ErrorSubtype
	Message string
}

// Unclassified is returned when the document matched no known shape.
type Unclassified struct {
	Message string
}

func (Graph) Kind() Kind        { return KindGraph }
func (Spellcheck) Kind() Kind   { return KindSpellcheck }
func (DomainError) Kind() Kind  { return KindError }
func (Unclassified) Kind() Kind { return KindUnclassified }

func (Graph) isResponse()        {}
func (Spellcheck) isResponse()   {}
func (DomainError) isResponse()  {}
func (Unclassified) isResponse() {}
