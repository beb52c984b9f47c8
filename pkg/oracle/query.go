package oracle

// Field names reported in validation violations.
const (
	FieldFrom   = "from"
	FieldTo     = "to"
	FieldAPIKey = "apiKey"
)

// Violation reasons.
const (
	ReasonRequired         = "required"
	ReasonMustDifferFromTo = "must_differ_from_to"
)

// Violation describes a single failed validation rule.
type Violation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Query is a validated lookup request. Build it with NewQuery.
type Query struct {
	from   string
	to     string
	apiKey string
}

// Validate checks every rule and returns all violations found.
func Validate(from, to, apiKey string) []Violation {
	var out []Violation
	if from == "" {
		out = append(out, Violation{Field: FieldFrom, Reason: ReasonRequired})
	}
	if to == "" {
		out = append(out, Violation{Field: FieldTo, Reason: ReasonRequired})
	}
	if apiKey == "" {
		out = append(out, Violation{Field: FieldAPIKey, Reason: ReasonRequired})
	}
	if from == to {
		out = append(out, Violation{Field: FieldFrom, Reason: ReasonMustDifferFromTo})
	}
	return out
}

// NewQuery validates the inputs and returns a Query, or a *ValidationError
// listing every violated rule.
func NewQuery(from, to, apiKey string) (Query, error) {
	if violations := Validate(from, to, apiKey); len(violations) > 0 {
		return Query{}, &ValidationError{Violations: violations}
	}
	return Query{from: from, to: to, apiKey: apiKey}, nil
}

func (q Query) From() string   { return q.from }
func (q Query) To() string     { return q.to }
func (q Query) APIKey() string { return q.apiKey }
