package publishers

import (
	"time"

	"github.com/google/uuid"
	"github.com/samvad-hq/oracle-linker/pkg/oracle"
)

// Event is the payload published for one completed lookup.
type Event struct {
	ID           string    `json:"id"`
	From         string    `json:"from"`
	To           string    `json:"to"`
	Kind         string    `json:"kind"`
	Path         []string  `json:"path,omitempty"`
	Candidates   []string  `json:"candidates,omitempty"`
	ErrorSubtype string    `json:"error_subtype,omitempty"`
	Message      string    `json:"message,omitempty"`
	ResolvedAt   time.Time `json:"resolved_at"`
}

// NewEvent builds an Event from a query and the response it produced.
func NewEvent(q oracle.Query, resp oracle.Response) Event {
	evt := Event{
		ID:         uuid.NewString(),
		From:       q.From(),
		To:         q.To(),
		ResolvedAt: time.Now().UTC(),
	}
	if resp == nil {
		return evt
	}
	evt.Kind = string(resp.Kind())

	switch r := resp.(type) {
	case oracle.Graph:
		evt.Path = r.Path
	case oracle.Spellcheck:
		evt.Candidates = r.Candidates
	case oracle.DomainError:
		evt.ErrorSubtype = string(r.Subtype)
		evt.Message = r.Message
	case oracle.Unclassified:
		evt.Message = r.Message
	}
	return evt
}

// attributes are the routing attributes attached to queue/topic messages.
func (e Event) attributes() map[string]string {
	attrs := make(map[string]string, 2)
	if e.Kind != "" {
		attrs["kind"] = e.Kind
	}
	if e.ErrorSubtype != "" {
		attrs["error_subtype"] = e.ErrorSubtype
	}
	return attrs
}
