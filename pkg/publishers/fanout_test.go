package publishers

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakePublisher struct {
	id     string
	err    error
	events []Event
	closed bool
}

func (f *fakePublisher) ID() string   { return f.id }
func (f *fakePublisher) Type() string { return "fake" }
func (f *fakePublisher) Publish(_ context.Context, evt Event) error {
	f.events = append(f.events, evt)
	return f.err
}
func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

func TestFanoutPublishesToAllAndJoinsErrors(t *testing.T) {
	ok := &fakePublisher{id: "ok"}
	bad := &fakePublisher{id: "bad", err: errors.New("boom")}
	last := &fakePublisher{id: "last"}
	fanout := NewFanout([]Publisher{ok, nil, bad, last})

	if fanout.Size() != 3 {
		t.Fatalf("expected nil publisher skipped, size %d", fanout.Size())
	}

	n, err := fanout.Publish(context.Background(), Event{ID: "e1"})
	if n != 2 {
		t.Fatalf("expected 2 successes, got %d", n)
	}
	if err == nil || !strings.Contains(err.Error(), "fake publisher[bad]: boom") {
		t.Fatalf("unexpected error %v", err)
	}
	if len(last.events) != 1 {
		t.Fatalf("failure should not stop later publishers")
	}
}

func TestFanoutStopsOnCancelledContext(t *testing.T) {
	p := &fakePublisher{id: "p"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := NewFanout([]Publisher{p}).Publish(ctx, Event{})
	if n != 0 || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got n=%d err=%v", n, err)
	}
	if len(p.events) != 0 {
		t.Fatalf("publisher should not be called")
	}
}

func TestFanoutCloseAndNilSafety(t *testing.T) {
	p := &fakePublisher{id: "p"}
	if err := NewFanout([]Publisher{p}).Close(); err != nil || !p.closed {
		t.Fatalf("expected publisher closed, err=%v", err)
	}

	var f *Fanout
	if n, err := f.Publish(context.Background(), Event{}); n != 0 || err != nil {
		t.Fatalf("nil fanout publish: n=%d err=%v", n, err)
	}
	if f.Size() != 0 || f.Close() != nil {
		t.Fatalf("nil fanout should be inert")
	}
}
