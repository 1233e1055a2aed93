package webhooks

import (
	"context"
	"testing"

	"github.com/stripe/stripe-go/v76"
)

type memEventLog struct {
	seen map[string]bool
}

func newMemEventLog() *memEventLog {
	return &memEventLog{seen: make(map[string]bool)}
}

func (m *memEventLog) MarkProcessed(ctx context.Context, eventID, eventType string) (bool, error) {
	if m.seen[eventID] {
		return false, nil
	}
	m.seen[eventID] = true
	return true, nil
}

func TestProcessEventAppliesOnce(t *testing.T) {
	applied := 0
	h := &Handler{
		Events: newMemEventLog(),
		apply: func(event stripe.Event) error {
			applied++
			return nil
		},
	}

	event := stripe.Event{ID: "evt_123", Type: "customer.subscription.updated"}

	// Same event delivered three times; the mutation must run exactly once.
	for i := 0; i < 3; i++ {
		if err := h.ProcessEvent(context.Background(), event); err != nil {
			t.Fatalf("ProcessEvent delivery %d returned error: %v", i+1, err)
		}
	}
	if applied != 1 {
		t.Errorf("event applied %d times, want exactly 1", applied)
	}
}

func TestProcessEventDistinctEvents(t *testing.T) {
	var applied []string
	h := &Handler{
		Events: newMemEventLog(),
		apply: func(event stripe.Event) error {
			applied = append(applied, event.ID)
			return nil
		},
	}

	for _, id := range []string{"evt_1", "evt_2", "evt_3"} {
		if err := h.ProcessEvent(context.Background(), stripe.Event{ID: id}); err != nil {
			t.Fatalf("ProcessEvent(%s) returned error: %v", id, err)
		}
	}
	if len(applied) != 3 {
		t.Errorf("applied %d events, want 3", len(applied))
	}
}
