package events

import (
	"testing"
	"time"
)

func TestHubHoldingFilter(t *testing.T) {
	hub := NewHub()
	scoped := hub.Subscribe("h-1")
	all := hub.Subscribe("")
	other := hub.Subscribe("h-2")
	defer hub.Unsubscribe(scoped)
	defer hub.Unsubscribe(all)
	defer hub.Unsubscribe(other)

	hub.Publish(Event{Type: TypeCreated, RequisitionID: "rq-1", HoldingID: "h-1"})

	select {
	case ev := <-scoped:
		if ev.RequisitionID != "rq-1" {
			t.Errorf("scoped subscriber got %+v", ev)
		}
		if ev.Timestamp.IsZero() {
			t.Errorf("publish did not stamp the event")
		}
	default:
		t.Errorf("scoped subscriber missed its holding's event")
	}

	select {
	case <-all:
	default:
		t.Errorf("wildcard subscriber missed the event")
	}

	select {
	case ev := <-other:
		t.Errorf("subscriber of another holding received %+v", ev)
	default:
	}
}

func TestHubPublishNeverBlocks(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe("")
	defer hub.Unsubscribe(ch)

	// Nobody drains; overflowing the buffer must not block the publisher.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			hub.Publish(Event{Type: TypeLevelAdvanced, RequisitionID: "rq-1"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full subscriber buffer")
	}
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe("h-1")
	hub.Unsubscribe(ch)

	if _, open := <-ch; open {
		t.Errorf("channel still open after Unsubscribe")
	}

	// Double unsubscribe is a no-op, and publishing afterwards reaches
	// nobody but must not panic.
	hub.Unsubscribe(ch)
	hub.Publish(Event{Type: TypeClosed, RequisitionID: "rq-1", HoldingID: "h-1"})
}
