package realtime

import (
	"testing"
	"time"
)

func recv(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func assertEmpty(t *testing.T, ch <-chan Event) {
	t.Helper()
	select {
	case ev := <-ch:
		t.Fatalf("unexpected event: %+v", ev)
	default:
	}
}

func TestDispatchFiltersByUser(t *testing.T) {
	h := NewHub()
	a, cancelA := h.Subscribe("user-a", false)
	defer cancelA()
	b, cancelB := h.Subscribe("user-b", false)
	defer cancelB()

	h.Dispatch(Event{Table: "notifications", Action: "insert", UserID: "user-a"})

	ev := recv(t, a)
	if ev.UserID != "user-a" {
		t.Fatalf("wrong event: %+v", ev)
	}
	assertEmpty(t, b)
}

func TestConsultantAudience(t *testing.T) {
	h := NewHub()
	owner, cancelO := h.Subscribe("user-a", false)
	defer cancelO()
	desk, cancelD := h.Subscribe("cons-1", true)
	defer cancelD()

	h.Dispatch(Event{Table: "businesses", Action: "update", Status: "processing_cac", Audience: "consultants"})

	ev := recv(t, desk)
	if ev.Status != "processing_cac" {
		t.Fatalf("wrong event: %+v", ev)
	}
	assertEmpty(t, owner)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("user-a", false)
	cancel()
	// cancel twice is safe
	cancel()

	h.Dispatch(Event{Table: "messages", Action: "insert", UserID: "user-a"})
	if _, ok := <-ch; ok {
		t.Fatal("expected closed channel after unsubscribe")
	}
}

func TestSlowConsumerIsSkipped(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("user-a", false)
	defer cancel()

	for i := 0; i < 100; i++ {
		h.Dispatch(Event{Table: "assets", Action: "insert", UserID: "user-a"})
	}
	// buffer is bounded; dispatch never blocked to get here
	if len(ch) == 0 {
		t.Fatal("expected buffered events")
	}
}
