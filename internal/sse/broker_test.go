package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker()
	defer b.Close()
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients")
	}
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}
	b.Unsubscribe(ch)
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unsub")
	}
}

func TestPublishStatusDelivery(t *testing.T) {
	b := NewBroker()
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishStatus("saving")

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: status.changed") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"status":"saving"`) {
			t.Errorf("missing data in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestPublishStatus_Deduplicates(t *testing.T) {
	b := NewBroker()
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	// Skipped autosave ticks land on "saved" repeatedly; only transitions
	// reach clients.
	b.PublishStatus("saved")
	b.PublishStatus("saved")
	b.PublishStatus("saved")
	b.PublishStatus("saving")
	b.PublishStatus("saved")

	time.Sleep(50 * time.Millisecond)
	count := 0
loop:
	for {
		select {
		case <-ch:
			count++
		default:
			break loop
		}
	}
	if count != 3 {
		t.Errorf("delivered %d status events, want 3 (saved, saving, saved)", count)
	}
}

func TestPublishDrawingEvent(t *testing.T) {
	b := NewBroker()
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishDrawingEvent("created", "rec-1")
	b.PublishDrawingEvent("deleted", "rec-2")

	var got []string
	for i := 0; i < 2; i++ {
		select {
		case msg := <-ch:
			got = append(got, string(msg))
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for message")
		}
	}
	if !strings.Contains(got[0], "event: drawing.created") || !strings.Contains(got[0], `"id":"rec-1"`) {
		t.Errorf("first event = %q", got[0])
	}
	if !strings.Contains(got[1], "event: drawing.deleted") || !strings.Contains(got[1], `"id":"rec-2"`) {
		t.Errorf("second event = %q", got[1])
	}
}

func TestSSEHandler(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		b.ServeHTTP(w, req)
		close(done)
	}()

	// Give handler time to subscribe.
	time.Sleep(50 * time.Millisecond)
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client from handler")
	}

	b.PublishDrawingEvent("updated", "rec-9")
	time.Sleep(50 * time.Millisecond)

	cancel()
	<-done

	body := w.Body.String()
	if !strings.Contains(body, "event: drawing.updated") {
		t.Errorf("handler body missing event: %q", body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q", ct)
	}
}

func TestPublishAfterClose(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()
	b.Close()

	// Must not panic or block.
	b.PublishStatus("saved")
	b.PublishDrawingEvent("created", "x")
	b.Unsubscribe(ch)

	if _, ok := <-ch; ok {
		t.Error("client channel not closed on broker close")
	}
	if b.ClientCount() != 0 {
		t.Errorf("ClientCount after close = %d", b.ClientCount())
	}
}
