package events

import (
	"encoding/json"
	"log/slog"
	"testing"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	feed := NewFeed(slog.Default())

	ch1 := feed.subscribe()
	ch2 := feed.subscribe()

	if got := feed.SubscriberCount(); got != 2 {
		t.Fatalf("subscribers = %d, want 2", got)
	}

	feed.unsubscribe(ch1)
	if got := feed.SubscriberCount(); got != 1 {
		t.Fatalf("subscribers = %d, want 1 after unsubscribe", got)
	}

	// A second unsubscribe of the same channel must not panic.
	feed.unsubscribe(ch1)
	feed.unsubscribe(ch2)
	if got := feed.SubscriberCount(); got != 0 {
		t.Fatalf("subscribers = %d, want 0", got)
	}
}

func TestPublishDelivers(t *testing.T) {
	feed := NewFeed(slog.Default())
	ch := feed.subscribe()
	defer feed.unsubscribe(ch)

	feed.Publish("spullen", "created", 12)

	select {
	case data := <-ch:
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if ev.Entity != "spullen" || ev.Action != "created" || ev.ID != 12 {
			t.Errorf("event = %+v", ev)
		}
	default:
		t.Fatal("no event delivered")
	}
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	feed := NewFeed(slog.Default())
	ch := feed.subscribe()
	defer feed.unsubscribe(ch)

	// Overflow the buffer; Publish must not block.
	for i := 0; i < sendBufferSize*2; i++ {
		feed.Publish("categorie", "updated", int64(i))
	}

	if got := len(ch); got != sendBufferSize {
		t.Errorf("buffered = %d, want %d", got, sendBufferSize)
	}
}
