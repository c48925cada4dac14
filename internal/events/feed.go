package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
)

// Event is a change notification published after a successful mutation.
type Event struct {
	Entity string `json:"entity"`
	Action string `json:"action"`
	ID     int64  `json:"id,omitempty"`
}

const (
	sendBufferSize = 16
	pingInterval   = 30 * time.Second
)

// Feed fans mutation events out to connected WebSocket subscribers. Slow
// subscribers lose events rather than block publishers.
type Feed struct {
	mu     sync.RWMutex
	subs   map[chan []byte]struct{}
	logger *slog.Logger
}

func NewFeed(logger *slog.Logger) *Feed {
	return &Feed{
		subs:   make(map[chan []byte]struct{}),
		logger: logger,
	}
}

// Publish sends an Event to every subscriber.
func (f *Feed) Publish(entity, action string, id int64) {
	data, err := json.Marshal(Event{Entity: entity, Action: action, ID: id})
	if err != nil {
		f.logger.Error("marshal event", "error", err)
		return
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	for ch := range f.subs {
		select {
		case ch <- data:
		default:
			// Subscriber buffer full, drop the event
		}
	}
}

func (f *Feed) subscribe() chan []byte {
	ch := make(chan []byte, sendBufferSize)
	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()
	return ch
}

func (f *Feed) unsubscribe(ch chan []byte) {
	f.mu.Lock()
	if _, ok := f.subs[ch]; ok {
		delete(f.subs, ch)
		close(ch)
	}
	f.mu.Unlock()
}

// SubscriberCount returns the number of connected subscribers.
func (f *Feed) SubscriberCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs)
}

// Handler upgrades the request to a WebSocket connection and streams events
// until the client disconnects.
func (f *Feed) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true, // API is consumed cross-origin by the app frontend
		})
		if err != nil {
			f.logger.Warn("websocket accept", "error", err)
			return
		}
		defer conn.CloseNow()

		ch := f.subscribe()
		defer f.unsubscribe(ch)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Reads are discarded; a read error means the client went away.
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.Read(ctx); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()

		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if err := conn.Write(ctx, websocket.MessageText, msg); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.Ping(ctx); err != nil {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}
}
