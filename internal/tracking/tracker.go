// Package tracking dispatches analytics events to the external sink.
// Delivery is best-effort: failures are logged and never reach the caller.
package tracking

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"toyshop/internal/domain"
)

const (
	EventAddToCart     = "add_to_cart"
	EventBeginCheckout = "begin_checkout"
	EventPurchase      = "purchase"
)

// Item is one cart line in an event's item array.
type Item struct {
	ID        string `json:"id"`
	Quantity  int    `json:"quantity"`
	ItemPrice int64  `json:"item_price"`
}

// Event is one tracking payload.
type Event struct {
	ID        string `json:"eventId"`
	Name      string `json:"event"`
	SessionID string `json:"sessionId"`
	Items     []Item `json:"items,omitempty"`
	Value     int64  `json:"value,omitempty"`
}

// Tracker publishes events without ever blocking or failing the caller.
type Tracker interface {
	Publish(ctx context.Context, event Event)
}

// ItemsFromLines converts cart lines to the sink's item array shape.
func ItemsFromLines(lines []domain.CartLine) []Item {
	out := make([]Item, 0, len(lines))
	for _, l := range lines {
		out = append(out, Item{ID: l.ProductID, Quantity: l.Quantity, ItemPrice: l.UnitPrice()})
	}
	return out
}

// NewEvent builds an event with a fresh ID.
func NewEvent(name, sessionID string, items []Item, value int64) Event {
	return Event{
		ID:        uuid.NewString(),
		Name:      name,
		SessionID: sessionID,
		Items:     items,
		Value:     value,
	}
}

type httpTracker struct {
	url    string
	http   *http.Client
	logger *log.Logger
}

// NewHTTP builds a Tracker that posts events to url in the background.
func NewHTTP(url string, logger *log.Logger) Tracker {
	return &httpTracker{
		url:    url,
		http:   &http.Client{Timeout: 5 * time.Second},
		logger: logger,
	}
}

// Publish fires the event from a goroutine detached from the request context,
// so a finished checkout never waits on, or fails because of, analytics.
func (t *httpTracker) Publish(_ context.Context, event Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		body, err := json.Marshal(event)
		if err != nil {
			t.logger.Printf("tracking: encode %s: %v", event.Name, err)
			return
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
		if err != nil {
			t.logger.Printf("tracking: build %s: %v", event.Name, err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := t.http.Do(req)
		if err != nil {
			t.logger.Printf("tracking: post %s: %v", event.Name, err)
			return
		}
		resp.Body.Close()
		if resp.StatusCode >= 300 {
			t.logger.Printf("tracking: post %s: sink responded %d", event.Name, resp.StatusCode)
		}
	}()
}

type noopTracker struct{}

// NewNoop builds a Tracker that drops every event. Used when no sink is
// configured, and in tests.
func NewNoop() Tracker {
	return noopTracker{}
}

func (noopTracker) Publish(context.Context, Event) {}
