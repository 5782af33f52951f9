// Package notify implements Server-Sent Events for pushing catalog changes
// to connected clients. Cart changes, showcase slide advances, and snapshot
// refreshes all flow through one broadcast manager, so every open session
// observes the same state.
package notify

import (
	"time"

	"github.com/Abddev09/usat-library/internal/carousel"
	"github.com/Abddev09/usat-library/internal/domain"
)

// EventType represents the type of SSE event.
type EventType string

const (
	// EventCartChanged represents any mutation of a user's cart.
	EventCartChanged EventType = "cart.changed"

	// EventShowcaseSlide represents a showcase carousel slide change.
	EventShowcaseSlide EventType = "showcase.slide"

	// EventCatalogRefreshed represents a new catalog snapshot being served.
	EventCatalogRefreshed EventType = "catalog.refreshed"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
// The Data field contains the event payload as a JSON object.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`

	// When set, the event is only delivered to clients registered for this
	// user. Empty string means broadcast to all.
	UserID string `json:"-"`
}

// CartChangedEventData is the data payload for cart.changed events.
type CartChangedEventData struct {
	UserID    string              `json:"user_id"`
	Action    string              `json:"action"` // "added", "removed", "cleared"
	BookID    string              `json:"book_id,omitempty"`
	Entries   []*domain.CartEntry `json:"entries"`
	ChangedAt time.Time           `json:"changed_at"`
}

// ShowcaseSlideEventData is the data payload for showcase.slide events.
type ShowcaseSlideEventData struct {
	State     carousel.State `json:"state"`
	ChangedAt time.Time      `json:"changed_at"`
}

// CatalogRefreshedEventData is the data payload for catalog.refreshed events.
type CatalogRefreshedEventData struct {
	Version     string    `json:"version"`
	BookCount   int       `json:"book_count"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// NewCartChangedEvent creates a cart.changed event targeted at one user.
func NewCartChangedEvent(userID, action, bookID string, entries []*domain.CartEntry) Event {
	return Event{
		Type:   EventCartChanged,
		UserID: userID,
		Data: CartChangedEventData{
			UserID:    userID,
			Action:    action,
			BookID:    bookID,
			Entries:   entries,
			ChangedAt: time.Now(),
		},
		Timestamp: time.Now(),
	}
}

// NewShowcaseSlideEvent creates a showcase.slide event.
func NewShowcaseSlideEvent(state carousel.State) Event {
	return Event{
		Type: EventShowcaseSlide,
		Data: ShowcaseSlideEventData{
			State:     state,
			ChangedAt: time.Now(),
		},
		Timestamp: time.Now(),
	}
}

// NewCatalogRefreshedEvent creates a catalog.refreshed event.
func NewCatalogRefreshedEvent(version string, bookCount int) Event {
	return Event{
		Type: EventCatalogRefreshed,
		Data: CatalogRefreshedEventData{
			Version:     version,
			BookCount:   bookCount,
			RefreshedAt: time.Now(),
		},
		Timestamp: time.Now(),
	}
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	return Event{
		Type: EventHeartbeat,
		Data: HeartbeatEventData{
			ServerTime: time.Now(),
		},
		Timestamp: time.Now(),
	}
}
