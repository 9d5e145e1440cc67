package draft

import "time"

// Event types emitted when draft state changes.
const (
	EventPlayerDrafted = "player_drafted"
	EventPickEdited    = "pick_edited"
	EventPickRemoved   = "pick_removed"
	EventSettingsReset = "settings_reset"
)

// Event is one draft-state change, published to the event stream and
// fanned out to WebSocket clients.
type Event struct {
	Type      string    `json:"type"`
	Pick      *Pick     `json:"pick,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent stamps an event with the current time.
func NewEvent(eventType string, pick *Pick) Event {
	return Event{
		Type:      eventType,
		Pick:      pick,
		Timestamp: time.Now().UTC(),
	}
}
