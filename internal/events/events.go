package events

import "time"

// Import lifecycle event types.
const (
	TypePopulateStarted  = "populate.started"
	TypeGameCreated      = "game.created"
	TypeGameSkipped      = "game.skipped"
	TypePopulateFinished = "populate.finished"
)

// ImportEvent is broadcast to websocket and tcp subscribers while a
// populate run progresses. Count fields are only set on the finished
// event.
type ImportEvent struct {
	Type    string    `json:"type"`
	Name    string    `json:"name,omitempty"`
	Slug    string    `json:"slug,omitempty"`
	Total   int       `json:"total,omitempty"`
	Created int       `json:"created,omitempty"`
	Skipped int       `json:"skipped,omitempty"`
	Failed  int       `json:"failed,omitempty"`
	At      time.Time `json:"at"`
}
