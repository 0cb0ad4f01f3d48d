// Package watch provides debounced file-system watching for HSL workspaces.
// Raw fsnotify events are coalesced per path and normalized to the three
// changes the index cares about: created, modified, deleted.
package watch

import "time"

// EventType classifies a normalized file change.
type EventType int

const (
	Created EventType = iota
	Modified
	Deleted
)

// String returns the lowercase name of the event type.
func (t EventType) String() string {
	switch t {
	case Created:
		return "created"
	case Modified:
		return "modified"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Event is one normalized file-system change.
type Event struct {
	Type      EventType
	Path      string
	Timestamp time.Time
}
