package event

import (
	"time"

	"github.com/google/uuid"
)

// Operation names the kind of store mutation that produced a change event.
type Operation string

const (
	OpCreate         Operation = "CREATE"
	OpUpdate         Operation = "UPDATE"
	OpDelete         Operation = "DELETE"
	OpStatusChange   Operation = "STATUS_CHANGE"
	OpTimelineAppend Operation = "TIMELINE_APPEND"
)

// Change describes a single committed mutation of the in-memory store.
// The store fans these out to registered observers; views and the outbox
// dispatcher both consume them without the store knowing either exists.
type Change struct {
	ID         uuid.UUID   `json:"id"`
	Entity     string      `json:"entity"`
	Operation  Operation   `json:"operation"`
	EntityID   string      `json:"entity_id"`
	Version    uint64      `json:"version"`
	Payload    interface{} `json:"payload,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// Observer receives change events synchronously with the committing
// mutation. Observers must not call back into the store.
type Observer func(Change)
