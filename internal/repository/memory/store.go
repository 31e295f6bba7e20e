package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leadtrackhq/leadtrack-api/internal/model"
	"github.com/leadtrackhq/leadtrack-api/pkg/event"
)

// Store is the single source of truth for all application state. It holds
// leads (newest first), stored notifications and campaign records in
// process memory; nothing survives a restart.
//
// Every committed mutation bumps a monotonic version counter and fans a
// change event out to registered observers. Observers run outside the
// store lock and must not mutate the store from within the callback.
type Store struct {
	mu        sync.RWMutex
	version   uint64
	observers []event.Observer

	leads     map[uuid.UUID]*model.Lead
	leadOrder []uuid.UUID

	notifications []*model.Notification
	campaigns     []*model.Campaign
}

// now is separated so tests can pin the clock.
var now = time.Now

func NewStore() *Store {
	return &Store{
		leads: make(map[uuid.UUID]*model.Lead),
	}
}

// Observe registers a change observer. Registration is not synchronized
// with in-flight mutations; register observers before serving traffic.
func (s *Store) Observe(fn event.Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Version returns the current store version. Pollers can compare versions
// to detect that something changed without subscribing.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// commit bumps the version under the lock and returns the change event the
// caller should fan out once the lock is released.
func (s *Store) commit(entity string, op event.Operation, entityID string, payload interface{}) event.Change {
	s.version++
	return event.Change{
		ID:         uuid.New(),
		Entity:     entity,
		Operation:  op,
		EntityID:   entityID,
		Version:    s.version,
		Payload:    payload,
		OccurredAt: now(),
	}
}

func (s *Store) notify(ch event.Change) {
	s.mu.RLock()
	observers := make([]event.Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()

	for _, fn := range observers {
		fn(ch)
	}
}

func copyLead(l *model.Lead) *model.Lead {
	cp := *l
	cp.Timeline = make([]model.TimelineEntry, len(l.Timeline))
	copy(cp.Timeline, l.Timeline)
	if l.NextFollowUpDate != nil {
		d := *l.NextFollowUpDate
		cp.NextFollowUpDate = &d
	}
	return &cp
}

func copyNotification(n *model.Notification) *model.Notification {
	cp := *n
	return &cp
}

func copyCampaign(c *model.Campaign) *model.Campaign {
	cp := *c
	return &cp
}
