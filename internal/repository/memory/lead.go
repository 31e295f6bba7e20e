package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/leadtrackhq/leadtrack-api/internal/model"
	"github.com/leadtrackhq/leadtrack-api/internal/repository"
	"github.com/leadtrackhq/leadtrack-api/pkg/event"
)

const entityLead = "lead"

type LeadRepository struct {
	store *Store
}

func NewLeadRepository(store *Store) *LeadRepository {
	return &LeadRepository{store: store}
}

func (r *LeadRepository) Create(_ context.Context, lead *model.Lead) error {
	r.store.mu.Lock()
	r.store.leads[lead.ID] = copyLead(lead)
	// Newest leads come first.
	r.store.leadOrder = append([]uuid.UUID{lead.ID}, r.store.leadOrder...)
	ch := r.store.commit(entityLead, event.OpCreate, lead.ID.String(), copyLead(lead))
	r.store.mu.Unlock()

	r.store.notify(ch)
	return nil
}

func (r *LeadRepository) Get(_ context.Context, id uuid.UUID) (*model.Lead, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	lead, ok := r.store.leads[id]
	if !ok {
		return nil, fmt.Errorf("lead %s: %w", id, repository.ErrNotFound)
	}
	return copyLead(lead), nil
}

func (r *LeadRepository) Update(_ context.Context, id uuid.UUID, req *model.UpdateLeadRequest) (*model.Lead, error) {
	r.store.mu.Lock()
	lead, ok := r.store.leads[id]
	if !ok {
		r.store.mu.Unlock()
		return nil, fmt.Errorf("lead %s: %w", id, repository.ErrNotFound)
	}

	applyUpdate(lead, req)
	lead.UpdatedAt = now()
	updated := copyLead(lead)
	ch := r.store.commit(entityLead, event.OpUpdate, id.String(), updated)
	r.store.mu.Unlock()

	r.store.notify(ch)
	return updated, nil
}

func (r *LeadRepository) UpdateStatus(_ context.Context, id uuid.UUID, status model.LeadStatus, entry model.TimelineEntry) (*model.Lead, error) {
	r.store.mu.Lock()
	lead, ok := r.store.leads[id]
	if !ok {
		r.store.mu.Unlock()
		return nil, fmt.Errorf("lead %s: %w", id, repository.ErrNotFound)
	}

	lead.Status = status
	lead.Timeline = append(lead.Timeline, entry)
	lead.UpdatedAt = now()
	updated := copyLead(lead)
	ch := r.store.commit(entityLead, event.OpStatusChange, id.String(), updated)
	r.store.mu.Unlock()

	r.store.notify(ch)
	return updated, nil
}

func (r *LeadRepository) AppendTimelineEntry(_ context.Context, id uuid.UUID, entry model.TimelineEntry) (*model.Lead, error) {
	r.store.mu.Lock()
	lead, ok := r.store.leads[id]
	if !ok {
		r.store.mu.Unlock()
		return nil, fmt.Errorf("lead %s: %w", id, repository.ErrNotFound)
	}

	lead.Timeline = append(lead.Timeline, entry)
	lead.UpdatedAt = now()
	updated := copyLead(lead)
	ch := r.store.commit(entityLead, event.OpTimelineAppend, id.String(), entry)
	r.store.mu.Unlock()

	r.store.notify(ch)
	return updated, nil
}

func (r *LeadRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	if _, ok := r.store.leads[id]; !ok {
		r.store.mu.Unlock()
		return fmt.Errorf("lead %s: %w", id, repository.ErrNotFound)
	}

	delete(r.store.leads, id)
	for i, oid := range r.store.leadOrder {
		if oid == id {
			r.store.leadOrder = append(r.store.leadOrder[:i], r.store.leadOrder[i+1:]...)
			break
		}
	}
	ch := r.store.commit(entityLead, event.OpDelete, id.String(), nil)
	r.store.mu.Unlock()

	r.store.notify(ch)
	return nil
}

// List returns a snapshot of leads, newest first, narrowed by the given
// filters. All predicates are conjunctive.
func (r *LeadRepository) List(_ context.Context, filters *model.LeadFilters) ([]*model.Lead, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	leads := make([]*model.Lead, 0, len(r.store.leadOrder))
	for _, id := range r.store.leadOrder {
		lead := r.store.leads[id]
		if filters != nil && !matches(lead, filters) {
			continue
		}
		leads = append(leads, copyLead(lead))
	}
	return leads, nil
}

func matches(lead *model.Lead, f *model.LeadFilters) bool {
	if model.FilterActive(f.Status) && string(lead.Status) != f.Status {
		return false
	}
	if model.FilterActive(f.Priority) && string(lead.Priority) != f.Priority {
		return false
	}
	if model.FilterActive(f.Source) && lead.LeadSource != f.Source {
		return false
	}
	if f.SearchTerm != "" {
		term := strings.ToLower(f.SearchTerm)
		if !strings.Contains(strings.ToLower(lead.FullName), term) &&
			!strings.Contains(strings.ToLower(lead.Company), term) &&
			!strings.Contains(strings.ToLower(lead.Email), term) {
			return false
		}
	}
	return true
}

func applyUpdate(lead *model.Lead, req *model.UpdateLeadRequest) {
	if req.FullName != nil {
		lead.FullName = *req.FullName
	}
	if req.Phone != nil {
		lead.Phone = *req.Phone
	}
	if req.Email != nil {
		lead.Email = *req.Email
	}
	if req.Company != nil {
		lead.Company = *req.Company
	}
	if req.LeadSource != nil {
		lead.LeadSource = *req.LeadSource
	}
	if req.ServiceInterestedIn != nil {
		lead.ServiceInterestedIn = *req.ServiceInterestedIn
	}
	if req.Priority != nil {
		lead.Priority = model.LeadPriority(*req.Priority)
	}
	if req.Status != nil {
		lead.Status = model.LeadStatus(*req.Status)
	}
	if req.AssignedTo != nil {
		lead.AssignedTo = *req.AssignedTo
	}
	if req.NextFollowUpDate != nil {
		d := *req.NextFollowUpDate
		lead.NextFollowUpDate = &d
	}
	if req.Notes != nil {
		lead.Notes = *req.Notes
	}
}
