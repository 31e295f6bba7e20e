package memory

import (
	"context"
	"fmt"

	"github.com/leadtrackhq/leadtrack-api/internal/model"
	"github.com/leadtrackhq/leadtrack-api/internal/repository"
	"github.com/leadtrackhq/leadtrack-api/pkg/event"
)

const entityCampaign = "campaign"

type CampaignRepository struct {
	store *Store
}

func NewCampaignRepository(store *Store) *CampaignRepository {
	return &CampaignRepository{store: store}
}

func (r *CampaignRepository) Create(_ context.Context, c *model.Campaign) error {
	r.store.mu.Lock()
	r.store.campaigns = append([]*model.Campaign{copyCampaign(c)}, r.store.campaigns...)
	ch := r.store.commit(entityCampaign, event.OpCreate, c.ID.String(), copyCampaign(c))
	r.store.mu.Unlock()

	r.store.notify(ch)
	return nil
}

func (r *CampaignRepository) Update(_ context.Context, c *model.Campaign) error {
	r.store.mu.Lock()
	for i, existing := range r.store.campaigns {
		if existing.ID == c.ID {
			r.store.campaigns[i] = copyCampaign(c)
			ch := r.store.commit(entityCampaign, event.OpUpdate, c.ID.String(), copyCampaign(c))
			r.store.mu.Unlock()
			r.store.notify(ch)
			return nil
		}
	}
	r.store.mu.Unlock()
	return fmt.Errorf("campaign %s: %w", c.ID, repository.ErrNotFound)
}

func (r *CampaignRepository) List(_ context.Context) ([]*model.Campaign, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*model.Campaign, 0, len(r.store.campaigns))
	for _, c := range r.store.campaigns {
		out = append(out, copyCampaign(c))
	}
	return out, nil
}

// ListDue returns scheduled campaigns whose dispatch time has passed.
func (r *CampaignRepository) ListDue(_ context.Context) ([]*model.Campaign, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var due []*model.Campaign
	cutoff := now()
	for _, c := range r.store.campaigns {
		if c.Status != model.CampaignStatusScheduled || c.ScheduledAt == nil {
			continue
		}
		if c.ScheduledAt.After(cutoff) {
			continue
		}
		due = append(due, copyCampaign(c))
	}
	return due, nil
}
