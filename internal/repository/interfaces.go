package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/leadtrackhq/leadtrack-api/internal/model"
)

// ErrNotFound is returned by every repository when the requested record
// does not exist. Mutations against missing identifiers fail loudly
// instead of no-opping.
var ErrNotFound = errors.New("record not found")

type LeadRepository interface {
	Create(ctx context.Context, lead *model.Lead) error
	Get(ctx context.Context, id uuid.UUID) (*model.Lead, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateLeadRequest) (*model.Lead, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.LeadStatus, entry model.TimelineEntry) (*model.Lead, error)
	AppendTimelineEntry(ctx context.Context, id uuid.UUID, entry model.TimelineEntry) (*model.Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filters *model.LeadFilters) ([]*model.Lead, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	List(ctx context.Context) ([]*model.Notification, error)
	MarkAsRead(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

type CampaignRepository interface {
	Create(ctx context.Context, c *model.Campaign) error
	Update(ctx context.Context, c *model.Campaign) error
	List(ctx context.Context) ([]*model.Campaign, error)
	ListDue(ctx context.Context) ([]*model.Campaign, error)
}
