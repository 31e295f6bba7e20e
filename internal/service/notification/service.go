package notification

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leadtrackhq/leadtrack-api/internal/model"
	"github.com/leadtrackhq/leadtrack-api/internal/repository"
	apperrors "github.com/leadtrackhq/leadtrack-api/pkg/errors"
	"github.com/leadtrackhq/leadtrack-api/pkg/metrics"
)

type Service interface {
	Feed(ctx context.Context) ([]*model.Notification, error)
	Add(ctx context.Context, req *model.CreateNotificationRequest) (*model.Notification, error)
	MarkAsRead(ctx context.Context, id string) error
	ClearAll(ctx context.Context) error
}

type service struct {
	repo    repository.NotificationRepository
	leads   repository.LeadRepository
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(repo repository.NotificationRepository, leads repository.LeadRepository, m *metrics.Metrics) Service {
	return &service{
		repo:    repo,
		leads:   leads,
		metrics: m,
		now:     time.Now,
	}
}

// Feed combines notifications derived from current lead state with the
// stored list, newest first. Derived entries are rebuilt on every call
// and never persisted; their IDs are deterministic (kind + lead ID) so
// consecutive reads yield stable keys.
func (s *service) Feed(ctx context.Context) ([]*model.Notification, error) {
	stored, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	leads, err := s.leads.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	derived := s.derive(leads)
	if s.metrics != nil {
		s.metrics.NotificationsDerived.Add(float64(len(derived)))
		s.metrics.NotificationsStored.Set(float64(len(stored)))
	}

	all := append(derived, stored...)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp.After(all[j].Timestamp)
	})
	return all, nil
}

// derive synthesizes follow-up reminders and meeting notices from lead
// state. Overdue is judged by calendar day: a follow-up due earlier today
// is "due today", not overdue.
func (s *service) derive(leads []*model.Lead) []*model.Notification {
	nowTime := s.now()
	tomorrow := nowTime.AddDate(0, 0, 1)

	var out []*model.Notification
	for _, lead := range leads {
		d := lead.NextFollowUpDate
		if d == nil {
			continue
		}
		switch {
		case d.BeforeDay(nowTime):
			out = append(out, s.followUpNotification(lead, "overdue", "Overdue Follow-up",
				fmt.Sprintf("Follow-up with %s was due %s", lead.FullName, d.Format("Jan 02")),
				model.NotificationPriorityHigh))
		case d.SameDay(nowTime):
			out = append(out, s.followUpNotification(lead, "today", "Follow-up Due Today",
				fmt.Sprintf("Follow-up with %s is due today", lead.FullName),
				model.NotificationPriorityHigh))
		case d.SameDay(tomorrow):
			out = append(out, s.followUpNotification(lead, "tomorrow", "Follow-up Due Tomorrow",
				fmt.Sprintf("Follow-up with %s is due tomorrow", lead.FullName),
				model.NotificationPriorityMedium))
		}
	}

	for _, lead := range leads {
		if lead.Status != model.LeadStatusDemoScheduled && lead.Status != model.LeadStatusMeetingScheduled {
			continue
		}
		out = append(out, &model.Notification{
			ID:        fmt.Sprintf("meeting-%s", lead.ID),
			Type:      model.NotificationTypeDemo,
			Title:     string(lead.Status),
			Message:   fmt.Sprintf("%s with %s", strings.ToLower(string(lead.Status)), lead.FullName),
			Priority:  model.NotificationPriorityMedium,
			Timestamp: nowTime,
			Source:    model.NotificationSourceDerived,
			LeadID:    lead.ID.String(),
			LeadName:  lead.FullName,
		})
	}
	return out
}

func (s *service) followUpNotification(lead *model.Lead, kind, title, message string, priority model.NotificationPriority) *model.Notification {
	return &model.Notification{
		ID:        fmt.Sprintf("%s-%s", kind, lead.ID),
		Type:      model.NotificationTypeFollowUp,
		Title:     title,
		Message:   message,
		Priority:  priority,
		Timestamp: lead.NextFollowUpDate.Time,
		Source:    model.NotificationSourceDerived,
		LeadID:    lead.ID.String(),
		LeadName:  lead.FullName,
	}
}

func (s *service) Add(ctx context.Context, req *model.CreateNotificationRequest) (*model.Notification, error) {
	n := &model.Notification{
		ID:        uuid.NewString(),
		Type:      model.NotificationType(req.Type),
		Title:     req.Title,
		Message:   req.Message,
		Priority:  model.NotificationPriority(req.Priority),
		Timestamp: s.now(),
		Source:    model.NotificationSourceStored,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return n, nil
}

// MarkAsRead flips the read flag on a stored notification. Derived IDs
// are rejected as not-found; the derived feed has no read state at all.
func (s *service) MarkAsRead(ctx context.Context, id string) error {
	if err := s.repo.MarkAsRead(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("notification", err)
		}
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return nil
}

// ClearAll empties the stored list only; derived notifications reappear
// as long as the lead state that produces them persists.
func (s *service) ClearAll(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear notifications: %w", err)
	}
	return nil
}
