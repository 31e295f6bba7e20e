package lead

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/leadtrackhq/leadtrack-api/internal/model"
	"github.com/leadtrackhq/leadtrack-api/internal/repository"
	apperrors "github.com/leadtrackhq/leadtrack-api/pkg/errors"
	"github.com/leadtrackhq/leadtrack-api/pkg/logger"
)

// systemUser authors the synthetic timeline entries the service writes on
// behalf of store operations.
const systemUser = "System"

type Service interface {
	CreateLead(ctx context.Context, req *model.CreateLeadRequest) (*model.Lead, error)
	GetLead(ctx context.Context, id uuid.UUID) (*model.Lead, error)
	ListLeads(ctx context.Context, filters *model.LeadFilters) ([]*model.Lead, error)
	UpdateLead(ctx context.Context, id uuid.UUID, req *model.UpdateLeadRequest) (*model.Lead, error)
	DeleteLead(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.LeadStatus) (*model.Lead, error)
	AddTimelineEntry(ctx context.Context, id uuid.UUID, req *model.AddTimelineEntryRequest) (*model.Lead, error)

	ListFollowUps(ctx context.Context, due model.FollowUpDue) ([]*model.Lead, error)
	RescheduleFollowUp(ctx context.Context, id uuid.UUID, req *model.RescheduleFollowUpRequest) (*model.Lead, error)
	CompleteFollowUp(ctx context.Context, id uuid.UUID, req *model.CompleteFollowUpRequest) (*model.Lead, error)
}

type service struct {
	repo   repository.LeadRepository
	logger *logger.Logger
	now    func() time.Time
}

func NewService(repo repository.LeadRepository, logger *logger.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *service) CreateLead(ctx context.Context, req *model.CreateLeadRequest) (*model.Lead, error) {
	nowTime := s.now()

	lead := &model.Lead{
		ID:                  uuid.New(),
		FullName:            req.FullName,
		Phone:               req.Phone,
		Email:               req.Email,
		Company:             req.Company,
		LeadSource:          req.LeadSource,
		ServiceInterestedIn: req.ServiceInterestedIn,
		Priority:            model.LeadPriority(req.Priority),
		Status:              model.LeadStatus(req.Status),
		AssignedTo:          req.AssignedTo,
		FirstContactDate:    model.DateOf(nowTime),
		NextFollowUpDate:    req.NextFollowUpDate,
		Notes:               req.Notes,
		Timeline: []model.TimelineEntry{
			{
				ID:          uuid.New(),
				Type:        model.TimelineEntryLead,
				Title:       "Lead Created",
				Description: "New lead added to the system.",
				Date:        nowTime,
				User:        systemUser,
			},
		},
		CreatedAt: nowTime,
		UpdatedAt: nowTime,
	}

	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	s.logger.Info("lead created", "lead_id", lead.ID.String(), "company", lead.Company)
	return lead, nil
}

func (s *service) GetLead(ctx context.Context, id uuid.UUID) (*model.Lead, error) {
	lead, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, s.wrap(err, "failed to get lead")
	}
	return lead, nil
}

func (s *service) ListLeads(ctx context.Context, filters *model.LeadFilters) ([]*model.Lead, error) {
	leads, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return leads, nil
}

func (s *service) UpdateLead(ctx context.Context, id uuid.UUID, req *model.UpdateLeadRequest) (*model.Lead, error) {
	lead, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, s.wrap(err, "failed to update lead")
	}
	return lead, nil
}

func (s *service) DeleteLead(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.wrap(err, "failed to delete lead")
	}
	s.logger.Info("lead deleted", "lead_id", id.String())
	return nil
}

// UpdateStatus sets the lead's status and records exactly one status-type
// timeline entry describing the transition.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status model.LeadStatus) (*model.Lead, error) {
	entry := model.TimelineEntry{
		ID:          uuid.New(),
		Type:        model.TimelineEntryStatus,
		Title:       "Status Updated",
		Description: fmt.Sprintf("Status changed to %s", status),
		Date:        s.now(),
		User:        systemUser,
	}

	lead, err := s.repo.UpdateStatus(ctx, id, status, entry)
	if err != nil {
		return nil, s.wrap(err, "failed to update lead status")
	}
	return lead, nil
}

func (s *service) AddTimelineEntry(ctx context.Context, id uuid.UUID, req *model.AddTimelineEntryRequest) (*model.Lead, error) {
	entry := model.TimelineEntry{
		ID:          uuid.New(),
		Type:        model.TimelineEntryType(req.Type),
		Title:       req.Title,
		Description: req.Description,
		Date:        s.now(),
		User:        req.User,
	}

	lead, err := s.repo.AppendTimelineEntry(ctx, id, entry)
	if err != nil {
		return nil, s.wrap(err, "failed to append timeline entry")
	}
	return lead, nil
}

// ListFollowUps returns leads that have a follow-up date, bucketed by due
// state and sorted soonest first.
func (s *service) ListFollowUps(ctx context.Context, due model.FollowUpDue) ([]*model.Lead, error) {
	leads, err := s.repo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	nowTime := s.now()
	var out []*model.Lead
	for _, lead := range leads {
		if lead.NextFollowUpDate == nil {
			continue
		}
		d := *lead.NextFollowUpDate
		switch due {
		case model.FollowUpDueToday:
			if !d.SameDay(nowTime) {
				continue
			}
		case model.FollowUpDueOverdue:
			if !d.BeforeDay(nowTime) {
				continue
			}
		case model.FollowUpDueUpcoming:
			if !d.AfterDay(nowTime) {
				continue
			}
		}
		out = append(out, lead)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NextFollowUpDate.Time.Before(out[j].NextFollowUpDate.Time)
	})
	return out, nil
}

func (s *service) RescheduleFollowUp(ctx context.Context, id uuid.UUID, req *model.RescheduleFollowUpRequest) (*model.Lead, error) {
	date := req.Date
	if _, err := s.repo.Update(ctx, id, &model.UpdateLeadRequest{NextFollowUpDate: &date}); err != nil {
		return nil, s.wrap(err, "failed to reschedule follow-up")
	}

	entry := model.TimelineEntry{
		ID:          uuid.New(),
		Type:        model.TimelineEntryFollowUp,
		Title:       "Follow-up Rescheduled",
		Description: fmt.Sprintf("Follow-up rescheduled to %s", date.Format("Jan 02, 2006")),
		Date:        s.now(),
		User:        userOrSystem(req.User),
	}

	lead, err := s.repo.AppendTimelineEntry(ctx, id, entry)
	if err != nil {
		return nil, s.wrap(err, "failed to record reschedule")
	}
	return lead, nil
}

// CompleteFollowUp logs the completed call and pushes the next follow-up
// out a week.
func (s *service) CompleteFollowUp(ctx context.Context, id uuid.UUID, req *model.CompleteFollowUpRequest) (*model.Lead, error) {
	description := req.Notes
	if description == "" {
		description = "Follow-up call completed"
	}

	entry := model.TimelineEntry{
		ID:          uuid.New(),
		Type:        model.TimelineEntryFollowUp,
		Title:       "Follow-up Completed",
		Description: description,
		Date:        s.now(),
		User:        userOrSystem(req.User),
	}

	if _, err := s.repo.AppendTimelineEntry(ctx, id, entry); err != nil {
		return nil, s.wrap(err, "failed to record follow-up completion")
	}

	next := model.DateOf(s.now()).AddDays(7)
	lead, err := s.repo.Update(ctx, id, &model.UpdateLeadRequest{NextFollowUpDate: &next})
	if err != nil {
		return nil, s.wrap(err, "failed to schedule next follow-up")
	}
	return lead, nil
}

func (s *service) wrap(err error, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("lead", err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func userOrSystem(user string) string {
	if user == "" {
		return systemUser
	}
	return user
}
