package meeting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/leadtrackhq/leadtrack-api/internal/model"
	"github.com/leadtrackhq/leadtrack-api/internal/repository"
	apperrors "github.com/leadtrackhq/leadtrack-api/pkg/errors"
	"github.com/leadtrackhq/leadtrack-api/pkg/logger"
)

// Scheduled meeting details are not a stored entity; they survive as a
// timeline entry plus the lead's status. The TTL cache keeps the full
// details (and the generated link) around so the meeting list can show
// them and a reschedule inside the window reuses the same link.
const (
	detailsTTL      = 24 * time.Hour
	cleanupInterval = time.Hour
)

type Service interface {
	Schedule(ctx context.Context, req *model.ScheduleMeetingRequest) (*model.Meeting, error)
	ListScheduled(ctx context.Context) ([]*model.Meeting, error)
}

type service struct {
	leads   repository.LeadRepository
	details *cache.Cache
	logger  *logger.Logger
	now     func() time.Time
}

func NewService(leads repository.LeadRepository, logger *logger.Logger) Service {
	return &service{
		leads:   leads,
		details: cache.New(detailsTTL, cleanupInterval),
		logger:  logger,
		now:     time.Now,
	}
}

// Schedule books a demo or meeting with a lead: it resolves the meeting
// link for online meetings, appends one meeting-type timeline entry and
// moves the lead into the matching scheduled status. The status change is
// a plain field update, so no extra status entry is written.
func (s *service) Schedule(ctx context.Context, req *model.ScheduleMeetingRequest) (*model.Meeting, error) {
	leadID, err := uuid.Parse(req.LeadID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid lead ID", err)
	}

	lead, err := s.leads.Get(ctx, leadID)
	if err != nil {
		return nil, s.wrap(err)
	}

	kind := model.MeetingKind(req.Kind)
	link := req.MeetingLink
	if req.Online && link == "" {
		link = s.linkFor(leadID)
	}

	mode := "Offline"
	if req.Online {
		mode = "Online"
	}
	entry := model.TimelineEntry{
		ID:          uuid.New(),
		Type:        model.TimelineEntryMeeting,
		Title:       meetingTitle(kind),
		Description: fmt.Sprintf("%s %s scheduled for %s at %s", mode, req.Kind, req.Date.Format("Jan 02, 2006"), req.Time),
		Date:        s.now(),
		User:        userOrSystem(req.User),
	}
	if _, err := s.leads.AppendTimelineEntry(ctx, leadID, entry); err != nil {
		return nil, s.wrap(err)
	}

	status := string(statusFor(kind))
	if _, err := s.leads.Update(ctx, leadID, &model.UpdateLeadRequest{Status: &status}); err != nil {
		return nil, s.wrap(err)
	}

	meeting := &model.Meeting{
		LeadID:      leadID,
		LeadName:    lead.FullName,
		Company:     lead.Company,
		Kind:        kind,
		Online:      req.Online,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		MeetingLink: link,
		Status:      statusFor(kind),
	}
	s.details.Set(leadID.String(), meeting, cache.DefaultExpiration)

	s.logger.Info("meeting scheduled", "lead_id", leadID.String(), "kind", req.Kind, "online", req.Online)
	return meeting, nil
}

// ListScheduled derives the meeting list from leads in a scheduled
// status, enriched with cached details when the booking is recent enough.
func (s *service) ListScheduled(ctx context.Context) ([]*model.Meeting, error) {
	leads, err := s.leads.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	var out []*model.Meeting
	for _, lead := range leads {
		if lead.Status != model.LeadStatusDemoScheduled && lead.Status != model.LeadStatusMeetingScheduled {
			continue
		}
		if cached, ok := s.details.Get(lead.ID.String()); ok {
			out = append(out, cached.(*model.Meeting))
			continue
		}

		kind := model.MeetingKindMeeting
		if lead.Status == model.LeadStatusDemoScheduled {
			kind = model.MeetingKindDemo
		}
		m := &model.Meeting{
			LeadID:   lead.ID,
			LeadName: lead.FullName,
			Company:  lead.Company,
			Kind:     kind,
			Status:   lead.Status,
		}
		if lead.NextFollowUpDate != nil {
			m.Date = *lead.NextFollowUpDate
		}
		out = append(out, m)
	}
	return out, nil
}

// linkFor reuses the link from a cached booking for the same lead before
// minting a new one.
func (s *service) linkFor(leadID uuid.UUID) string {
	if cached, ok := s.details.Get(leadID.String()); ok {
		if m := cached.(*model.Meeting); m.MeetingLink != "" {
			return m.MeetingLink
		}
	}
	return generateMeetLink()
}

func generateMeetLink() string {
	s := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("https://meet.google.com/%s-%s-%s", s[0:3], s[3:7], s[7:10])
}

func meetingTitle(kind model.MeetingKind) string {
	if kind == model.MeetingKindDemo {
		return "Demo Scheduled"
	}
	return "Meeting Scheduled"
}

func statusFor(kind model.MeetingKind) model.LeadStatus {
	if kind == model.MeetingKindDemo {
		return model.LeadStatusDemoScheduled
	}
	return model.LeadStatusMeetingScheduled
}

func (s *service) wrap(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("lead", err)
	}
	return err
}

func userOrSystem(user string) string {
	if user == "" {
		return "System"
	}
	return user
}
