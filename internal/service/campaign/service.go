package campaign

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leadtrackhq/leadtrack-api/internal/email"
	"github.com/leadtrackhq/leadtrack-api/internal/model"
	"github.com/leadtrackhq/leadtrack-api/internal/repository"
	apperrors "github.com/leadtrackhq/leadtrack-api/pkg/errors"
	"github.com/leadtrackhq/leadtrack-api/pkg/logger"
	"github.com/leadtrackhq/leadtrack-api/pkg/metrics"
)

type Service interface {
	Templates() []model.EmailTemplate
	PreviewRecipients(ctx context.Context, filters *model.CampaignFilters) ([]*model.Lead, error)
	Create(ctx context.Context, req *model.CreateCampaignRequest) (*model.Campaign, error)
	List(ctx context.Context) ([]*model.Campaign, error)
	DispatchDue(ctx context.Context) (int, error)
}

type service struct {
	repo    repository.CampaignRepository
	leads   repository.LeadRepository
	sender  email.Service
	logger  *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(repo repository.CampaignRepository, leads repository.LeadRepository, sender email.Service, logger *logger.Logger, m *metrics.Metrics) Service {
	return &service{
		repo:    repo,
		leads:   leads,
		sender:  sender,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

var builtinTemplates = []model.EmailTemplate{
	{
		ID:      "welcome",
		Name:    "Welcome Email",
		Subject: "Welcome to {Company}!",
		Content: "<h2>Welcome {FirstName}!</h2>\n" +
			"<p>Thank you for your interest in our services. We're excited to help you achieve your goals.</p>\n" +
			"<p>Our team will be in touch soon to discuss how we can best serve you.</p>\n" +
			"<p>Best regards,<br>The Sales Team</p>",
	},
	{
		ID:      "followup",
		Name:    "Follow-up Email",
		Subject: "Following up on our conversation",
		Content: "<h2>Hi {FirstName},</h2>\n" +
			"<p>I wanted to follow up on our recent conversation about {Service}.</p>\n" +
			"<p>Do you have any questions about our proposal? I'd be happy to schedule a call to discuss further.</p>\n" +
			"<p>Best regards,<br>{SalesRep}</p>",
	},
	{
		ID:      "demo",
		Name:    "Demo Invitation",
		Subject: "Ready to see {Service} in action?",
		Content: "<h2>Hi {FirstName},</h2>\n" +
			"<p>Based on our conversation, I think you'd benefit from seeing {Service} in action.</p>\n" +
			"<p>Would you be interested in a personalized demo? I have availability this week.</p>\n" +
			"<p>Let me know what works best for your schedule.</p>\n" +
			"<p>Best regards,<br>{SalesRep}</p>",
	},
}

func (s *service) Templates() []model.EmailTemplate {
	out := make([]model.EmailTemplate, len(builtinTemplates))
	copy(out, builtinTemplates)
	return out
}

// PreviewRecipients resolves the leads a campaign with the given filters
// would address. Filters are conjunctive; "all" leaves one inactive.
func (s *service) PreviewRecipients(ctx context.Context, filters *model.CampaignFilters) ([]*model.Lead, error) {
	leads, err := s.leads.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	var out []*model.Lead
	for _, lead := range leads {
		if matchesFilters(lead, filters) {
			out = append(out, lead)
		}
	}
	return out, nil
}

// Create records a campaign and sends it, either immediately or by
// leaving it for the dispatch worker once the schedule time arrives.
func (s *service) Create(ctx context.Context, req *model.CreateCampaignRequest) (*model.Campaign, error) {
	subject, content, err := s.resolveContent(req)
	if err != nil {
		return nil, err
	}

	recipients, err := s.PreviewRecipients(ctx, &req.Filters)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, apperrors.BadRequest("no recipients match the selected filters", nil)
	}

	nowTime := s.now()
	c := &model.Campaign{
		ID:         uuid.New(),
		Name:       subject,
		Subject:    subject,
		Content:    content,
		Recipients: len(recipients),
		Filters:    req.Filters,
		OpenRate:   "-",
		ClickRate:  "-",
		CreatedAt:  nowTime,
	}

	if req.Schedule == "now" {
		sent := model.DateOf(nowTime)
		c.Status = model.CampaignStatusSent
		c.SentDate = &sent
		c.OpenRate = "0%"
		c.ClickRate = "0%"
		s.deliver(ctx, c, recipients)
		if s.metrics != nil {
			s.metrics.CampaignsSent.Inc()
		}
	} else {
		at, err := scheduleTime(req)
		if err != nil {
			return nil, err
		}
		c.Status = model.CampaignStatusScheduled
		c.ScheduledDate = req.ScheduleDate
		c.ScheduledAt = &at
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to record campaign: %w", err)
	}

	s.logger.Info("campaign created", "campaign_id", c.ID.String(), "status", string(c.Status), "recipients", c.Recipients)
	return c, nil
}

func (s *service) List(ctx context.Context) ([]*model.Campaign, error) {
	campaigns, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

// DispatchDue sends every scheduled campaign whose time has passed and
// flips it to sent. Called periodically by the campaign worker.
func (s *service) DispatchDue(ctx context.Context) (int, error) {
	due, err := s.repo.ListDue(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list due campaigns: %w", err)
	}

	dispatched := 0
	for _, c := range due {
		recipients, err := s.PreviewRecipients(ctx, &c.Filters)
		if err != nil {
			return dispatched, err
		}
		s.deliver(ctx, c, recipients)

		sent := model.DateOf(s.now())
		c.Status = model.CampaignStatusSent
		c.SentDate = &sent
		c.Recipients = len(recipients)
		c.OpenRate = "0%"
		c.ClickRate = "0%"
		if err := s.repo.Update(ctx, c); err != nil {
			return dispatched, fmt.Errorf("failed to update campaign %s: %w", c.ID, err)
		}

		dispatched++
		if s.metrics != nil {
			s.metrics.CampaignsDispatched.Inc()
		}
		s.logger.Info("scheduled campaign dispatched", "campaign_id", c.ID.String(), "recipients", len(recipients))
	}
	return dispatched, nil
}

// deliver renders the campaign per recipient and hands each message to
// the sender. Individual failures are logged and counted, not fatal: a
// campaign is not rolled back halfway through.
func (s *service) deliver(ctx context.Context, c *model.Campaign, recipients []*model.Lead) {
	for _, lead := range recipients {
		subject := render(c.Subject, lead)
		content := render(c.Content, lead)
		if err := s.sender.Send(ctx, lead.Email, subject, content); err != nil {
			s.logger.Error(err, "campaign email failed", "campaign_id", c.ID.String(), "lead_id", lead.ID.String())
			if s.metrics != nil {
				s.metrics.CampaignSendFailed.Inc()
			}
			continue
		}
		if s.metrics != nil {
			s.metrics.CampaignEmailsSent.Inc()
		}
	}
}

func (s *service) resolveContent(req *model.CreateCampaignRequest) (subject, content string, err error) {
	subject, content = req.Subject, req.Content
	if req.Template != "" {
		tmpl, ok := templateByID(req.Template)
		if !ok {
			return "", "", apperrors.BadRequest(fmt.Sprintf("unknown template %q", req.Template), nil)
		}
		if subject == "" {
			subject = tmpl.Subject
		}
		if content == "" {
			content = tmpl.Content
		}
	}
	if subject == "" || content == "" {
		return "", "", apperrors.BadRequest("subject and content are required", nil)
	}
	return subject, content, nil
}

func templateByID(id string) (model.EmailTemplate, bool) {
	for _, t := range builtinTemplates {
		if t.ID == id {
			return t, true
		}
	}
	return model.EmailTemplate{}, false
}

func scheduleTime(req *model.CreateCampaignRequest) (time.Time, error) {
	if req.ScheduleDate == nil {
		return time.Time{}, apperrors.BadRequest("schedule_date is required for scheduled campaigns", nil)
	}
	at := req.ScheduleDate.Time
	if req.ScheduleTime != "" {
		clock, err := time.Parse("15:04", req.ScheduleTime)
		if err != nil {
			return time.Time{}, apperrors.BadRequest("invalid schedule_time, expected HH:MM", err)
		}
		at = at.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
	}
	return at, nil
}

func matchesFilters(lead *model.Lead, f *model.CampaignFilters) bool {
	if f == nil {
		return true
	}
	if model.FilterActive(f.Status) && string(lead.Status) != f.Status {
		return false
	}
	if model.FilterActive(f.Source) && lead.LeadSource != f.Source {
		return false
	}
	if model.FilterActive(f.Service) && lead.ServiceInterestedIn != f.Service {
		return false
	}
	return true
}

// render substitutes recipient placeholders in campaign text.
func render(text string, lead *model.Lead) string {
	first := lead.FullName
	if i := strings.IndexByte(first, ' '); i > 0 {
		first = first[:i]
	}
	r := strings.NewReplacer(
		"{FirstName}", first,
		"{Name}", lead.FullName,
		"{Company}", lead.Company,
		"{Service}", lead.ServiceInterestedIn,
		"{SalesRep}", lead.AssignedTo,
	)
	return r.Replace(text)
}
