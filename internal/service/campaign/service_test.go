package campaign

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadtrackhq/leadtrack-api/internal/model"
	"github.com/leadtrackhq/leadtrack-api/internal/repository/memory"
	apperrors "github.com/leadtrackhq/leadtrack-api/pkg/errors"
	"github.com/leadtrackhq/leadtrack-api/pkg/logger"
)

type sentEmail struct {
	To      string
	Subject string
	Content string
}

type captureSender struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (c *captureSender) Send(_ context.Context, to, subject, content string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, sentEmail{To: to, Subject: subject, Content: content})
	return nil
}

var testNow = time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)

func newTestService(store *memory.Store, sender *captureSender) *service {
	return &service{
		repo:   memory.NewCampaignRepository(store),
		leads:  memory.NewLeadRepository(store),
		sender: sender,
		logger: logger.NewLogger(nil),
		now:    func() time.Time { return testNow },
	}
}

func addLead(t *testing.T, store *memory.Store, name, email, company string, status model.LeadStatus) *model.Lead {
	t.Helper()
	lead := &model.Lead{
		ID:                  uuid.New(),
		FullName:            name,
		Email:               email,
		Company:             company,
		LeadSource:          "Website",
		ServiceInterestedIn: "Software Development",
		Status:              status,
		AssignedTo:          "Sarah Johnson",
	}
	require.NoError(t, memory.NewLeadRepository(store).Create(context.Background(), lead))
	return lead
}

func TestTemplates(t *testing.T) {
	svc := newTestService(memory.NewStore(), &captureSender{})

	templates := svc.Templates()
	require.Len(t, templates, 3)

	ids := make(map[string]bool)
	for _, tmpl := range templates {
		ids[tmpl.ID] = true
		assert.NotEmpty(t, tmpl.Subject)
		assert.NotEmpty(t, tmpl.Content)
	}
	assert.True(t, ids["welcome"])
	assert.True(t, ids["followup"])
	assert.True(t, ids["demo"])
}

func TestPreviewRecipientsFilters(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store, &captureSender{})

	addLead(t, store, "John Smith", "john@techsolutions.com", "Tech Solutions Inc.", model.LeadStatusContacted)
	referral := addLead(t, store, "Emily Davis", "emily@businesscorp.com", "Business Corp", model.LeadStatusContacted)
	referral.LeadSource = "Referral"
	_, err := memory.NewLeadRepository(store).Update(context.Background(), referral.ID, &model.UpdateLeadRequest{LeadSource: &referral.LeadSource})
	require.NoError(t, err)
	addLead(t, store, "David Rodriguez", "david@startup.com", "Startup Venture", model.LeadStatusNew)

	all, err := svc.PreviewRecipients(context.Background(), &model.CampaignFilters{Status: "all", Source: "all", Service: "all"})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	contacted, err := svc.PreviewRecipients(context.Background(), &model.CampaignFilters{Status: "Contacted"})
	require.NoError(t, err)
	assert.Len(t, contacted, 2)

	both, err := svc.PreviewRecipients(context.Background(), &model.CampaignFilters{Status: "Contacted", Source: "Referral"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "Emily Davis", both[0].FullName)
}

func TestCreateSendsImmediately(t *testing.T) {
	store := memory.NewStore()
	sender := &captureSender{}
	svc := newTestService(store, sender)

	addLead(t, store, "John Smith", "john@techsolutions.com", "Tech Solutions Inc.", model.LeadStatusContacted)

	c, err := svc.Create(context.Background(), &model.CreateCampaignRequest{
		Subject:  "Hello {FirstName}",
		Content:  "<p>{Name} at {Company}, about {Service}. - {SalesRep}</p>",
		Schedule: "now",
	})
	require.NoError(t, err)

	assert.Equal(t, model.CampaignStatusSent, c.Status)
	require.NotNil(t, c.SentDate)
	assert.Equal(t, "2024-01-15", c.SentDate.String())
	assert.Equal(t, 1, c.Recipients)
	assert.Equal(t, "0%", c.OpenRate)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "john@techsolutions.com", msg.To)
	assert.Equal(t, "Hello John", msg.Subject)
	assert.Equal(t, "<p>John Smith at Tech Solutions Inc., about Software Development. - Sarah Johnson</p>", msg.Content)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)
}

func TestCreateFromTemplate(t *testing.T) {
	store := memory.NewStore()
	sender := &captureSender{}
	svc := newTestService(store, sender)

	addLead(t, store, "John Smith", "john@techsolutions.com", "Tech Solutions Inc.", model.LeadStatusContacted)

	c, err := svc.Create(context.Background(), &model.CreateCampaignRequest{
		Template: "followup",
		Schedule: "now",
	})
	require.NoError(t, err)

	assert.Equal(t, "Following up on our conversation", c.Subject)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].Content, "Hi John,")
	assert.Contains(t, sender.sent[0].Content, "Software Development")
	assert.Contains(t, sender.sent[0].Content, "Sarah Johnson")
}

func TestCreateUnknownTemplate(t *testing.T) {
	svc := newTestService(memory.NewStore(), &captureSender{})

	_, err := svc.Create(context.Background(), &model.CreateCampaignRequest{
		Template: "holiday",
		Schedule: "now",
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestCreateNoRecipients(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store, &captureSender{})

	addLead(t, store, "John Smith", "john@techsolutions.com", "Tech Solutions Inc.", model.LeadStatusNew)

	_, err := svc.Create(context.Background(), &model.CreateCampaignRequest{
		Subject:  "Hello",
		Content:  "Body",
		Filters:  model.CampaignFilters{Status: "Converted"},
		Schedule: "now",
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestCreateScheduledAndDispatch(t *testing.T) {
	store := memory.NewStore()
	sender := &captureSender{}
	svc := newTestService(store, sender)

	addLead(t, store, "John Smith", "john@techsolutions.com", "Tech Solutions Inc.", model.LeadStatusContacted)

	date := model.NewDate(2024, time.January, 15)
	c, err := svc.Create(context.Background(), &model.CreateCampaignRequest{
		Subject:      "Scheduled blast",
		Content:      "Body",
		Schedule:     "scheduled",
		ScheduleDate: &date,
		ScheduleTime: "09:30",
	})
	require.NoError(t, err)

	assert.Equal(t, model.CampaignStatusScheduled, c.Status)
	require.NotNil(t, c.ScheduledAt)
	assert.Equal(t, time.Date(2024, time.January, 15, 9, 30, 0, 0, time.UTC), *c.ScheduledAt)
	assert.Empty(t, sender.sent)

	// The schedule time is before the pinned clock, so the campaign is due.
	dispatched, err := svc.DispatchDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, dispatched)
	assert.Len(t, sender.sent, 1)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.CampaignStatusSent, list[0].Status)
	require.NotNil(t, list[0].SentDate)

	// Nothing left to dispatch.
	dispatched, err = svc.DispatchDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, dispatched)
}

func TestCreateScheduledRequiresDate(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store, &captureSender{})

	addLead(t, store, "John Smith", "john@techsolutions.com", "Tech Solutions Inc.", model.LeadStatusContacted)

	_, err := svc.Create(context.Background(), &model.CreateCampaignRequest{
		Subject:  "Scheduled blast",
		Content:  "Body",
		Schedule: "scheduled",
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}
