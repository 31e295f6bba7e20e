package notification

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadtrackhq/leadtrack-api/internal/model"
	"github.com/leadtrackhq/leadtrack-api/internal/repository/memory"
	apperrors "github.com/leadtrackhq/leadtrack-api/pkg/errors"
)

var testNow = time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)

func newTestService(store *memory.Store) *service {
	return &service{
		repo:  memory.NewNotificationRepository(store),
		leads: memory.NewLeadRepository(store),
		now:   func() time.Time { return testNow },
	}
}

func addLead(t *testing.T, store *memory.Store, name string, status model.LeadStatus, followUp *model.Date) *model.Lead {
	t.Helper()
	lead := &model.Lead{
		ID:               uuid.New(),
		FullName:         name,
		Status:           status,
		NextFollowUpDate: followUp,
	}
	require.NoError(t, memory.NewLeadRepository(store).Create(context.Background(), lead))
	return lead
}

func datePtr(d model.Date) *model.Date { return &d }

func TestFeedDerivesFollowUpReminders(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store)

	overdue := addLead(t, store, "John Smith", model.LeadStatusContacted, datePtr(model.NewDate(2024, time.January, 14)))
	addLead(t, store, "Emily Davis", model.LeadStatusContacted, datePtr(model.NewDate(2024, time.January, 15)))
	addLead(t, store, "David Rodriguez", model.LeadStatusContacted, datePtr(model.NewDate(2024, time.January, 16)))
	addLead(t, store, "No Follow-up", model.LeadStatusContacted, nil)

	feed, err := svc.Feed(context.Background())
	require.NoError(t, err)
	require.Len(t, feed, 3)

	byID := make(map[string]*model.Notification)
	for _, n := range feed {
		byID[n.ID] = n
		assert.Equal(t, model.NotificationSourceDerived, n.Source)
		assert.False(t, n.Read)
	}

	o := byID[fmt.Sprintf("overdue-%s", overdue.ID)]
	require.NotNil(t, o)
	assert.Equal(t, "Overdue Follow-up", o.Title)
	assert.Equal(t, "Follow-up with John Smith was due Jan 14", o.Message)
	assert.Equal(t, model.NotificationPriorityHigh, o.Priority)

	var titles []string
	for _, n := range feed {
		titles = append(titles, n.Title)
	}
	assert.Contains(t, titles, "Follow-up Due Today")
	assert.Contains(t, titles, "Follow-up Due Tomorrow")
}

func TestFeedDerivesMeetingNotices(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store)

	lead := addLead(t, store, "John Smith", model.LeadStatusDemoScheduled, nil)
	addLead(t, store, "Emily Davis", model.LeadStatusNew, nil)

	feed, err := svc.Feed(context.Background())
	require.NoError(t, err)
	require.Len(t, feed, 1)

	n := feed[0]
	assert.Equal(t, fmt.Sprintf("meeting-%s", lead.ID), n.ID)
	assert.Equal(t, "Demo Scheduled", n.Title)
	assert.Equal(t, "demo scheduled with John Smith", n.Message)
}

func TestFeedMergesStoredNewestFirst(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store)

	addLead(t, store, "John Smith", model.LeadStatusContacted, datePtr(model.NewDate(2024, time.January, 14)))

	stored, err := svc.Add(context.Background(), &model.CreateNotificationRequest{
		Type:     "alert",
		Title:    "Quota reminder",
		Message:  "Q1 target review on Friday",
		Priority: "low",
	})
	require.NoError(t, err)

	feed, err := svc.Feed(context.Background())
	require.NoError(t, err)
	require.Len(t, feed, 2)

	// The stored entry is stamped "now"; the overdue reminder carries the
	// follow-up date, so the stored one sorts first.
	assert.Equal(t, stored.ID, feed[0].ID)
	assert.Equal(t, model.NotificationSourceStored, feed[0].Source)
}

func TestMarkAsReadDerivedIsNotFound(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store)

	lead := addLead(t, store, "John Smith", model.LeadStatusContacted, datePtr(model.NewDate(2024, time.January, 14)))

	err := svc.MarkAsRead(context.Background(), fmt.Sprintf("overdue-%s", lead.ID))
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMarkAsReadStored(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store)

	stored, err := svc.Add(context.Background(), &model.CreateNotificationRequest{
		Type:     "call",
		Title:    "Call back",
		Message:  "Return the call from Business Corp",
		Priority: "medium",
	})
	require.NoError(t, err)

	require.NoError(t, svc.MarkAsRead(context.Background(), stored.ID))

	feed, err := svc.Feed(context.Background())
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.True(t, feed[0].Read)
}

func TestClearAllLeavesDerived(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(store)

	addLead(t, store, "John Smith", model.LeadStatusContacted, datePtr(model.NewDate(2024, time.January, 14)))
	_, err := svc.Add(context.Background(), &model.CreateNotificationRequest{
		Type:     "alert",
		Title:    "Stored",
		Message:  "Stored message",
		Priority: "low",
	})
	require.NoError(t, err)

	require.NoError(t, svc.ClearAll(context.Background()))

	feed, err := svc.Feed(context.Background())
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, model.NotificationSourceDerived, feed[0].Source)
}
