package memory

import (
	"time"

	"github.com/google/uuid"

	"github.com/leadtrackhq/leadtrack-api/internal/model"
)

// Seed loads the demo dataset: three leads in different pipeline stages
// and two stored notifications. Seeding happens before the server accepts
// traffic, so no change events are emitted.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	leads := seedLeads()
	for _, lead := range leads {
		s.leads[lead.ID] = lead
		s.leadOrder = append(s.leadOrder, lead.ID)
	}

	s.notifications = seedNotifications()
}

func seedLeads() []*model.Lead {
	demoFollowUp := model.NewDate(2024, time.January, 22)
	contactedFollowUp := model.NewDate(2024, time.January, 25)
	newFollowUp := model.NewDate(2024, time.January, 27)

	return []*model.Lead{
		{
			ID:                  uuid.New(),
			FullName:            "John Smith",
			Phone:               "+1 (555) 123-4567",
			Email:               "john.smith@example.com",
			Company:             "Tech Solutions Inc.",
			LeadSource:          "Referral",
			Notes:               "Interested in our premium software package. Very engaged during initial call.",
			ServiceInterestedIn: "Software Development",
			Priority:            model.LeadPriorityHigh,
			FirstContactDate:    model.NewDate(2024, time.January, 15),
			NextFollowUpDate:    &demoFollowUp,
			Status:              model.LeadStatusDemoScheduled,
			AssignedTo:          "Sarah Johnson",
			Timeline: []model.TimelineEntry{
				{
					ID:          uuid.New(),
					Type:        model.TimelineEntryContact,
					Title:       "Initial Contact",
					Description: "First phone call completed. Client showed high interest.",
					Date:        time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC),
					User:        "Sarah Johnson",
				},
				{
					ID:          uuid.New(),
					Type:        model.TimelineEntryNote,
					Title:       "Follow-up Note",
					Description: "Sent proposal via email. Client requested demo.",
					Date:        time.Date(2024, time.January, 16, 14, 20, 0, 0, time.UTC),
					User:        "Sarah Johnson",
				},
			},
			CreatedAt: time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, time.January, 16, 14, 20, 0, 0, time.UTC),
		},
		{
			ID:                  uuid.New(),
			FullName:            "Emily Davis",
			Phone:               "+1 (555) 987-6543",
			Email:               "emily.davis@businesscorp.com",
			Company:             "Business Corp",
			LeadSource:          "Social Media",
			Notes:               "Found us through LinkedIn. Looking for marketing automation tools.",
			ServiceInterestedIn: "Marketing Automation",
			Priority:            model.LeadPriorityMedium,
			FirstContactDate:    model.NewDate(2024, time.January, 18),
			NextFollowUpDate:    &contactedFollowUp,
			Status:              model.LeadStatusContacted,
			AssignedTo:          "Mike Wilson",
			Timeline: []model.TimelineEntry{
				{
					ID:          uuid.New(),
					Type:        model.TimelineEntryContact,
					Title:       "LinkedIn Connection",
					Description: "Connected through LinkedIn. Expressed interest in marketing tools.",
					Date:        time.Date(2024, time.January, 18, 9, 15, 0, 0, time.UTC),
					User:        "Mike Wilson",
				},
			},
			CreatedAt: time.Date(2024, time.January, 18, 9, 15, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, time.January, 18, 9, 15, 0, 0, time.UTC),
		},
		{
			ID:                  uuid.New(),
			FullName:            "David Rodriguez",
			Phone:               "+1 (555) 456-7890",
			Email:               "david.r@startupventure.com",
			Company:             "Startup Venture",
			LeadSource:          "Website",
			Notes:               "Startup looking for cost-effective solutions. Price-sensitive but high potential.",
			ServiceInterestedIn: "Consulting",
			Priority:            model.LeadPriorityMedium,
			FirstContactDate:    model.NewDate(2024, time.January, 20),
			NextFollowUpDate:    &newFollowUp,
			Status:              model.LeadStatusNew,
			AssignedTo:          "Sarah Johnson",
			Timeline: []model.TimelineEntry{
				{
					ID:          uuid.New(),
					Type:        model.TimelineEntryLead,
					Title:       "Lead Created",
					Description: "Lead created from website contact form.",
					Date:        time.Date(2024, time.January, 20, 16, 45, 0, 0, time.UTC),
					User:        "System",
				},
			},
			CreatedAt: time.Date(2024, time.January, 20, 16, 45, 0, 0, time.UTC),
			UpdatedAt: time.Date(2024, time.January, 20, 16, 45, 0, 0, time.UTC),
		},
	}
}

func seedNotifications() []*model.Notification {
	return []*model.Notification{
		{
			ID:        uuid.NewString(),
			Type:      model.NotificationTypeFollowUp,
			Title:     "Follow-up Due",
			Message:   "Follow-up with John Smith is due today",
			Priority:  model.NotificationPriorityHigh,
			Timestamp: now(),
			Source:    model.NotificationSourceStored,
		},
		{
			ID:        uuid.NewString(),
			Type:      model.NotificationTypeDemo,
			Title:     "Demo Scheduled",
			Message:   "Demo with Emily Davis scheduled for 3:00 PM",
			Priority:  model.NotificationPriorityMedium,
			Timestamp: now(),
			Source:    model.NotificationSourceStored,
		},
	}
}
