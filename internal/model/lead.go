package model

import (
	"time"

	"github.com/google/uuid"
)

type LeadStatus string

const (
	LeadStatusNew              LeadStatus = "New"
	LeadStatusContacted        LeadStatus = "Contacted"
	LeadStatusDemoScheduled    LeadStatus = "Demo Scheduled"
	LeadStatusMeetingScheduled LeadStatus = "Meeting Scheduled"
	LeadStatusNotInterested    LeadStatus = "Not Interested"
	LeadStatusConverted        LeadStatus = "Converted"
)

type LeadPriority string

const (
	LeadPriorityLow    LeadPriority = "Low"
	LeadPriorityMedium LeadPriority = "Medium"
	LeadPriorityHigh   LeadPriority = "High"
)

type TimelineEntryType string

const (
	TimelineEntryContact  TimelineEntryType = "contact"
	TimelineEntryEmail    TimelineEntryType = "email"
	TimelineEntryMeeting  TimelineEntryType = "meeting"
	TimelineEntryFollowUp TimelineEntryType = "followup"
	TimelineEntryNote     TimelineEntryType = "note"
	TimelineEntryStatus   TimelineEntryType = "status"
	TimelineEntryLead     TimelineEntryType = "lead"
)

type Lead struct {
	ID                  uuid.UUID       `json:"id"`
	FullName            string          `json:"full_name"`
	Phone               string          `json:"phone"`
	Email               string          `json:"email"`
	Company             string          `json:"company"`
	LeadSource          string          `json:"lead_source"`
	ServiceInterestedIn string          `json:"service_interested_in"`
	Priority            LeadPriority    `json:"priority"`
	Status              LeadStatus      `json:"status"`
	AssignedTo          string          `json:"assigned_to"`
	FirstContactDate    Date            `json:"first_contact_date"`
	NextFollowUpDate    *Date           `json:"next_follow_up_date,omitempty"`
	Notes               string          `json:"notes"`
	Timeline            []TimelineEntry `json:"timeline"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// TimelineEntry is an append-only activity log record attached to a lead.
// Entries are never edited or removed once written.
type TimelineEntry struct {
	ID          uuid.UUID         `json:"id"`
	Type        TimelineEntryType `json:"type"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Date        time.Time         `json:"date"`
	User        string            `json:"user"`
}

type CreateLeadRequest struct {
	FullName            string `json:"full_name" binding:"required"`
	Phone               string `json:"phone"`
	Email               string `json:"email" binding:"required,email"`
	Company             string `json:"company"`
	LeadSource          string `json:"lead_source" binding:"required"`
	ServiceInterestedIn string `json:"service_interested_in" binding:"required"`
	Priority            string `json:"priority" binding:"required,oneof=Low Medium High"`
	Status              string `json:"status" binding:"required,oneof=New Contacted 'Demo Scheduled' 'Meeting Scheduled' 'Not Interested' Converted"`
	AssignedTo          string `json:"assigned_to" binding:"required"`
	NextFollowUpDate    *Date  `json:"next_follow_up_date"`
	Notes               string `json:"notes"`
}

// UpdateLeadRequest carries an explicit optional field per mutable
// attribute. Unknown fields are rejected at the binding layer instead of
// being merged blindly, and the timeline is deliberately absent: it can
// only grow through AddTimelineEntry.
type UpdateLeadRequest struct {
	FullName            *string `json:"full_name"`
	Phone               *string `json:"phone"`
	Email               *string `json:"email" binding:"omitempty,email"`
	Company             *string `json:"company"`
	LeadSource          *string `json:"lead_source"`
	ServiceInterestedIn *string `json:"service_interested_in"`
	Priority            *string `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	Status              *string `json:"status" binding:"omitempty,oneof=New Contacted 'Demo Scheduled' 'Meeting Scheduled' 'Not Interested' Converted"`
	AssignedTo          *string `json:"assigned_to"`
	NextFollowUpDate    *Date   `json:"next_follow_up_date"`
	Notes               *string `json:"notes"`
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=New Contacted 'Demo Scheduled' 'Meeting Scheduled' 'Not Interested' Converted"`
}

type AddTimelineEntryRequest struct {
	Type        string `json:"type" binding:"required,oneof=contact email meeting followup note status lead"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	User        string `json:"user" binding:"required"`
}

type RescheduleFollowUpRequest struct {
	Date Date   `json:"date" binding:"required"`
	User string `json:"user"`
}

type CompleteFollowUpRequest struct {
	Notes string `json:"notes"`
	User  string `json:"user"`
}

// FollowUpDue filters the follow-up listing by due bucket.
type FollowUpDue string

const (
	FollowUpDueAll      FollowUpDue = "all"
	FollowUpDueToday    FollowUpDue = "today"
	FollowUpDueOverdue  FollowUpDue = "overdue"
	FollowUpDueUpcoming FollowUpDue = "upcoming"
)

// LeadFilters narrow the read-side lead listing. Every predicate is
// conjunctive; the zero value (or the literal "all") leaves a predicate
// inactive.
type LeadFilters struct {
	Status     string `form:"status"`
	Priority   string `form:"priority"`
	Source     string `form:"source"`
	SearchTerm string `form:"search"`
}

// FilterActive reports whether a single filter value constrains results.
func FilterActive(v string) bool {
	return v != "" && v != "all"
}
