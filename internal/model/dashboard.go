package model

import "time"

// DashboardStats is a summary of the whole lead collection. It is
// recomputed from scratch on every read and never updated incrementally.
type DashboardStats struct {
	TotalLeads       int `json:"total_leads"`
	UpcomingCalls    int `json:"upcoming_calls"`
	ScheduledDemos   int `json:"scheduled_demos"`
	FollowupsPending int `json:"followups_pending"`
	LeadsConverted   int `json:"leads_converted"`
	ConversionRate   int `json:"conversion_rate"`
}

// WeekdayFollowUps is one bar of the weekly follow-up histogram.
type WeekdayFollowUps struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// ActivityEntry is a timeline entry paired with the lead it belongs to,
// used by the recent-activity feed.
type ActivityEntry struct {
	LeadID   string            `json:"lead_id"`
	LeadName string            `json:"lead_name"`
	Type     TimelineEntryType `json:"type"`
	Title    string            `json:"title"`
	Date     time.Time         `json:"date"`
	User     string            `json:"user"`
}
