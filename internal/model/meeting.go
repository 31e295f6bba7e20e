package model

import "github.com/google/uuid"

type MeetingKind string

const (
	MeetingKindDemo    MeetingKind = "demo"
	MeetingKindMeeting MeetingKind = "meeting"
)

type ScheduleMeetingRequest struct {
	LeadID      string `json:"lead_id" binding:"required,uuid"`
	Kind        string `json:"kind" binding:"required,oneof=demo meeting"`
	Online      bool   `json:"online"`
	Date        Date   `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Location    string `json:"location"`
	MeetingLink string `json:"meeting_link"`
	Notes       string `json:"notes"`
	User        string `json:"user"`
}

// Meeting is a scheduling confirmation. Meetings are not stored as their
// own entity; they live on as a timeline entry plus the lead's status, so
// the meeting list is derived from leads in a scheduled status.
type Meeting struct {
	LeadID      uuid.UUID   `json:"lead_id"`
	LeadName    string      `json:"lead_name"`
	Company     string      `json:"company"`
	Kind        MeetingKind `json:"kind"`
	Online      bool        `json:"online"`
	Date        Date        `json:"date"`
	Time        string      `json:"time"`
	Location    string      `json:"location,omitempty"`
	MeetingLink string      `json:"meeting_link,omitempty"`
	Status      LeadStatus  `json:"status"`
}
