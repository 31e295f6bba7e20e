package model

import (
	"time"

	"github.com/google/uuid"
)

type CampaignStatus string

const (
	CampaignStatusSent      CampaignStatus = "sent"
	CampaignStatusScheduled CampaignStatus = "scheduled"
)

type Campaign struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Subject       string          `json:"subject"`
	Content       string          `json:"content"`
	Recipients    int             `json:"recipients"`
	Filters       CampaignFilters `json:"filters"`
	Status        CampaignStatus  `json:"status"`
	SentDate      *Date           `json:"sent_date,omitempty"`
	ScheduledDate *Date           `json:"scheduled_date,omitempty"`
	ScheduledAt   *time.Time      `json:"scheduled_at,omitempty"`
	OpenRate      string          `json:"open_rate"`
	ClickRate     string          `json:"click_rate"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CampaignFilters select campaign recipients. Each predicate is either
// "all" or an exact match, combined with AND.
type CampaignFilters struct {
	Status  string `json:"status" form:"status"`
	Source  string `json:"source" form:"source"`
	Service string `json:"service" form:"service"`
}

type CreateCampaignRequest struct {
	Subject      string          `json:"subject" binding:"required_without=Template"`
	Content      string          `json:"content" binding:"required_without=Template"`
	Template     string          `json:"template" binding:"omitempty,oneof=welcome followup demo"`
	Filters      CampaignFilters `json:"filters"`
	Schedule     string          `json:"schedule" binding:"required,oneof=now scheduled"`
	ScheduleDate *Date           `json:"schedule_date"`
	ScheduleTime string          `json:"schedule_time"`
}

// EmailTemplate is a canned campaign body with {FirstName}, {Company},
// {Service} and {SalesRep} placeholders substituted per recipient.
type EmailTemplate struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Content string `json:"content"`
}
