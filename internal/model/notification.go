package model

import (
	"time"
)

type NotificationPriority string

const (
	NotificationPriorityHigh   NotificationPriority = "high"
	NotificationPriorityMedium NotificationPriority = "medium"
	NotificationPriorityLow    NotificationPriority = "low"
)

// NotificationSource distinguishes notifications that live in the store
// from ones synthesized from lead state at read time. Only stored
// notifications support mutation (mark-read, clear).
type NotificationSource string

const (
	NotificationSourceStored  NotificationSource = "stored"
	NotificationSourceDerived NotificationSource = "derived"
)

type NotificationType string

const (
	NotificationTypeFollowUp NotificationType = "followup"
	NotificationTypeDemo     NotificationType = "demo"
	NotificationTypeMeeting  NotificationType = "meeting"
	NotificationTypeCall     NotificationType = "call"
	NotificationTypeAlert    NotificationType = "alert"
)

// Notification is polymorphic over {stored, derived}. Derived entries
// carry a deterministic synthetic ID (kind + lead ID) so repeated reads
// produce stable keys, and they are never marked read.
type Notification struct {
	ID        string               `json:"id"`
	Type      NotificationType     `json:"type"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	Priority  NotificationPriority `json:"priority"`
	Timestamp time.Time            `json:"timestamp"`
	Read      bool                 `json:"read"`
	Source    NotificationSource   `json:"source"`
	LeadID    string               `json:"lead_id,omitempty"`
	LeadName  string               `json:"lead_name,omitempty"`
}

type CreateNotificationRequest struct {
	Type     string `json:"type" binding:"required,oneof=followup demo meeting call alert"`
	Title    string `json:"title" binding:"required"`
	Message  string `json:"message" binding:"required"`
	Priority string `json:"priority" binding:"required,oneof=high medium low"`
}
