package dashboard

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/leadtrackhq/leadtrack-api/internal/model"
	"github.com/leadtrackhq/leadtrack-api/internal/repository"
)

const recentActivityLimit = 10

type Service interface {
	Stats(ctx context.Context) (*model.DashboardStats, error)
	WeeklyFollowUps(ctx context.Context) ([]model.WeekdayFollowUps, error)
	RecentActivity(ctx context.Context) ([]model.ActivityEntry, error)
}

type service struct {
	leads repository.LeadRepository
	now   func() time.Time
}

func NewService(leads repository.LeadRepository) Service {
	return &service{
		leads: leads,
		now:   time.Now,
	}
}

// Stats recomputes the summary from the full lead collection on every
// call. Nothing here is cached; recomputation is cheap and keeps the
// record a pure function of the current collection.
//
// "Pending" follow-ups are counted by calendar day, the same definition
// the notification feed uses for overdue.
func (s *service) Stats(ctx context.Context) (*model.DashboardStats, error) {
	leads, err := s.leads.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	nowTime := s.now()
	tomorrow := nowTime.AddDate(0, 0, 1)

	stats := &model.DashboardStats{TotalLeads: len(leads)}
	for _, lead := range leads {
		if d := lead.NextFollowUpDate; d != nil {
			if d.SameDay(nowTime) || d.SameDay(tomorrow) {
				stats.UpcomingCalls++
			}
			if d.BeforeDay(nowTime) {
				stats.FollowupsPending++
			}
		}
		switch lead.Status {
		case model.LeadStatusDemoScheduled:
			stats.ScheduledDemos++
		case model.LeadStatusConverted:
			stats.LeadsConverted++
		}
	}

	if stats.TotalLeads > 0 {
		stats.ConversionRate = int(math.Round(float64(stats.LeadsConverted) / float64(stats.TotalLeads) * 100))
	}
	return stats, nil
}

// WeeklyFollowUps buckets follow-up dates falling inside the current week
// (Monday through Sunday) by weekday.
func (s *service) WeeklyFollowUps(ctx context.Context) ([]model.WeekdayFollowUps, error) {
	leads, err := s.leads.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	nowTime := s.now()
	weekStart := startOfWeek(nowTime)
	weekEnd := weekStart.AddDate(0, 0, 7)

	counts := make(map[time.Weekday]int)
	for _, lead := range leads {
		d := lead.NextFollowUpDate
		if d == nil {
			continue
		}
		if d.Time.Before(weekStart) || !d.Time.Before(weekEnd) {
			continue
		}
		counts[d.Weekday()]++
	}

	days := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	out := make([]model.WeekdayFollowUps, 0, len(days))
	for _, day := range days {
		out = append(out, model.WeekdayFollowUps{
			Day:   day.String()[:3],
			Count: counts[day],
		})
	}
	return out, nil
}

// RecentActivity flattens every lead timeline into one stream and keeps
// the ten newest entries.
func (s *service) RecentActivity(ctx context.Context) ([]model.ActivityEntry, error) {
	leads, err := s.leads.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	var entries []model.ActivityEntry
	for _, lead := range leads {
		for _, e := range lead.Timeline {
			entries = append(entries, model.ActivityEntry{
				LeadID:   lead.ID.String(),
				LeadName: lead.FullName,
				Type:     e.Type,
				Title:    e.Title,
				Date:     e.Date,
				User:     e.User,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	if len(entries) > recentActivityLimit {
		entries = entries[:recentActivityLimit]
	}
	return entries, nil
}

// startOfWeek returns Monday 00:00 UTC of t's week. Follow-up dates are
// UTC midnights, so the window has to use the same convention or leads
// due on the boundary days fall out on servers west of UTC.
func startOfWeek(t time.Time) time.Time {
	day := model.DateOf(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDays(-offset).Time
}
