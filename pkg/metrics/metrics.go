package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Store mutation metrics
	StoreMutations *prometheus.CounterVec
	StoreVersion   prometheus.Gauge
	LeadsTotal     prometheus.Gauge

	// Notification feed metrics
	NotificationsDerived prometheus.Counter
	NotificationsStored  prometheus.Gauge

	// Campaign metrics
	CampaignsSent       prometheus.Counter
	CampaignEmailsSent  prometheus.Counter
	CampaignSendFailed  prometheus.Counter
	CampaignsDispatched prometheus.Counter

	// Outbox dispatcher metrics
	EventsPublished prometheus.Counter
	EventsDropped   prometheus.Counter
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		StoreMutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_mutations_total",
			Help:      "Total number of committed store mutations",
		}, []string{"entity", "operation"}),
		StoreVersion: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_version",
			Help:      "Monotonic version counter of the in-memory store",
		}),
		LeadsTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "leads_total",
			Help:      "Current number of leads in the store",
		}),
		NotificationsDerived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_derived_total",
			Help:      "Total number of notifications derived from lead state",
		}),
		NotificationsStored: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "notifications_stored",
			Help:      "Current number of stored notifications",
		}),
		CampaignsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "campaigns_sent_total",
			Help:      "Total number of campaigns sent immediately",
		}),
		CampaignEmailsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "campaign_emails_sent_total",
			Help:      "Total number of campaign emails handed to the sender",
		}),
		CampaignSendFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "campaign_emails_failed_total",
			Help:      "Total number of campaign emails that failed to send",
		}),
		CampaignsDispatched: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "campaigns_dispatched_total",
			Help:      "Total number of scheduled campaigns dispatched by the worker",
		}),
		EventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "change_events_published_total",
			Help:      "Total number of change events published to the broker",
		}),
		EventsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "change_events_dropped_total",
			Help:      "Total number of change events dropped (no broker or full queue)",
		}),
	}
}
