package worker

import (
	"context"
	"time"

	"github.com/leadtrackhq/leadtrack-api/internal/service/campaign"
	"github.com/leadtrackhq/leadtrack-api/pkg/logger"
)

// CampaignDispatcher periodically sends scheduled campaigns whose
// dispatch time has arrived.
type CampaignDispatcher struct {
	service  campaign.Service
	interval time.Duration
	logger   *logger.Logger
}

func NewCampaignDispatcher(service campaign.Service, interval time.Duration, logger *logger.Logger) *CampaignDispatcher {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CampaignDispatcher{
		service:  service,
		interval: interval,
		logger:   logger,
	}
}

func (w *CampaignDispatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("starting campaign dispatcher", "interval", w.interval.String())

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("shutting down campaign dispatcher")
			return
		case <-ticker.C:
			n, err := w.service.DispatchDue(ctx)
			if err != nil {
				w.logger.Error(err, "failed to dispatch due campaigns")
				continue
			}
			if n > 0 {
				w.logger.Info("dispatched scheduled campaigns", "count", n)
			}
		}
	}
}
