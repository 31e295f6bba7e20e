package worker

import (
	"context"
	"fmt"

	"github.com/leadtrackhq/leadtrack-api/pkg/event"
	"github.com/leadtrackhq/leadtrack-api/pkg/logger"
	"github.com/leadtrackhq/leadtrack-api/pkg/messaging"
	"github.com/leadtrackhq/leadtrack-api/pkg/metrics"
)

const channelPrefix = "leadtrack.events"

// Dispatcher is the in-memory outbox for store change events. Store
// observers enqueue into a buffered channel; the run loop drains it and
// publishes to the broker. With no broker configured events are logged
// at debug and dropped, which keeps the store decoupled from whether
// anything downstream is listening.
type Dispatcher struct {
	events  chan event.Change
	broker  messaging.Broker
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewDispatcher(broker messaging.Broker, logger *logger.Logger, m *metrics.Metrics, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 256
	}
	return &Dispatcher{
		events:  make(chan event.Change, buffer),
		broker:  broker,
		logger:  logger,
		metrics: m,
	}
}

// Enqueue accepts a change event without blocking the committing
// mutation. A full queue drops the event; the store is the source of
// truth, the event stream is best effort.
func (d *Dispatcher) Enqueue(ch event.Change) {
	select {
	case d.events <- ch:
	default:
		if d.metrics != nil {
			d.metrics.EventsDropped.Inc()
		}
		d.logger.Warn("event queue full, dropping change event", "entity", ch.Entity, "operation", string(ch.Operation))
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	d.logger.Info("starting change-event dispatcher")

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("shutting down change-event dispatcher")
			return
		case ch := <-d.events:
			d.publish(ctx, ch)
		}
	}
}

func (d *Dispatcher) publish(ctx context.Context, ch event.Change) {
	if d.broker == nil {
		if d.metrics != nil {
			d.metrics.EventsDropped.Inc()
		}
		d.logger.Debug("no broker configured, dropping change event", "entity", ch.Entity, "operation", string(ch.Operation))
		return
	}

	channel := fmt.Sprintf("%s.%s", channelPrefix, ch.Entity)
	msg := messaging.Message{
		Type:    fmt.Sprintf("%s_%s", ch.Entity, ch.Operation),
		Payload: ch,
	}
	if err := d.broker.Publish(ctx, channel, msg); err != nil {
		d.logger.Error(err, "failed to publish change event", "entity", ch.Entity, "operation", string(ch.Operation))
		return
	}

	if d.metrics != nil {
		d.metrics.EventsPublished.Inc()
	}
}
