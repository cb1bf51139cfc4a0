package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/ostrich-systems/field-service-api/internal/api/metrics"
	"github.com/ostrich-systems/field-service-api/internal/core/domain"
	"github.com/ostrich-systems/field-service-api/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher fans notification events out to a fixed set of workers using
// consistent hashing on the recipient id, guaranteeing per-user feed ordering.
// It implements ports.NotificationPublisher.
type Dispatcher struct {
	workers []chan ports.NotificationEvent
	repo    ports.NotificationRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.NotificationRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.NotificationEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.NotificationEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Publish sends an event to the worker responsible for its recipient. The
// call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Publish(event ports.NotificationEvent) {
	idx := d.shardIndex(event.UserID)
	d.workers[idx] <- event
	metrics.NotificationsQueueDepth.
		WithLabelValues(strconv.Itoa(idx)).
		Set(float64(len(d.workers[idx])))
}

// shardIndex maps a recipient id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(userID, 10)))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.NotificationEvent) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			d.deliver(ctx, event)
			metrics.NotificationsQueueDepth.
				WithLabelValues(workerID).
				Set(float64(len(ch)))
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, event ports.NotificationEvent) {
	n := &domain.Notification{
		UserID:    event.UserID,
		Title:     event.Title,
		Message:   event.Message,
		Type:      event.Type,
		TicketID:  event.TicketID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := d.repo.Insert(ctx, n); err != nil {
		metrics.NotificationsDeliveredTotal.WithLabelValues("error").Inc()
		d.log.Error().Err(err).
			Int64("user_id", event.UserID).
			Str("type", string(event.Type)).
			Msg("notification delivery failed")
		return
	}
	metrics.NotificationsDeliveredTotal.WithLabelValues("ok").Inc()
}
