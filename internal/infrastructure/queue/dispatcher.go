package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/bankcore/customer-service/internal/api/metrics"
	"github.com/bankcore/customer-service/internal/core/domain"
	"github.com/bankcore/customer-service/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher is the fire-and-forget event emitter: Emit enqueues a lifecycle
// event onto a worker keyed by customer id (consistent hashing keeps
// per-customer ordering) and returns immediately. Workers publish through the
// EventPublisher; failures are logged and dropped, never surfaced to the
// caller that produced the event.
type Dispatcher struct {
	workers   []chan domain.CustomerEvent
	publisher ports.EventPublisher
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, publisher ports.EventPublisher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan domain.CustomerEvent, numWorkers),
		publisher: publisher,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.CustomerEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Emit sends an event to the worker responsible for its customer id. When the
// worker's buffer is full the event is dropped with a log line rather than
// blocking the mutation that produced it.
func (d *Dispatcher) Emit(event domain.CustomerEvent) {
	ch := d.workers[d.shardIndex(event.Customer.ID)]
	select {
	case ch <- event:
	default:
		metrics.EventsDroppedTotal.Inc()
		d.log.Error().
			Str("customer_id", event.Customer.ID).
			Str("event_type", event.EventType).
			Msg("event queue full, event dropped")
	}
}

// shardIndex maps a customer id deterministically to a worker index.
func (d *Dispatcher) shardIndex(customerID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(customerID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.CustomerEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.publisher.Publish(ctx, event); err != nil {
				metrics.EventPublishFailuresTotal.WithLabelValues(event.EventType).Inc()
				d.log.Error().Err(err).
					Str("customer_id", event.Customer.ID).
					Str("event_type", event.EventType).
					Int("worker_id", id).
					Msg("event publish failed")
				continue
			}
			metrics.EventsPublishedTotal.WithLabelValues(event.EventType).Inc()
		}
	}
}
