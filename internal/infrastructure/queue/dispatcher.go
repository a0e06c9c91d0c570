package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/companyhq/company-api/internal/api/metrics"
	"github.com/companyhq/company-api/internal/core/domain"
	"github.com/companyhq/company-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes auth events to a fixed set of workers using consistent
// hashing on the subject, keeping per-user event ordering in the audit
// trail. Auditing is best-effort: Record never blocks the request path,
// and a full worker channel drops the event and counts the drop.
type Dispatcher struct {
	workers []chan domain.AuthEvent
	repo    ports.AuditRepository
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuthEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuthEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. When ctx is cancelled each worker
// flushes the events already sitting in its channel and then exits; Wait
// blocks until that flush is done.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until all workers have exited. Call after cancelling the
// Start context during shutdown.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Record implements ports.AuditRecorder. Non-blocking: a full worker
// channel drops the event.
func (d *Dispatcher) Record(event domain.AuthEvent) {
	i := d.shardIndex(event.Subject)
	select {
	case d.workers[i] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
	default:
		metrics.AuditEventsDroppedTotal.Inc()
		d.log.Warn().
			Str("type", string(event.Type)).
			Int("worker_id", i).
			Msg("audit queue full, event dropped")
	}
}

// shardIndex maps a subject deterministically to a worker index.
func (d *Dispatcher) shardIndex(subject string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(subject))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuthEvent) {
	defer d.wg.Done()
	gauge := metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			// Flush whatever was accepted before cancellation so shutdown
			// does not discard already-queued events.
			for {
				select {
				case event := <-ch:
					gauge.Set(float64(len(ch)))
					d.persist(id, event)
				default:
					return
				}
			}
		case event, ok := <-ch:
			if !ok {
				return
			}
			gauge.Set(float64(len(ch)))
			d.persist(id, event)
		}
	}
}

// persist writes one event. It uses a background context: request
// cancellation must not lose the audit record of a completed auth decision.
func (d *Dispatcher) persist(id int, event domain.AuthEvent) {
	if err := d.repo.Insert(context.Background(), &event); err != nil {
		d.log.Error().Err(err).
			Str("type", string(event.Type)).
			Int("worker_id", id).
			Msg("audit event persistence failed")
		return
	}
	metrics.AuditEventsWrittenTotal.WithLabelValues(string(event.Type)).Inc()
}
