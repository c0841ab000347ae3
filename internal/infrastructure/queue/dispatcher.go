package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharebite/donation-system/internal/api/metrics"
	"github.com/sharebite/donation-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes background tasks to a fixed set of workers using
// consistent hashing on the task's shard key, guaranteeing per-donation task
// ordering (a claim mail never overtakes the donation's own alert).
// Tasks are fire-and-forget: failures are logged, never reported back.
type Dispatcher struct {
	workers []chan ports.Task
	alerts  ports.AlertService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, alerts ports.AlertService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.Task, numWorkers),
		alerts:  alerts,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Task, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a task to the worker responsible for its shard key.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(task ports.Task) {
	idx := d.shardIndex(task.ShardKey())
	d.workers[idx] <- task
	metrics.TasksQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a shard key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Task) {
	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-ch:
			if !ok {
				return
			}
			d.process(ctx, id, task)
			metrics.TasksQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}

// process runs a single task. Every failure path ends in a log line; there
// is no caller to report to.
func (d *Dispatcher) process(ctx context.Context, id int, task ports.Task) {
	start := time.Now()

	switch task.Kind {
	case ports.TaskDonationAlert:
		sent := d.alerts.SendDonationAlert(ctx, task.Donation)
		metrics.AlertEmailsSentTotal.Add(float64(sent))

	case ports.TaskCleanup:
		deleted, err := d.alerts.CleanupOldDonations(ctx)
		if err != nil {
			d.log.Error().Err(err).Int("worker_id", id).Msg("retention sweep failed")
		}
		metrics.DonationsPurgedTotal.Add(float64(deleted))

	case ports.TaskDonorClaimedMail:
		if err := d.alerts.SendDonorClaimedMail(ctx, task.Donation, task.Claim); err != nil {
			d.log.Error().Err(err).Int("worker_id", id).Msg("donor claimed mail failed")
		}

	case ports.TaskReceiverClaimedMail:
		if err := d.alerts.SendReceiverClaimedMail(ctx, task.Donation, task.Claim); err != nil {
			d.log.Error().Err(err).Int("worker_id", id).Msg("receiver claimed mail failed")
		}

	default:
		d.log.Error().Str("kind", string(task.Kind)).Msg("unknown task kind dropped")
		return
	}

	metrics.TaskDuration.WithLabelValues(string(task.Kind)).Observe(time.Since(start).Seconds())
}
