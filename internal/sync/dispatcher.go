package sync

import (
	"log/slog"
	"time"

	"staffing-awards/internal/config"
	"staffing-awards/internal/models"
)

// Dispatcher fans sync events out to the configured targets from a single
// background worker. Delivery is fire-and-forget: a full queue drops the
// event and a failing target only logs. The database stays the source of
// truth; external systems converge on the next event for the same record.
type Dispatcher struct {
	targets  []Target
	queue    chan Event
	stopChan chan bool
	done     chan bool
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(cfg *config.SyncConfig, targets ...Target) *Dispatcher {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Dispatcher{
		targets:  targets,
		queue:    make(chan Event, queueSize),
		stopChan: make(chan bool),
		done:     make(chan bool),
	}
}

// Start starts the background worker
func (d *Dispatcher) Start() {
	names := make([]string, 0, len(d.targets))
	for _, t := range d.targets {
		names = append(names, t.Name())
	}
	slog.Info("Starting sync dispatcher", "targets", names, "queue_size", cap(d.queue))

	go d.run()
}

// Stop signals the worker to drain the queue and waits for it to finish
func (d *Dispatcher) Stop() {
	slog.Info("Stopping sync dispatcher")
	close(d.stopChan)

	select {
	case <-d.done:
	case <-time.After(10 * time.Second):
		slog.Warn("Sync dispatcher did not drain in time")
	}
}

func (d *Dispatcher) run() {
	for {
		select {
		case ev := <-d.queue:
			d.process(ev)
		case <-d.stopChan:
			for {
				select {
				case ev := <-d.queue:
					d.process(ev)
				default:
					close(d.done)
					return
				}
			}
		}
	}
}

func (d *Dispatcher) process(ev Event) {
	for _, target := range d.targets {
		if err := target.HandleEvent(ev); err != nil {
			slog.Error("Sync delivery failed",
				"target", target.Name(),
				"kind", ev.Kind,
				"error", err,
			)
		}
	}
}

func (d *Dispatcher) enqueue(ev Event) {
	select {
	case d.queue <- ev:
	default:
		slog.Warn("Sync queue full, dropping event", "kind", ev.Kind)
	}
}

// NominationSubmitted enqueues a submission event
func (d *Dispatcher) NominationSubmitted(n *models.Nomination) {
	copied := *n
	d.enqueue(Event{Kind: KindNominationSubmitted, Nomination: &copied})
}

// NominationApproved enqueues an approval event
func (d *Dispatcher) NominationApproved(n *models.Nomination) {
	copied := *n
	d.enqueue(Event{Kind: KindNominationApproved, Nomination: &copied})
}

// NominationRejected enqueues a rejection event
func (d *Dispatcher) NominationRejected(n *models.Nomination) {
	copied := *n
	d.enqueue(Event{Kind: KindNominationRejected, Nomination: &copied})
}

// VoteCast enqueues a vote event
func (d *Dispatcher) VoteCast(v *models.Vote, n *models.Nomination) {
	voteCopy := *v
	nominationCopy := *n
	d.enqueue(Event{Kind: KindVoteCast, Vote: &voteCopy, Nomination: &nominationCopy})
}
