package audit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type Event struct {
	UserID  *string
	Action  Action
	Details any
}

type Dispatcher struct {
	sink  Sink
	queue chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(sink Sink) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.sink.Log(ctx, ev); err != nil {
			log.Error().Err(err).Str("action", string(ev.Action)).Msg("audit write failed")
		}
		cancel()
	}
}

// Dispatch never blocks the caller: a full queue drops the event.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		log.Warn().Str("action", string(ev.Action)).Msg("audit queue full, dropping event")
	}
}

// Record is shorthand for an event performed by userID.
func (d *Dispatcher) Record(userID string, action Action, details any) {
	var uid *string
	if userID != "" {
		uid = &userID
	}
	d.Dispatch(Event{UserID: uid, Action: action, Details: details})
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}
