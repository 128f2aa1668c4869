package debounce

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrSuperseded = errors.New("superseded")

// Debouncer lets only the latest call per key through once its settle
// window has passed without a newer call for the same key.
type Debouncer struct {
	mu    sync.Mutex
	seq   uint64
	gen   map[string]uint64
	delay time.Duration
	sleep func(ctx context.Context, d time.Duration) error
}

func New(delay time.Duration) *Debouncer {
	return &Debouncer{
		gen:   make(map[string]uint64),
		delay: delay,
		sleep: sleepContext,
	}
}

// Settle blocks for the settle window and returns nil if this call is
// still the latest for key. Earlier calls get ErrSuperseded.
//
// Generations come from one counter shared by all keys and never reused,
// so a key dropped by a cancelled call cannot hand an older caller's
// number to a newer one.
func (d *Debouncer) Settle(ctx context.Context, key string) error {
	d.mu.Lock()
	d.seq++
	mine := d.seq
	d.gen[key] = mine
	d.mu.Unlock()

	if err := d.sleep(ctx, d.delay); err != nil {
		d.forget(key, mine)
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.gen[key] != mine {
		return ErrSuperseded
	}
	delete(d.gen, key)
	return nil
}

func (d *Debouncer) forget(key string, mine uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gen[key] == mine {
		delete(d.gen, key)
	}
}

// Pending reports how many keys have a call in flight.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.gen)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
