package game

import (
	"context"
	"time"
)

// Timer schedules the once-a-second tick of a running game. Start replaces
// any schedule still active; Stop cancels it immediately.
type Timer interface {
	Start(tick func())
	Stop()
}

// NopTimer never fires; whoever owns the session calls Tick itself.
type NopTimer struct{}

func (NopTimer) Start(func()) {}
func (NopTimer) Stop()        {}

// TickerTimer hands ticks to the goroutine that owns the session by sending
// closures on events. A tick that is still queued when the timer is stopped
// or restarted does nothing when run.
type TickerTimer struct {
	parent   context.Context
	events   chan<- func()
	interval time.Duration
	cancel   context.CancelFunc
}

func NewTickerTimer(ctx context.Context, events chan<- func(), interval time.Duration) *TickerTimer {
	return &TickerTimer{
		parent:   ctx,
		events:   events,
		interval: interval,
	}
}

// Start and Stop must be called from the goroutine that runs the events.
func (t *TickerTimer) Start(tick func()) {
	t.Stop()

	ctx, cancel := context.WithCancel(t.parent)
	t.cancel = cancel

	fire := func() {
		if ctx.Err() == nil {
			tick()
		}
	}

	go func() {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			select {
			case <-ctx.Done():
				return
			case t.events <- fire:
			}
		}
	}()
}

func (t *TickerTimer) Stop() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

func (t *TickerTimer) running() bool {
	return t.cancel != nil
}
