package services

import (
	"context"
	"sync"
	"time"

	"swiftdine/models"
)

// Lifecycle owns the success-screen countdown: on entering the success
// stage it starts ticking, and on expiry dispatches RESET_APP. Leaving
// success for any reason (including an explicit reset) cancels the
// pending countdown so a stale reset can never fire against a later
// session.
type Lifecycle struct {
	machine  *Machine
	ticks    int
	interval time.Duration

	mu        sync.Mutex
	cancel    context.CancelFunc
	remaining int
	onTick    func(remaining int)
}

func NewLifecycle(machine *Machine, ticks int, interval time.Duration) *Lifecycle {
	l := &Lifecycle{machine: machine, ticks: ticks, interval: interval}
	machine.OnChange(l.stateChanged)
	return l
}

// SetOnTick registers an optional observer for countdown progress
// (seconds remaining). Must be called before the countdown starts.
func (l *Lifecycle) SetOnTick(fn func(remaining int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onTick = fn
}

// Remaining reports seconds left on the active countdown, 0 if none.
func (l *Lifecycle) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.remaining
}

func (l *Lifecycle) stateChanged(s models.Session) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s.Stage == models.StageSuccess {
		if l.cancel == nil {
			ctx, cancel := context.WithCancel(context.Background())
			l.cancel = cancel
			l.remaining = l.ticks
			go l.run(ctx)
		}
		return
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
		l.remaining = 0
	}
}

func (l *Lifecycle) run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.mu.Lock()
			if ctx.Err() != nil {
				l.mu.Unlock()
				return
			}
			l.remaining--
			rem := l.remaining
			tick := l.onTick
			var expired bool
			if rem <= 0 {
				l.cancel()
				l.cancel = nil
				l.remaining = 0
				expired = true
			}
			l.mu.Unlock()

			if tick != nil {
				tick(rem)
			}
			if expired {
				l.machine.Dispatch(Action{Type: ActionResetApp})
				return
			}
		}
	}
}
