package session

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultTickInterval is how often a running session commits play time.
const DefaultTickInterval = 10 * time.Second

// PlayTimeStore persists the play-time counters of a save slot.
type PlayTimeStore interface {
	AddPlayTime(ctx context.Context, slot int, seconds int64, sessionStart time.Time) error
	UpdateLastSessionStart(ctx context.Context, slot int, at time.Time) error
	PlayTime(ctx context.Context, slot int) int64
}

type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Tracker accumulates play time while the game is in the foreground. Each
// tick commits the whole seconds elapsed since the window start and moves the
// window forward, so at most one tick of play is lost if the process dies.
type Tracker struct {
	store PlayTimeStore
	slot  int
	now   func() time.Time

	mu    sync.Mutex
	state State
	start time.Time
}

func NewTracker(store PlayTimeStore, slot int, opts ...TrackerOpt) *Tracker {
	t := &Tracker{
		store: store,
		slot:  slot,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Start opens a session. Starting a running session does nothing.
func (t *Tracker) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == Running {
		return
	}

	t.start = t.now()
	t.state = Running
	if err := t.store.UpdateLastSessionStart(ctx, t.slot, t.start); err != nil {
		slog.WarnContext(ctx, "recording session start", "slot", t.slot, "error", err)
	}
}

// Tick commits the running window. It satisfies driver.Manager and never
// fails: storage errors are logged and the window is kept for the next tick.
func (t *Tracker) Tick(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != Running {
		return nil
	}
	t.commit(ctx)
	return nil
}

// Stop commits the running window and closes the session.
func (t *Tracker) Stop(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != Running {
		return
	}
	t.commit(ctx)
	t.state = Stopped
}

// commit adds the whole seconds of the window to the store. The sub-second
// remainder stays in the window.
func (t *Tracker) commit(ctx context.Context) {
	now := t.now()
	elapsed := now.Sub(t.start)
	if elapsed < 0 {
		// Clock went backwards; restart the window rather than subtract.
		t.start = now
		return
	}

	seconds := int64(elapsed / time.Second)
	if seconds == 0 {
		return
	}

	next := t.start.Add(time.Duration(seconds) * time.Second)
	if err := t.store.AddPlayTime(ctx, t.slot, seconds, next); err != nil {
		slog.WarnContext(ctx, "committing play time", "slot", t.slot, "seconds", seconds, "error", err)
		return
	}
	t.start = next
}

// Rebase runs fn while no tick can commit, then restarts a running window at
// the current time. It is used around resets of the stored total. When fn
// fails the window is kept and fn's error is returned.
func (t *Tracker) Rebase(ctx context.Context, fn func(now time.Time) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if err := fn(now); err != nil {
		return err
	}
	if t.state == Running {
		t.start = now
	}
	return nil
}

// Total returns the stored play time plus the uncommitted running window.
func (t *Tracker) Total(ctx context.Context) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	total := t.store.PlayTime(ctx, t.slot)
	if t.state == Running {
		if pending := t.now().Sub(t.start); pending > 0 {
			total += int64(pending / time.Second)
		}
	}
	return total
}
