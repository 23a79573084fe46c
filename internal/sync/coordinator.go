// Package sync coordinates writes between the in-memory engine state
// and the document store. Habit edits are debounced per write group;
// currency, health and inventory changes flush immediately. Every
// write carries the session id so the coordinator can ignore its own
// echoes and apply only true remote changes, last writer wins.
package sync

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/questforge/questforge/internal/domain"
	"github.com/questforge/questforge/internal/infra/metrics"
)

// Defaults tuned for interactive use: short enough that a quit right
// after an edit rarely loses data, long enough to coalesce bursts.
const (
	DefaultDebounce = 500 * time.Millisecond
	retryBase       = 250 * time.Millisecond
	retryAttempts   = 3
	flushTimeout    = 10 * time.Second
)

// Coordinator owns the write path for one user's document.
type Coordinator struct {
	store    domain.DocumentStore
	userID   string
	session  string
	debounce time.Duration
	warn     domain.Notifier

	mu      sync.Mutex
	pending map[string]domain.StatePatch // per write group
	timers  map[string]*time.Timer
	closed  bool

	wg sync.WaitGroup
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithDebounce overrides the debounce window.
func WithDebounce(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// WithWarnNotifier routes give-up warnings to the UI.
func WithWarnNotifier(n domain.Notifier) Option {
	return func(c *Coordinator) { c.warn = n }
}

// New returns a coordinator with a fresh session id.
func New(store domain.DocumentStore, userID string, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:    store,
		userID:   userID,
		session:  uuid.NewString(),
		debounce: DefaultDebounce,
		pending:  map[string]domain.StatePatch{},
		timers:   map[string]*time.Timer{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SessionID returns this coordinator's write-origin tag.
func (c *Coordinator) SessionID() string { return c.session }

// Queue schedules a debounced write for a group. Repeated writes to the
// same group within the window collapse into one flush carrying the
// merged patch; distinct groups keep independent timers.
//
// The patch is deep-copied here: callers pass section pointers into
// their live state, and the timer goroutine marshals the pending patch
// after the caller's lock is long released.
func (c *Coordinator) Queue(group string, patch domain.StatePatch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.pending[group] = mergePatch(c.pending[group], patch.Clone())
	if t, ok := c.timers[group]; ok {
		t.Reset(c.debounce)
		return
	}
	c.timers[group] = time.AfterFunc(c.debounce, func() { c.fire(group) })
}

// Flush writes a patch immediately, bypassing the debounce window.
// Used for gold, health and inventory mutations where a lost write is
// user-visible money.
func (c *Coordinator) Flush(patch domain.StatePatch) error {
	metrics.SyncWrites.WithLabelValues("immediate").Inc()
	return c.write(patch)
}

// fire flushes one group's pending patch in the background.
func (c *Coordinator) fire(group string) {
	c.mu.Lock()
	patch := c.pending[group]
	delete(c.pending, group)
	delete(c.timers, group)
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		metrics.SyncWrites.WithLabelValues("debounced").Inc()
		if err := c.write(patch); err != nil {
			log.Printf("sync: debounced write for group %q failed: %v", group, err)
		}
	}()
}

// write persists a patch with bounded exponential-backoff retries.
// Exhausting the budget is non-fatal: local state stays authoritative
// and the user gets a warning instead of an error.
func (c *Coordinator) write(patch domain.StatePatch) error {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	origin := domain.WriteOrigin{SessionID: c.session}
	delay := retryBase
	var err error
	for attempt := 0; attempt < retryAttempts; attempt++ {
		if attempt > 0 {
			metrics.SyncRetries.Inc()
			time.Sleep(delay)
			delay *= 2
		}
		if err = c.store.Set(ctx, c.userID, patch, origin); err == nil {
			return nil
		}
	}

	metrics.SyncGaveUp.Inc()
	log.Printf("sync: giving up after %d attempts: %v", retryAttempts, err)
	if c.warn != nil {
		c.warn.Notify(domain.Notification{
			Type:    domain.NotifyWarning,
			Title:   "Sync problem",
			Message: "Progress could not be saved. It will be retried on your next action.",
		})
	}
	return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
}

// Subscribe wires a remote-change callback. Changes written by this
// session are dropped; everything else is a genuine remote update and
// overwrites local state wholesale.
func (c *Coordinator) Subscribe(onRemote func(domain.UserState)) (unsubscribe func()) {
	return c.store.Subscribe(c.userID, func(ch domain.Change) {
		if ch.Origin.SessionID == c.session {
			metrics.EchoSuppressed.Inc()
			return
		}
		metrics.RemoteApplied.Inc()
		onRemote(ch.State)
	})
}

// Close stops all timers, flushes anything still pending and waits for
// in-flight writes.
func (c *Coordinator) Close() error {
	c.mu.Lock()
	c.closed = true
	var patches []domain.StatePatch
	for group, t := range c.timers {
		t.Stop()
		patches = append(patches, c.pending[group])
		delete(c.pending, group)
		delete(c.timers, group)
	}
	c.mu.Unlock()

	var firstErr error
	for _, p := range patches {
		if err := c.write(p); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.wg.Wait()
	return firstErr
}

// mergePatch overlays b's non-nil sections on a.
func mergePatch(a, b domain.StatePatch) domain.StatePatch {
	if b.Character != nil {
		a.Character = b.Character
	}
	if b.Habits != nil {
		a.Habits = b.Habits
	}
	if b.Achievements != nil {
		a.Achievements = b.Achievements
	}
	if b.ClassProgress != nil {
		a.ClassProgress = b.ClassProgress
	}
	if b.StreakData != nil {
		a.StreakData = b.StreakData
	}
	if b.Inventory != nil {
		a.Inventory = b.Inventory
	}
	return a
}
