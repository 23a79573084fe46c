// Package engine implements the progression engine: the single
// serialized mutation path for a user's state. Every player action runs
// one atomic pipeline over the in-memory snapshot, persists through the
// sync coordinator, and emits notifications as observational
// side-effects. Local state is authoritative; persistence failures
// never roll an action back.
package engine

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/questforge/questforge/internal/domain"
	"github.com/questforge/questforge/internal/infra/metrics"
	qsync "github.com/questforge/questforge/internal/sync"
)

// Write groups for debounced persistence. Habit edits coalesce;
// anything touching gold, health or the inventory flushes immediately.
const groupHabits = "habits"

// Service is the per-user progression engine.
type Service struct {
	mu       sync.Mutex
	userID   string
	state    domain.UserState
	coord    *qsync.Coordinator
	timeline domain.TimelineStore
	notifier domain.Notifier

	// guildBonus supplies the current guild XP multiplier, 1.0 when the
	// player is guildless.
	guildBonus func() float64
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithNotifier sets the notification sink.
func WithNotifier(n domain.Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithGuildBonus sets the guild multiplier provider.
func WithGuildBonus(fn func() float64) Option {
	return func(s *Service) { s.guildBonus = fn }
}

// New returns an engine over an initial snapshot.
func New(userID string, initial domain.UserState, coord *qsync.Coordinator, timeline domain.TimelineStore, opts ...Option) *Service {
	s := &Service{
		userID:     userID,
		state:      initial,
		coord:      coord,
		timeline:   timeline,
		guildBonus: func() float64 { return 1.0 },
		now:        time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// State returns a deep copy of the current snapshot.
func (s *Service) State() domain.UserState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// ApplyRemote overwrites local state with a remote snapshot, last
// writer wins. Wired to the coordinator's remote-change subscription.
func (s *Service) ApplyRemote(remote domain.UserState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = remote.Clone()
}

// notify fans a notification out to the sink, if any.
func (s *Service) notify(n domain.Notification) {
	metrics.NotificationsTotal.WithLabelValues(string(n.Type)).Inc()
	if s.notifier != nil {
		s.notifier.Notify(n)
	}
}

// logEvent appends to the timeline. Failures are logged and swallowed:
// the journey log is best-effort by design of the action pipeline.
func (s *Service) logEvent(ev domain.TimelineEvent) {
	if s.timeline == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.timeline.Append(ctx, s.userID, ev); err != nil {
		log.Printf("engine: timeline append failed: %v", err)
	}
}

// persistNow flushes a patch immediately. A failed flush is non-fatal:
// the coordinator already warned the user and local state stands.
func (s *Service) persistNow(patch domain.StatePatch) {
	if s.coord == nil {
		return
	}
	if err := s.coord.Flush(patch); err != nil {
		log.Printf("engine: immediate persist failed: %v", err)
	}
}

// persistDebounced queues a patch on the habit write group.
func (s *Service) persistDebounced(patch domain.StatePatch) {
	if s.coord == nil {
		return
	}
	s.coord.Queue(groupHabits, patch)
}
