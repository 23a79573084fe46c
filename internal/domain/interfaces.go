package domain

import "context"

// WriteOrigin tags a document change with the session that produced it,
// so subscribers can tell their own echoes from true remote changes.
type WriteOrigin struct {
	SessionID string
}

// Change is delivered to document subscribers on every write.
type Change struct {
	State  UserState
	Origin WriteOrigin
}

// DocumentStore is the generic per-user snapshot store. One document
// per user, merged section-wise on Set, whole-document on read.
type DocumentStore interface {
	// Get returns the stored snapshot, or (zero, false, nil) when the
	// user has no document yet.
	Get(ctx context.Context, userID string) (UserState, bool, error)
	// Set merges the patch into the user's document and notifies
	// subscribers with the given origin.
	Set(ctx context.Context, userID string, patch StatePatch, origin WriteOrigin) error
	// Subscribe registers a change callback for the user's document.
	// The returned function unsubscribes.
	Subscribe(userID string, fn func(Change)) (unsubscribe func())
}

// TimelineStore is the append-only per-user journey log.
type TimelineStore interface {
	Append(ctx context.Context, userID string, ev TimelineEvent) error
	List(ctx context.Context, userID string, limit int) ([]TimelineEvent, error)
}

// Notifier receives fire-and-forget notifications. Implementations are
// UI-owned and must never affect engine state.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) { f(n) }
