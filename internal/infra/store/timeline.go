package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/questforge/questforge/internal/domain"
)

// ─── Timeline Repository ────────────────────────────────────────────────────

// Append writes one timeline event. Missing ids and timestamps are
// filled in here so callers can stay terse.
func (s *Store) Append(ctx context.Context, userID string, ev domain.TimelineEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO timeline (id, user_id, type, level, description, icon, details, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, userID, string(ev.Type), ev.Level, ev.Description, ev.Icon, ev.Details, ev.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert timeline event: %w", err)
	}
	return nil
}

// List returns the user's newest events first, up to limit.
func (s *Store) List(ctx context.Context, userID string, limit int) ([]domain.TimelineEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, level, description, icon, details, created_at
		 FROM timeline WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query timeline: %w", err)
	}
	defer rows.Close()

	var events []domain.TimelineEvent
	for rows.Next() {
		var ev domain.TimelineEvent
		var typ string
		var createdAt int64
		if err := rows.Scan(&ev.ID, &typ, &ev.Level, &ev.Description, &ev.Icon, &ev.Details, &createdAt); err != nil {
			return nil, err
		}
		ev.Type = domain.TimelineEventType(typ)
		ev.CreatedAt = time.Unix(createdAt, 0)
		events = append(events, ev)
	}
	return events, rows.Err()
}
