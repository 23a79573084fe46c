// Package store provides SQLite-based persistent storage for QuestForge.
// Uses WAL mode for concurrent reads and crash-safe writes. Each user
// holds one logical document, stored section-wise so partial writes
// never clobber unrelated sections.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/questforge/questforge/internal/domain"
)

// Section names within a user document.
const (
	sectionCharacter     = "character"
	sectionHabits        = "habits"
	sectionAchievements  = "achievements"
	sectionClassProgress = "classProgress"
	sectionStreakData    = "streakData"
	sectionInventory     = "inventory"
)

// Store is the SQLite-backed DocumentStore plus its subscriber hub.
type Store struct {
	db *sql.DB

	mu   sync.Mutex
	subs map[string]map[int]func(domain.Change)
	next int
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode and a 5-second busy timeout.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// SQLite is single-writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db, subs: map[string]map[int]func(domain.Change){}}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close cleanly shuts down the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks database connectivity.
func (s *Store) Ping() error {
	return s.db.Ping()
}

// migrate runs idempotent schema migrations.
func (s *Store) migrate() error {
	migrations := []string{
		// One row per (user, section); the document is their union.
		`CREATE TABLE IF NOT EXISTS documents (
			user_id    TEXT NOT NULL,
			section    TEXT NOT NULL,
			data       TEXT NOT NULL,
			updated_at INTEGER NOT NULL,
			PRIMARY KEY (user_id, section)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_updated ON documents(updated_at)`,

		// Append-only journey log.
		`CREATE TABLE IF NOT EXISTS timeline (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL,
			type        TEXT NOT NULL,
			level       INTEGER NOT NULL DEFAULT 0,
			description TEXT NOT NULL,
			icon        TEXT NOT NULL DEFAULT '',
			details     TEXT NOT NULL DEFAULT '',
			created_at  INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_timeline_user ON timeline(user_id, created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── DocumentStore ──────────────────────────────────────────────────────────

// Get assembles the user's snapshot from its stored sections.
// Returns found=false when no section exists for the user.
func (s *Store) Get(ctx context.Context, userID string) (domain.UserState, bool, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT section, data, updated_at FROM documents WHERE user_id = ?`, userID)
	if err != nil {
		return domain.UserState{}, false, fmt.Errorf("query document: %w", err)
	}
	defer rows.Close()

	var state domain.UserState
	found := false
	var latest int64
	for rows.Next() {
		var section, data string
		var updatedAt int64
		if err := rows.Scan(&section, &data, &updatedAt); err != nil {
			return domain.UserState{}, false, err
		}
		if err := unmarshalSection(&state, section, data); err != nil {
			return domain.UserState{}, false, fmt.Errorf("decode %s: %w", section, err)
		}
		found = true
		if updatedAt > latest {
			latest = updatedAt
		}
	}
	if err := rows.Err(); err != nil {
		return domain.UserState{}, false, err
	}
	if found {
		state.UpdatedAt = time.Unix(latest, 0)
	}
	return state, found, nil
}

// Set merges the patch's non-nil sections into the user's document in a
// single transaction, then fans the merged snapshot out to subscribers
// tagged with the write's origin.
func (s *Store) Set(ctx context.Context, userID string, patch domain.StatePatch, origin domain.WriteOrigin) error {
	sections, err := marshalPatch(patch)
	if err != nil {
		return err
	}
	if len(sections) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for section, data := range sections {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO documents (user_id, section, data, updated_at) VALUES (?, ?, ?, ?)
			 ON CONFLICT(user_id, section) DO UPDATE SET data=excluded.data, updated_at=excluded.updated_at`,
			userID, section, data, now,
		); err != nil {
			return fmt.Errorf("upsert %s: %w", section, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	merged, _, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	s.notify(userID, domain.Change{State: merged, Origin: origin})
	return nil
}

// Subscribe registers a change callback for the user's document.
func (s *Store) Subscribe(userID string, fn func(domain.Change)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs[userID] == nil {
		s.subs[userID] = map[int]func(domain.Change){}
	}
	id := s.next
	s.next++
	s.subs[userID][id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[userID], id)
	}
}

func (s *Store) notify(userID string, ch domain.Change) {
	s.mu.Lock()
	fns := make([]func(domain.Change), 0, len(s.subs[userID]))
	for _, fn := range s.subs[userID] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(ch)
	}
}

// ─── Section codec ──────────────────────────────────────────────────────────

func marshalPatch(p domain.StatePatch) (map[string]string, error) {
	out := map[string]string{}
	put := func(section string, v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", section, err)
		}
		out[section] = string(b)
		return nil
	}
	if p.Character != nil {
		if err := put(sectionCharacter, p.Character); err != nil {
			return nil, err
		}
	}
	if p.Habits != nil {
		if err := put(sectionHabits, p.Habits); err != nil {
			return nil, err
		}
	}
	if p.Achievements != nil {
		if err := put(sectionAchievements, p.Achievements); err != nil {
			return nil, err
		}
	}
	if p.ClassProgress != nil {
		if err := put(sectionClassProgress, p.ClassProgress); err != nil {
			return nil, err
		}
	}
	if p.StreakData != nil {
		if err := put(sectionStreakData, p.StreakData); err != nil {
			return nil, err
		}
	}
	if p.Inventory != nil {
		if err := put(sectionInventory, p.Inventory); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func unmarshalSection(state *domain.UserState, section, data string) error {
	switch section {
	case sectionCharacter:
		return json.Unmarshal([]byte(data), &state.Character)
	case sectionHabits:
		return json.Unmarshal([]byte(data), &state.Habits)
	case sectionAchievements:
		return json.Unmarshal([]byte(data), &state.Achievements)
	case sectionClassProgress:
		return json.Unmarshal([]byte(data), &state.ClassProgress)
	case sectionStreakData:
		return json.Unmarshal([]byte(data), &state.StreakData)
	case sectionInventory:
		return json.Unmarshal([]byte(data), &state.Inventory)
	default:
		// Unknown sections are skipped so older binaries tolerate
		// documents written by newer ones.
		return nil
	}
}
