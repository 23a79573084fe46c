package domain

import "time"

// Difficulty grades a habit. It fixes base rewards and the stat gain.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid reports whether d is a known difficulty.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// Recurrence controls when a completed habit becomes completable again.
type Recurrence string

const (
	RecurrencePermanent Recurrence = "permanent"
	RecurrenceDaily     Recurrence = "daily"
	RecurrenceWeekly    Recurrence = "weekly"
	RecurrenceMonthly   Recurrence = "monthly"
)

// IsValid reports whether r is a known recurrence.
func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrencePermanent, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	default:
		return false
	}
}

// Habit is a quest the player completes in real life.
// TotalCompletions is monotonic; Streak resets on skip.
type Habit struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Difficulty       Difficulty `json:"difficulty"`
	Category         Stat       `json:"category"`
	Recurring        Recurrence `json:"recurring"`
	Streak           int        `json:"streak"`
	TotalCompletions int        `json:"totalCompletions"`
	Completed        bool       `json:"completed"`
	LastCompleted    *time.Time `json:"lastCompleted,omitempty"`
	SkippedCount     int        `json:"skippedCount"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// CompletedOn reports whether the habit was last completed on the
// calendar day containing t (local time).
func (h Habit) CompletedOn(t time.Time) bool {
	if h.LastCompleted == nil {
		return false
	}
	y1, m1, d1 := h.LastCompleted.Date()
	y2, m2, d2 := t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
