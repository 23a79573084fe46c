package cli

import (
	"fmt"
	"strings"

	"github.com/questforge/questforge/internal/daemon"
	"github.com/questforge/questforge/internal/domain"
)

// resolveHabit finds a habit by exact id, exact name, or unambiguous
// id prefix.
func resolveHabit(d *daemon.Daemon, ref string) (domain.Habit, error) {
	state := d.Engine.State()

	for _, h := range state.Habits {
		if h.ID == ref || strings.EqualFold(h.Name, ref) {
			return h, nil
		}
	}

	var matches []domain.Habit
	for _, h := range state.Habits {
		if strings.HasPrefix(h.ID, ref) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return domain.Habit{}, fmt.Errorf("no quest matches %q (try 'questforge list')", ref)
	default:
		return domain.Habit{}, fmt.Errorf("%q is ambiguous, matches %d quests", ref, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
