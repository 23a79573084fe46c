package store

import (
	"context"
	"testing"
	"time"

	"github.com/questforge/questforge/internal/domain"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetMissingUser(t *testing.T) {
	s := testStore(t)

	_, found, err := s.Get(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("found = true for a user with no document")
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	state := domain.NewUserState("hero")
	state.Character.Gold = 123
	state.Habits = []domain.Habit{{ID: "h1", Name: "read", Difficulty: domain.DifficultyEasy}}
	state.Achievements = []string{"first_quest"}

	if err := s.Set(ctx, "u1", domain.FullPatch(state), domain.WriteOrigin{SessionID: "local"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, found, err := s.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatal("document not found after Set")
	}
	if got.Character.Gold != 123 {
		t.Errorf("gold = %d, want 123", got.Character.Gold)
	}
	if len(got.Habits) != 1 || got.Habits[0].Name != "read" {
		t.Errorf("habits = %+v", got.Habits)
	}
	if len(got.Achievements) != 1 || got.Achievements[0] != "first_quest" {
		t.Errorf("achievements = %v", got.Achievements)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set")
	}
}

func TestPartialSetLeavesOtherSections(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	state := domain.NewUserState("hero")
	state.Character.Gold = 50
	state.Habits = []domain.Habit{{ID: "h1", Name: "run"}}
	if err := s.Set(ctx, "u1", domain.FullPatch(state), domain.WriteOrigin{SessionID: "local"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Character-only patch must not clobber habits.
	c := state.Character
	c.Gold = 999
	if err := s.Set(ctx, "u1", domain.StatePatch{Character: &c}, domain.WriteOrigin{SessionID: "local"}); err != nil {
		t.Fatalf("patch: %v", err)
	}

	got, _, err := s.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Character.Gold != 999 {
		t.Errorf("gold = %d, want 999", got.Character.Gold)
	}
	if len(got.Habits) != 1 || got.Habits[0].Name != "run" {
		t.Errorf("habits clobbered: %+v", got.Habits)
	}
}

func TestUsersAreIsolated(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	a := domain.NewUserState("alice")
	a.Character.Gold = 1
	b := domain.NewUserState("bob")
	b.Character.Gold = 2

	if err := s.Set(ctx, "a", domain.FullPatch(a), domain.WriteOrigin{SessionID: "local"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "b", domain.FullPatch(b), domain.WriteOrigin{SessionID: "local"}); err != nil {
		t.Fatal(err)
	}

	gotA, _, _ := s.Get(ctx, "a")
	gotB, _, _ := s.Get(ctx, "b")
	if gotA.Character.Name != "alice" || gotA.Character.Gold != 1 {
		t.Errorf("a = %+v", gotA.Character)
	}
	if gotB.Character.Name != "bob" || gotB.Character.Gold != 2 {
		t.Errorf("b = %+v", gotB.Character)
	}
}

func TestSubscribeDeliversOrigin(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	var got []domain.Change
	unsub := s.Subscribe("u1", func(ch domain.Change) {
		got = append(got, ch)
	})

	state := domain.NewUserState("hero")
	if err := s.Set(ctx, "u1", domain.FullPatch(state), domain.WriteOrigin{SessionID: "remote"}); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("deliveries = %d, want 1", len(got))
	}
	if got[0].Origin.SessionID != "remote" {
		t.Errorf("origin = %v, want remote", got[0].Origin)
	}

	unsub()
	if err := s.Set(ctx, "u1", domain.FullPatch(state), domain.WriteOrigin{SessionID: "local"}); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Error("delivery after unsubscribe")
	}
}

func TestTimelineAppendAndList(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		ev := domain.TimelineEvent{
			Type:        domain.EventLevelUp,
			Level:       i + 1,
			Description: "leveled up",
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		}
		if err := s.Append(ctx, "u1", ev); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	events, err := s.List(ctx, "u1", 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len = %d, want 2 (limit)", len(events))
	}
	// Newest first.
	if events[0].Level != 3 || events[1].Level != 2 {
		t.Errorf("order = %d, %d, want 3, 2", events[0].Level, events[1].Level)
	}
	if events[0].ID == "" {
		t.Error("Append should assign an id")
	}
}
