package domain

import "errors"

// Domain errors are pure — no infrastructure dependency. Every
// validation error is raised before any state mutation.
var (
	ErrHabitNotFound    = errors.New("habit not found")
	ErrItemNotFound     = errors.New("item not found")
	ErrAlreadyCompleted = errors.New("quest already completed this period")
	ErrQuestSlotsFull   = errors.New("all quest slots are in use")

	// Shop / inventory
	ErrInsufficientFunds   = errors.New("not enough gold")
	ErrAlreadyOwned        = errors.New("permanent upgrade already owned")
	ErrPrerequisiteMissing = errors.New("required upgrade tier not owned")
	ErrInventoryFull       = errors.New("inventory is full")
	ErrStackLimit          = errors.New("item stack limit reached")

	// Streak
	ErrStreakAlreadyFrozen = errors.New("streak is already frozen")
	ErrRecoveryUnavailable = errors.New("streak recovery offer has expired")
	ErrNothingToRecover    = errors.New("no broken streak to recover")

	// Persistence — recoverable; local state stays authoritative.
	ErrPersistence = errors.New("persistence failure")

	// Input validation
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrInvalidRecurrence = errors.New("invalid recurrence")
	ErrInvalidStat       = errors.New("invalid stat")
	ErrEmptyHabitName    = errors.New("habit name is required")
)
