// Package storage defines the collaborator contract the domain services
// depend on. Implementations are expected to enforce the declared
// uniqueness invariants atomically rather than silently overwriting.
package storage

import (
	"errors"

	"github.com/julianstephens/ritual/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a write violates a declared uniqueness
// invariant. Services translate it to the matching domain error.
var ErrConflict = errors.New("unique constraint violated")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// InTx runs fn against a transaction-bound view of the provider.
	// The transaction commits when fn returns nil and rolls back
	// otherwise, so multi-write operations never commit partial state.
	InTx(fn func(Provider) error) error

	// Profiles
	CreateProfile(models.Profile) error
	GetProfile(id string) (models.Profile, error)
	GetProfileByUsername(username string) (models.Profile, error)
	ListProfiles() ([]models.Profile, error)
	DeleteProfile(id string) error

	// Active profile pointer (singleton; empty id means unset)
	ActiveProfileID() (string, error)
	SetActiveProfileID(id string) error
	ClearActiveProfile() error

	// Habits
	CreateHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetActiveHabitByName(profileID, name string) (models.Habit, error)
	// ListHabits returns the profile's habits in creation order. An
	// empty cadence means no cadence filter.
	ListHabits(profileID string, activeOnly bool, cadence models.Cadence) ([]models.Habit, error)
	ArchiveHabit(id string) error

	// Completions
	CreateCompletion(models.Completion) error
	GetCompletionForPeriod(habitID, periodKey string) (models.Completion, error)
	// ListCompletions returns completions for the profile's habits in
	// completion order, optionally restricted to the given habit ids.
	ListCompletions(profileID string, habitIDs []string) ([]models.Completion, error)

	// XP events
	CreateXPEvent(models.XPEvent) error
	GetXPEventByCompletion(completionID string) (models.XPEvent, error)
	TotalXP(profileID string) (int, error)
	ListXPEvents(profileID string, limit int) ([]models.XPEvent, error)

	// Utils
	GetConfigPath() string
}
