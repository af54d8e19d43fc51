// Package habit implements the habit lifecycle: creation, archival,
// completion, and due-detection, always scoped to the active profile.
package habit

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/period"
	"github.com/julianstephens/ritual/internal/profile"
	"github.com/julianstephens/ritual/internal/storage"
	"github.com/julianstephens/ritual/internal/xp"
)

type Engine struct {
	store    storage.Provider
	profiles *profile.Registry
	ledger   *xp.Ledger // optional; nil disables rewards
	now      func() time.Time
}

// NewEngine creates an engine over the given collaborators. The ledger
// may be nil when completions should not award XP. A nil clock means
// time.Now.
func NewEngine(store storage.Provider, profiles *profile.Registry, ledger *xp.Ledger, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{store: store, profiles: profiles, ledger: ledger, now: now}
}

// ListOptions filters List results. A zero Cadence means no cadence
// filter.
type ListOptions struct {
	ActiveOnly bool
	Cadence    models.Cadence
}

// Create adds a new active habit for the active profile. Names are
// trimmed and must be unique among the profile's active habits; archived
// names are reusable.
func (e *Engine) Create(name string, cadence models.Cadence) (models.Habit, error) {
	p, err := e.profiles.RequireActive()
	if err != nil {
		return models.Habit{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Habit{}, ErrEmptyName
	}

	if _, err := e.store.GetActiveHabitByName(p.ID, name); err == nil {
		return models.Habit{}, &AlreadyExistsError{Name: name}
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.Habit{}, err
	}

	h := models.Habit{
		ID:        uuid.New().String(),
		ProfileID: p.ID,
		Name:      name,
		Cadence:   cadence,
		CreatedAt: e.now(),
		IsActive:  true,
	}
	if err := e.store.CreateHabit(h); err != nil {
		// Lost the race on the active-name constraint.
		if errors.Is(err, storage.ErrConflict) {
			return models.Habit{}, &AlreadyExistsError{Name: name}
		}
		return models.Habit{}, err
	}
	return h, nil
}

// List returns the active profile's habits in creation order.
func (e *Engine) List(opts ListOptions) ([]models.Habit, error) {
	p, err := e.profiles.RequireActive()
	if err != nil {
		return nil, err
	}
	return e.store.ListHabits(p.ID, opts.ActiveOnly, opts.Cadence)
}

// Get resolves a habit owned by the active profile.
func (e *Engine) Get(habitID string) (models.Habit, error) {
	p, err := e.profiles.RequireActive()
	if err != nil {
		return models.Habit{}, err
	}
	return e.ownedHabit(p, habitID)
}

func (e *Engine) ownedHabit(p models.Profile, habitID string) (models.Habit, error) {
	h, err := e.store.GetHabit(habitID)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Habit{}, &NotFoundError{HabitID: habitID}
	}
	if err != nil {
		return models.Habit{}, err
	}
	if h.ProfileID != p.ID {
		return models.Habit{}, &NotFoundError{HabitID: habitID}
	}
	return h, nil
}

// Archive transitions the habit to its terminal archived state.
// Archiving an already-archived habit is a no-op; it never reactivates.
func (e *Engine) Archive(habitID string) (models.Habit, error) {
	p, err := e.profiles.RequireActive()
	if err != nil {
		return models.Habit{}, err
	}

	h, err := e.ownedHabit(p, habitID)
	if err != nil {
		return models.Habit{}, err
	}

	if err := e.store.ArchiveHabit(h.ID); err != nil {
		return models.Habit{}, err
	}
	h.IsActive = false
	return h, nil
}

// Complete records a completion for the period containing when (the
// clock's now if when is zero) and awards XP when a ledger is attached.
// The completion and its reward commit in one transaction; a reward that
// turns out to be a duplicate is a no-op, never a rollback.
func (e *Engine) Complete(habitID string, when time.Time) (models.Completion, error) {
	p, err := e.profiles.RequireActive()
	if err != nil {
		return models.Completion{}, err
	}

	h, err := e.ownedHabit(p, habitID)
	if err != nil {
		return models.Completion{}, err
	}
	if !h.IsActive {
		return models.Completion{}, &ArchivedError{HabitID: habitID}
	}

	if when.IsZero() {
		when = e.now()
	}
	key := period.Key(when, h.Cadence)

	if _, err := e.store.GetCompletionForPeriod(h.ID, key); err == nil {
		return models.Completion{}, &AlreadyCompletedError{HabitID: habitID, PeriodKey: key}
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.Completion{}, err
	}

	c := models.Completion{
		ID:          uuid.New().String(),
		HabitID:     h.ID,
		CompletedAt: when,
		PeriodKey:   key,
	}

	err = e.store.InTx(func(tx storage.Provider) error {
		if err := tx.CreateCompletion(c); err != nil {
			return err
		}
		if e.ledger != nil {
			if _, err := e.ledger.Award(tx, p.ID, h.ID, c.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// The precondition check can lose a race; the constraint is
		// authoritative.
		if errors.Is(err, storage.ErrConflict) {
			return models.Completion{}, &AlreadyCompletedError{HabitID: habitID, PeriodKey: key}
		}
		return models.Completion{}, err
	}

	return c, nil
}

// Due returns the active habits with no completion recorded for the
// period containing when (the clock's now if when is zero).
func (e *Engine) Due(when time.Time) ([]models.Habit, error) {
	p, err := e.profiles.RequireActive()
	if err != nil {
		return nil, err
	}

	if when.IsZero() {
		when = e.now()
	}

	habits, err := e.store.ListHabits(p.ID, true, "")
	if err != nil {
		return nil, err
	}

	var due []models.Habit
	for _, h := range habits {
		key := period.Key(when, h.Cadence)
		_, err := e.store.GetCompletionForPeriod(h.ID, key)
		if errors.Is(err, storage.ErrNotFound) {
			due = append(due, h)
			continue
		}
		if err != nil {
			return nil, err
		}
	}
	return due, nil
}

// Completions returns the active profile's completions, optionally
// restricted to the given habit ids. Used by the analytics layer.
func (e *Engine) Completions(habitIDs []string) ([]models.Completion, error) {
	p, err := e.profiles.RequireActive()
	if err != nil {
		return nil, err
	}
	return e.store.ListCompletions(p.ID, habitIDs)
}
