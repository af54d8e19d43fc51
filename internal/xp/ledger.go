// Package xp records completion-triggered reward events and derives total
// experience and level.
package xp

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/ritual/internal/constants"
	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/storage"
)

type Ledger struct {
	store storage.Provider
	now   func() time.Time
}

// NewLedger creates a ledger over the given store. A nil clock means
// time.Now.
func NewLedger(store storage.Provider, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{store: store, now: now}
}

// Award records the reward for a completion. It is idempotent on the
// completion id: when an event already references it, that event is
// returned unchanged. The store argument is explicit so callers can pass
// a transaction-bound provider and keep the award inside the completion's
// transaction.
func (l *Ledger) Award(store storage.Provider, profileID, habitID, completionID string) (models.XPEvent, error) {
	existing, err := store.GetXPEventByCompletion(completionID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.XPEvent{}, err
	}

	event := models.XPEvent{
		ID:           uuid.New().String(),
		ProfileID:    profileID,
		Amount:       constants.XPPerCompletion,
		Reason:       constants.XPReasonHabitCompletion,
		HabitID:      habitID,
		CompletionID: completionID,
		AwardedAt:    l.now(),
	}
	if err := store.CreateXPEvent(event); err != nil {
		// Another writer awarded first; return their event.
		if errors.Is(err, storage.ErrConflict) {
			return store.GetXPEventByCompletion(completionID)
		}
		return models.XPEvent{}, err
	}
	return event, nil
}

// TotalXP sums the profile's XP events, 0 when none exist.
func (l *Ledger) TotalXP(profileID string) (int, error) {
	return l.store.TotalXP(profileID)
}

// Events returns the profile's most recent XP events, newest first.
// A limit of 0 means no limit.
func (l *Ledger) Events(profileID string, limit int) ([]models.XPEvent, error) {
	return l.store.ListXPEvents(profileID, limit)
}

// Level derives the level from total XP: level 1 at 0 XP, one level per
// ten XP.
func Level(totalXP int) int {
	return 1 + totalXP/constants.XPPerLevel
}

// LevelProgress reports the level, the XP earned into it, and the XP
// remaining to the next one.
func LevelProgress(totalXP int) (level, intoLevel, toNext int) {
	level = Level(totalXP)
	intoLevel = totalXP % constants.XPPerLevel
	toNext = constants.XPPerLevel - intoLevel
	return level, intoLevel, toNext
}
