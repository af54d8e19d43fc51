package models

import (
	"fmt"
	"strings"
	"time"
)

type Cadence string

const (
	CadenceDaily  Cadence = "daily"
	CadenceWeekly Cadence = "weekly"
)

// ParseCadence parses a user-supplied cadence string (case-insensitive).
func ParseCadence(s string) (Cadence, error) {
	switch Cadence(strings.ToLower(strings.TrimSpace(s))) {
	case CadenceDaily:
		return CadenceDaily, nil
	case CadenceWeekly:
		return CadenceWeekly, nil
	}
	return "", fmt.Errorf("invalid cadence %q (expected daily or weekly)", s)
}

func (c Cadence) Valid() bool {
	return c == CadenceDaily || c == CadenceWeekly
}

// Profile represents a user identity owning habits and XP
type Profile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"` // lowercase-normalized, unique
	CreatedAt time.Time `json:"created_at"`
}

// Habit represents a recurring practice tracked for one profile
type Habit struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profile_id"`
	Name      string    `json:"name"`
	Cadence   Cadence   `json:"cadence"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"` // archival is terminal: true -> false only
}

// Completion records that a habit was done for one period.
// (habit_id, period_key) is unique, enforced at the storage layer.
type Completion struct {
	ID          string    `json:"id"`
	HabitID     string    `json:"habit_id"`
	CompletedAt time.Time `json:"completed_at"`
	PeriodKey   string    `json:"period_key"`
}

// XPEvent records a reward. CompletionID is unique when present so a
// completion can never be rewarded twice.
type XPEvent struct {
	ID           string    `json:"id"`
	ProfileID    string    `json:"profile_id"`
	Amount       int       `json:"amount"`
	Reason       string    `json:"reason"`
	HabitID      string    `json:"habit_id,omitempty"`
	CompletionID string    `json:"completion_id,omitempty"`
	AwardedAt    time.Time `json:"awarded_at"`
}
