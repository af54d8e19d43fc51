package habit

import (
	"errors"
	"fmt"
)

// ErrEmptyName is returned when a habit name is blank after trimming.
var ErrEmptyName = errors.New("habit name cannot be empty")

// NotFoundError is returned when a habit id does not exist or belongs to
// a different profile. The two causes are deliberately indistinguishable
// so callers cannot probe for other profiles' habits.
type NotFoundError struct {
	HabitID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("habit %q not found", e.HabitID)
}

// AlreadyExistsError is returned when an active habit with the same name
// already exists for the profile.
type AlreadyExistsError struct {
	Name string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("habit %q already exists", e.Name)
}

// ArchivedError is returned when a completion is attempted on an archived
// habit.
type ArchivedError struct {
	HabitID string
}

func (e *ArchivedError) Error() string {
	return fmt.Sprintf("habit %q is archived", e.HabitID)
}

// AlreadyCompletedError is returned when the habit already has a
// completion for the computed period.
type AlreadyCompletedError struct {
	HabitID   string
	PeriodKey string
}

func (e *AlreadyCompletedError) Error() string {
	return fmt.Sprintf("habit %q already completed for period %s", e.HabitID, e.PeriodKey)
}
