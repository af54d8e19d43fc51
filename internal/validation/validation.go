// Package validation holds input checks for values crossing the CLI
// boundary. Domain invariants live in the services; these guards exist so
// commands can reject bad flags before touching storage.
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/ritual/internal/constants"
)

const maxNameLength = 100

// ValidateUsername checks a username before it reaches the registry.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if len(username) > maxNameLength {
		return fmt.Errorf("username cannot exceed %d characters", maxNameLength)
	}
	if strings.ContainsAny(username, " \t\n") {
		return fmt.Errorf("username cannot contain whitespace")
	}
	return nil
}

// ValidateHabitName checks a habit name before it reaches the engine.
func ValidateHabitName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("habit name cannot exceed %d characters", maxNameLength)
	}
	return nil
}

// ParseDateFlag parses an optional --date flag value (YYYY-MM-DD). An
// empty value means now. A nil clock means time.Now.
func ParseDateFlag(value string, now func() time.Time) (time.Time, error) {
	if now == nil {
		now = time.Now
	}
	if value == "" {
		return now(), nil
	}
	t, err := time.Parse(constants.DateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", value)
	}
	return t, nil
}
