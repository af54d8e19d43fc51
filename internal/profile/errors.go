package profile

import (
	"errors"
	"fmt"
)

// ErrActiveProfileRequired is returned when an operation needing a profile
// context runs with none set.
var ErrActiveProfileRequired = errors.New("no active profile set")

// ErrEmptyUsername is returned when a username is blank after trimming.
var ErrEmptyUsername = errors.New("username cannot be empty")

// AlreadyExistsError is returned when the normalized username is taken.
type AlreadyExistsError struct {
	Username string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("profile %q already exists", e.Username)
}

// NotFoundError is returned when no profile matches the normalized
// username.
type NotFoundError struct {
	Username string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("profile %q not found", e.Username)
}
