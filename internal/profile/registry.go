// Package profile manages profile identities and the single active
// profile pointer.
package profile

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/storage"
)

type Registry struct {
	store storage.Provider
	now   func() time.Time
}

// NewRegistry creates a registry over the given store. A nil clock means
// time.Now.
func NewRegistry(store storage.Provider, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{store: store, now: now}
}

func normalize(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Create registers a new profile. Usernames are normalized to lowercase
// and must be unique.
func (r *Registry) Create(username string) (models.Profile, error) {
	name := normalize(username)
	if name == "" {
		return models.Profile{}, ErrEmptyUsername
	}

	if _, err := r.store.GetProfileByUsername(name); err == nil {
		return models.Profile{}, &AlreadyExistsError{Username: name}
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.Profile{}, err
	}

	p := models.Profile{
		ID:        uuid.New().String(),
		Username:  name,
		CreatedAt: r.now(),
	}
	if err := r.store.CreateProfile(p); err != nil {
		// Lost the race against another writer on the username.
		if errors.Is(err, storage.ErrConflict) {
			return models.Profile{}, &AlreadyExistsError{Username: name}
		}
		return models.Profile{}, err
	}
	return p, nil
}

func (r *Registry) List() ([]models.Profile, error) {
	return r.store.ListProfiles()
}

// Active resolves the active profile pointer. The bool reports whether an
// active profile exists; a pointer to a now-deleted profile counts as
// unset.
func (r *Registry) Active() (models.Profile, bool, error) {
	id, err := r.store.ActiveProfileID()
	if err != nil {
		return models.Profile{}, false, err
	}
	if id == "" {
		return models.Profile{}, false, nil
	}

	p, err := r.store.GetProfile(id)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Profile{}, false, nil
	}
	if err != nil {
		return models.Profile{}, false, err
	}
	return p, true, nil
}

// RequireActive returns the active profile or ErrActiveProfileRequired.
func (r *Registry) RequireActive() (models.Profile, error) {
	p, ok, err := r.Active()
	if err != nil {
		return models.Profile{}, err
	}
	if !ok {
		return models.Profile{}, ErrActiveProfileRequired
	}
	return p, nil
}

// Switch points the active profile at the named profile.
func (r *Registry) Switch(username string) (models.Profile, error) {
	name := normalize(username)

	p, err := r.store.GetProfileByUsername(name)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Profile{}, &NotFoundError{Username: name}
	}
	if err != nil {
		return models.Profile{}, err
	}

	if err := r.store.SetActiveProfileID(p.ID); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

// Delete removes the profile and everything it owns. When the profile is
// currently active the pointer is cleared in the same transaction.
func (r *Registry) Delete(username string) error {
	name := normalize(username)

	p, err := r.store.GetProfileByUsername(name)
	if errors.Is(err, storage.ErrNotFound) {
		return &NotFoundError{Username: name}
	}
	if err != nil {
		return err
	}

	return r.store.InTx(func(tx storage.Provider) error {
		activeID, err := tx.ActiveProfileID()
		if err != nil {
			return err
		}
		if activeID == p.ID {
			if err := tx.ClearActiveProfile(); err != nil {
				return err
			}
		}
		return tx.DeleteProfile(p.ID)
	})
}
