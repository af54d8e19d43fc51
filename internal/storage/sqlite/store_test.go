package sqlite

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/storage"
)

// setupTestStore creates and initializes a store backed by a temp file.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func makeProfile(t *testing.T, store storage.Provider, username string) models.Profile {
	t.Helper()

	p := models.Profile{
		ID:        uuid.New().String(),
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
	if err := store.CreateProfile(p); err != nil {
		t.Fatalf("failed to create profile %q: %v", username, err)
	}
	return p
}

func makeHabit(t *testing.T, store storage.Provider, profileID, name string, cadence models.Cadence) models.Habit {
	t.Helper()

	h := models.Habit{
		ID:        uuid.New().String(),
		ProfileID: profileID,
		Name:      name,
		Cadence:   cadence,
		CreatedAt: time.Now().UTC(),
		IsActive:  true,
	}
	if err := store.CreateHabit(h); err != nil {
		t.Fatalf("failed to create habit %q: %v", name, err)
	}
	return h
}

func TestInitAndLoad(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() returned unexpected error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() returned unexpected error: %v", err)
	}

	reopened := NewStore(dbPath)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() on initialized database returned error: %v", err)
	}
	reopened.Close()
}

func TestLoadUninitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("Load() on missing database should return an error")
	}
}

func TestProfileUsernameUnique(t *testing.T) {
	store := setupTestStore(t)

	makeProfile(t, store, "ada")

	dup := models.Profile{ID: uuid.New().String(), Username: "ada", CreatedAt: time.Now().UTC()}
	err := store.CreateProfile(dup)
	if !errors.Is(err, storage.ErrConflict) {
		t.Errorf("CreateProfile(duplicate username) = %v, want ErrConflict", err)
	}
}

func TestActiveProfilePointer(t *testing.T) {
	store := setupTestStore(t)

	id, err := store.ActiveProfileID()
	if err != nil {
		t.Fatalf("ActiveProfileID() returned error: %v", err)
	}
	if id != "" {
		t.Errorf("ActiveProfileID() on fresh store = %q, want empty", id)
	}

	ada := makeProfile(t, store, "ada")
	grace := makeProfile(t, store, "grace")

	if err := store.SetActiveProfileID(ada.ID); err != nil {
		t.Fatalf("SetActiveProfileID() returned error: %v", err)
	}
	if id, _ := store.ActiveProfileID(); id != ada.ID {
		t.Errorf("ActiveProfileID() = %q, want %q", id, ada.ID)
	}

	// Switching overwrites the singleton row
	if err := store.SetActiveProfileID(grace.ID); err != nil {
		t.Fatalf("SetActiveProfileID() returned error: %v", err)
	}
	if id, _ := store.ActiveProfileID(); id != grace.ID {
		t.Errorf("ActiveProfileID() after switch = %q, want %q", id, grace.ID)
	}

	if err := store.ClearActiveProfile(); err != nil {
		t.Fatalf("ClearActiveProfile() returned error: %v", err)
	}
	if id, _ := store.ActiveProfileID(); id != "" {
		t.Errorf("ActiveProfileID() after clear = %q, want empty", id)
	}
}

func TestDeleteProfileCascades(t *testing.T) {
	store := setupTestStore(t)

	p := makeProfile(t, store, "ada")
	h := makeHabit(t, store, p.ID, "read", models.CadenceDaily)

	comp := models.Completion{
		ID:          uuid.New().String(),
		HabitID:     h.ID,
		CompletedAt: time.Now().UTC(),
		PeriodKey:   "2026-08-31",
	}
	if err := store.CreateCompletion(comp); err != nil {
		t.Fatalf("CreateCompletion() returned error: %v", err)
	}
	ev := models.XPEvent{
		ID:           uuid.New().String(),
		ProfileID:    p.ID,
		Amount:       1,
		Reason:       "HABIT_COMPLETION",
		HabitID:      h.ID,
		CompletionID: comp.ID,
		AwardedAt:    time.Now().UTC(),
	}
	if err := store.CreateXPEvent(ev); err != nil {
		t.Fatalf("CreateXPEvent() returned error: %v", err)
	}

	if err := store.DeleteProfile(p.ID); err != nil {
		t.Fatalf("DeleteProfile() returned error: %v", err)
	}

	if _, err := store.GetHabit(h.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetHabit() after profile delete = %v, want ErrNotFound", err)
	}
	if _, err := store.GetCompletionForPeriod(h.ID, comp.PeriodKey); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetCompletionForPeriod() after profile delete = %v, want ErrNotFound", err)
	}
	if _, err := store.GetXPEventByCompletion(comp.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetXPEventByCompletion() after profile delete = %v, want ErrNotFound", err)
	}
}

func TestDeleteActiveProfileClearsPointer(t *testing.T) {
	store := setupTestStore(t)

	p := makeProfile(t, store, "ada")
	if err := store.SetActiveProfileID(p.ID); err != nil {
		t.Fatalf("SetActiveProfileID() returned error: %v", err)
	}
	if err := store.DeleteProfile(p.ID); err != nil {
		t.Fatalf("DeleteProfile() returned error: %v", err)
	}

	// ON DELETE SET NULL leaves the pointer unset
	id, err := store.ActiveProfileID()
	if err != nil {
		t.Fatalf("ActiveProfileID() returned error: %v", err)
	}
	if id != "" {
		t.Errorf("ActiveProfileID() after deleting active profile = %q, want empty", id)
	}
}

func TestActiveHabitNameUnique(t *testing.T) {
	store := setupTestStore(t)
	p := makeProfile(t, store, "ada")

	h := makeHabit(t, store, p.ID, "read", models.CadenceDaily)

	dup := models.Habit{
		ID:        uuid.New().String(),
		ProfileID: p.ID,
		Name:      "read",
		Cadence:   models.CadenceWeekly,
		CreatedAt: time.Now().UTC(),
		IsActive:  true,
	}
	if err := store.CreateHabit(dup); !errors.Is(err, storage.ErrConflict) {
		t.Errorf("CreateHabit(duplicate active name) = %v, want ErrConflict", err)
	}

	// Archiving frees the name for reuse
	if err := store.ArchiveHabit(h.ID); err != nil {
		t.Fatalf("ArchiveHabit() returned error: %v", err)
	}
	if err := store.CreateHabit(dup); err != nil {
		t.Errorf("CreateHabit() after archiving namesake returned error: %v", err)
	}

	// Same name on another profile is always fine
	other := makeProfile(t, store, "grace")
	makeHabit(t, store, other.ID, "read", models.CadenceDaily)
}

func TestGetActiveHabitByName(t *testing.T) {
	store := setupTestStore(t)
	p := makeProfile(t, store, "ada")
	h := makeHabit(t, store, p.ID, "read", models.CadenceDaily)

	got, err := store.GetActiveHabitByName(p.ID, "read")
	if err != nil {
		t.Fatalf("GetActiveHabitByName() returned error: %v", err)
	}
	if got.ID != h.ID {
		t.Errorf("GetActiveHabitByName() = %q, want %q", got.ID, h.ID)
	}

	if err := store.ArchiveHabit(h.ID); err != nil {
		t.Fatalf("ArchiveHabit() returned error: %v", err)
	}
	if _, err := store.GetActiveHabitByName(p.ID, "read"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetActiveHabitByName() after archive = %v, want ErrNotFound", err)
	}
}

func TestListHabitsFilters(t *testing.T) {
	store := setupTestStore(t)
	p := makeProfile(t, store, "ada")

	daily := makeHabit(t, store, p.ID, "read", models.CadenceDaily)
	weekly := makeHabit(t, store, p.ID, "review", models.CadenceWeekly)
	archived := makeHabit(t, store, p.ID, "stretch", models.CadenceDaily)
	if err := store.ArchiveHabit(archived.ID); err != nil {
		t.Fatalf("ArchiveHabit() returned error: %v", err)
	}

	all, err := store.ListHabits(p.ID, false, "")
	if err != nil {
		t.Fatalf("ListHabits() returned error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ListHabits(all) returned %d habits, want 3", len(all))
	}

	active, err := store.ListHabits(p.ID, true, "")
	if err != nil {
		t.Fatalf("ListHabits() returned error: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("ListHabits(active) returned %d habits, want 2", len(active))
	}

	weeklies, err := store.ListHabits(p.ID, true, models.CadenceWeekly)
	if err != nil {
		t.Fatalf("ListHabits() returned error: %v", err)
	}
	if len(weeklies) != 1 || weeklies[0].ID != weekly.ID {
		t.Errorf("ListHabits(weekly) = %v, want just %q", weeklies, weekly.ID)
	}

	// Creation order is stable
	if all[0].ID != daily.ID {
		t.Errorf("ListHabits() first habit = %q, want %q (creation order)", all[0].ID, daily.ID)
	}
}

func TestCompletionPeriodUnique(t *testing.T) {
	store := setupTestStore(t)
	p := makeProfile(t, store, "ada")
	h := makeHabit(t, store, p.ID, "read", models.CadenceDaily)

	comp := models.Completion{
		ID:          uuid.New().String(),
		HabitID:     h.ID,
		CompletedAt: time.Now().UTC(),
		PeriodKey:   "2026-08-31",
	}
	if err := store.CreateCompletion(comp); err != nil {
		t.Fatalf("CreateCompletion() returned error: %v", err)
	}

	dup := models.Completion{
		ID:          uuid.New().String(),
		HabitID:     h.ID,
		CompletedAt: time.Now().UTC(),
		PeriodKey:   "2026-08-31",
	}
	if err := store.CreateCompletion(dup); !errors.Is(err, storage.ErrConflict) {
		t.Errorf("CreateCompletion(duplicate period) = %v, want ErrConflict", err)
	}
}

func TestXPEventCompletionUnique(t *testing.T) {
	store := setupTestStore(t)
	p := makeProfile(t, store, "ada")
	h := makeHabit(t, store, p.ID, "read", models.CadenceDaily)

	comp := models.Completion{
		ID:          uuid.New().String(),
		HabitID:     h.ID,
		CompletedAt: time.Now().UTC(),
		PeriodKey:   "2026-08-31",
	}
	if err := store.CreateCompletion(comp); err != nil {
		t.Fatalf("CreateCompletion() returned error: %v", err)
	}

	ev := models.XPEvent{
		ID:           uuid.New().String(),
		ProfileID:    p.ID,
		Amount:       1,
		Reason:       "HABIT_COMPLETION",
		HabitID:      h.ID,
		CompletionID: comp.ID,
		AwardedAt:    time.Now().UTC(),
	}
	if err := store.CreateXPEvent(ev); err != nil {
		t.Fatalf("CreateXPEvent() returned error: %v", err)
	}

	dup := ev
	dup.ID = uuid.New().String()
	if err := store.CreateXPEvent(dup); !errors.Is(err, storage.ErrConflict) {
		t.Errorf("CreateXPEvent(duplicate completion) = %v, want ErrConflict", err)
	}
}

func TestTotalXP(t *testing.T) {
	store := setupTestStore(t)
	p := makeProfile(t, store, "ada")

	total, err := store.TotalXP(p.ID)
	if err != nil {
		t.Fatalf("TotalXP() returned error: %v", err)
	}
	if total != 0 {
		t.Errorf("TotalXP() with no events = %d, want 0", total)
	}

	for i := 0; i < 3; i++ {
		ev := models.XPEvent{
			ID:        uuid.New().String(),
			ProfileID: p.ID,
			Amount:    1,
			Reason:    "HABIT_COMPLETION",
			AwardedAt: time.Now().UTC(),
		}
		if err := store.CreateXPEvent(ev); err != nil {
			t.Fatalf("CreateXPEvent() returned error: %v", err)
		}
	}

	total, err = store.TotalXP(p.ID)
	if err != nil {
		t.Fatalf("TotalXP() returned error: %v", err)
	}
	if total != 3 {
		t.Errorf("TotalXP() = %d, want 3", total)
	}
}

func TestInTx(t *testing.T) {
	t.Run("rollback on error", func(t *testing.T) {
		store := setupTestStore(t)
		p := makeProfile(t, store, "ada")

		err := store.InTx(func(tx storage.Provider) error {
			h := models.Habit{
				ID:        uuid.New().String(),
				ProfileID: p.ID,
				Name:      "read",
				Cadence:   models.CadenceDaily,
				CreatedAt: time.Now().UTC(),
				IsActive:  true,
			}
			if err := tx.CreateHabit(h); err != nil {
				return err
			}
			return fmt.Errorf("boom")
		})
		if err == nil {
			t.Fatal("InTx() should propagate the callback error")
		}

		habits, err := store.ListHabits(p.ID, false, "")
		if err != nil {
			t.Fatalf("ListHabits() returned error: %v", err)
		}
		if len(habits) != 0 {
			t.Errorf("found %d habits after rollback, want 0", len(habits))
		}
	})

	t.Run("commit on success", func(t *testing.T) {
		store := setupTestStore(t)
		p := makeProfile(t, store, "ada")

		err := store.InTx(func(tx storage.Provider) error {
			makeHabit(t, tx, p.ID, "read", models.CadenceDaily)
			return nil
		})
		if err != nil {
			t.Fatalf("InTx() returned error: %v", err)
		}

		habits, err := store.ListHabits(p.ID, false, "")
		if err != nil {
			t.Fatalf("ListHabits() returned error: %v", err)
		}
		if len(habits) != 1 {
			t.Errorf("found %d habits after commit, want 1", len(habits))
		}
	})

	t.Run("nested call joins the transaction", func(t *testing.T) {
		store := setupTestStore(t)
		p := makeProfile(t, store, "ada")

		err := store.InTx(func(tx storage.Provider) error {
			return tx.InTx(func(inner storage.Provider) error {
				makeHabit(t, inner, p.ID, "read", models.CadenceDaily)
				return nil
			})
		})
		if err != nil {
			t.Fatalf("nested InTx() returned error: %v", err)
		}

		habits, err := store.ListHabits(p.ID, false, "")
		if err != nil {
			t.Fatalf("ListHabits() returned error: %v", err)
		}
		if len(habits) != 1 {
			t.Errorf("found %d habits, want 1", len(habits))
		}
	})
}
