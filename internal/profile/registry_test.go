package profile

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/ritual/internal/storage/sqlite"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewRegistry(store, nil)
}

func TestCreateNormalizesUsername(t *testing.T) {
	reg := newTestRegistry(t)

	p, err := reg.Create("  Ada  ")
	if err != nil {
		t.Fatalf("Create() returned error: %v", err)
	}
	if p.Username != "ada" {
		t.Errorf("Create() username = %q, want %q", p.Username, "ada")
	}
	if p.ID == "" {
		t.Error("Create() should assign an id")
	}
}

func TestCreateRejectsEmptyUsername(t *testing.T) {
	reg := newTestRegistry(t)

	for _, username := range []string{"", "   "} {
		if _, err := reg.Create(username); !errors.Is(err, ErrEmptyUsername) {
			t.Errorf("Create(%q) = %v, want ErrEmptyUsername", username, err)
		}
	}
}

func TestCreateDuplicate(t *testing.T) {
	reg := newTestRegistry(t)

	if _, err := reg.Create("ada"); err != nil {
		t.Fatalf("Create() returned error: %v", err)
	}

	// Case only differs after normalization, still a duplicate
	_, err := reg.Create("ADA")
	var exists *AlreadyExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("Create(duplicate) = %v, want AlreadyExistsError", err)
	}
	if exists.Username != "ada" {
		t.Errorf("AlreadyExistsError username = %q, want %q", exists.Username, "ada")
	}
}

func TestActiveLifecycle(t *testing.T) {
	reg := newTestRegistry(t)

	if _, ok, err := reg.Active(); err != nil || ok {
		t.Fatalf("Active() on fresh store = (ok=%v, err=%v), want unset", ok, err)
	}
	if _, err := reg.RequireActive(); !errors.Is(err, ErrActiveProfileRequired) {
		t.Errorf("RequireActive() = %v, want ErrActiveProfileRequired", err)
	}

	if _, err := reg.Create("ada"); err != nil {
		t.Fatalf("Create() returned error: %v", err)
	}

	// Creation does not implicitly activate
	if _, ok, _ := reg.Active(); ok {
		t.Error("Active() after Create() should still be unset")
	}

	p, err := reg.Switch("Ada")
	if err != nil {
		t.Fatalf("Switch() returned error: %v", err)
	}
	if p.Username != "ada" {
		t.Errorf("Switch() username = %q, want %q", p.Username, "ada")
	}

	active, err := reg.RequireActive()
	if err != nil {
		t.Fatalf("RequireActive() returned error: %v", err)
	}
	if active.ID != p.ID {
		t.Errorf("RequireActive() id = %q, want %q", active.ID, p.ID)
	}
}

func TestSwitchUnknownProfile(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.Switch("ghost")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Switch(unknown) = %v, want NotFoundError", err)
	}
}

func TestDelete(t *testing.T) {
	t.Run("clears active pointer", func(t *testing.T) {
		reg := newTestRegistry(t)

		if _, err := reg.Create("ada"); err != nil {
			t.Fatalf("Create() returned error: %v", err)
		}
		if _, err := reg.Switch("ada"); err != nil {
			t.Fatalf("Switch() returned error: %v", err)
		}

		if err := reg.Delete("ada"); err != nil {
			t.Fatalf("Delete() returned error: %v", err)
		}
		if _, ok, _ := reg.Active(); ok {
			t.Error("Active() after deleting the active profile should be unset")
		}
	})

	t.Run("leaves other profiles alone", func(t *testing.T) {
		reg := newTestRegistry(t)

		if _, err := reg.Create("ada"); err != nil {
			t.Fatalf("Create() returned error: %v", err)
		}
		if _, err := reg.Create("grace"); err != nil {
			t.Fatalf("Create() returned error: %v", err)
		}
		if _, err := reg.Switch("grace"); err != nil {
			t.Fatalf("Switch() returned error: %v", err)
		}

		if err := reg.Delete("ada"); err != nil {
			t.Fatalf("Delete() returned error: %v", err)
		}

		active, err := reg.RequireActive()
		if err != nil {
			t.Fatalf("RequireActive() returned error: %v", err)
		}
		if active.Username != "grace" {
			t.Errorf("active profile = %q, want %q", active.Username, "grace")
		}
	})

	t.Run("unknown profile", func(t *testing.T) {
		reg := newTestRegistry(t)

		err := reg.Delete("ghost")
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("Delete(unknown) = %v, want NotFoundError", err)
		}
	})
}

func TestListOrder(t *testing.T) {
	reg := newTestRegistry(t)

	for _, username := range []string{"ada", "grace", "edsger"} {
		if _, err := reg.Create(username); err != nil {
			t.Fatalf("Create(%q) returned error: %v", username, err)
		}
	}

	profiles, err := reg.List()
	if err != nil {
		t.Fatalf("List() returned error: %v", err)
	}
	if len(profiles) != 3 {
		t.Fatalf("List() returned %d profiles, want 3", len(profiles))
	}
}
