package system

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/julianstephens/ritual/internal/backup"
	"github.com/julianstephens/ritual/internal/cli"
	"github.com/julianstephens/ritual/internal/migration"
	"github.com/julianstephens/ritual/internal/storage/sqlite"
	"github.com/julianstephens/ritual/migrations"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	check := func(name string, fn func() error) {
		if err := fn(); err != nil {
			fmt.Printf("❌ %s: FAIL\n", name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ %s: OK\n", name)
		}
	}

	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return fmt.Errorf("doctor command only supports sqlite storage")
	}

	check("Database reachable", func() error {
		return store.GetDB().Ping()
	})
	check("Schema version", func() error {
		subFS, err := fs.Sub(migrations.FS, "sqlite")
		if err != nil {
			return err
		}
		return migration.NewRunner(store.GetDB(), subFS).ValidateVersion()
	})
	check("Migrations complete", func() error {
		subFS, err := fs.Sub(migrations.FS, "sqlite")
		if err != nil {
			return err
		}
		runner := migration.NewRunner(store.GetDB(), subFS)
		current, err := runner.CurrentVersion()
		if err != nil {
			return err
		}
		latest, err := runner.LatestVersion()
		if err != nil {
			return err
		}
		if current < latest {
			return fmt.Errorf("database at version %d, latest is %d (run 'ritual migrate')", current, latest)
		}
		return nil
	})
	check("Referential integrity", func() error {
		rows, err := store.GetDB().Query("PRAGMA foreign_key_check")
		if err != nil {
			return err
		}
		defer rows.Close()
		violations := 0
		for rows.Next() {
			violations++
		}
		if err := rows.Err(); err != nil {
			return err
		}
		if violations > 0 {
			return fmt.Errorf("%d foreign key violation(s) found", violations)
		}
		return nil
	})
	check("Active profile pointer", func() error {
		var count int
		err := store.GetDB().QueryRow(`
			SELECT COUNT(*) FROM app_state
			WHERE active_profile_id IS NOT NULL
			  AND active_profile_id NOT IN (SELECT id FROM profiles)`).Scan(&count)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("active profile points at a missing profile")
		}
		return nil
	})
	check("Clock sanity", func() error {
		now := time.Now()
		if now.Year() < 2020 {
			return fmt.Errorf("system clock reports %s, which looks wrong", now.Format("2006-01-02"))
		}
		return nil
	})

	// Backups are a warning, not a failure
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil || len(backups) == 0 {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   No backups found. Create one with: ritual backup create\n")
	} else {
		fmt.Printf("✓ Backups present: OK (%d)\n", len(backups))
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}
