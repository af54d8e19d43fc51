package cli

import (
	"github.com/julianstephens/ritual/internal/backup"
	"github.com/julianstephens/ritual/internal/habit"
	"github.com/julianstephens/ritual/internal/logger"
	"github.com/julianstephens/ritual/internal/profile"
	"github.com/julianstephens/ritual/internal/storage"
	"github.com/julianstephens/ritual/internal/xp"
)

type Context struct {
	Store storage.Provider
}

// Profiles returns a registry bound to the context's store.
func (c *Context) Profiles() *profile.Registry {
	return profile.NewRegistry(c.Store, nil)
}

// Ledger returns an XP ledger bound to the context's store.
func (c *Context) Ledger() *xp.Ledger {
	return xp.NewLedger(c.Store, nil)
}

// Engine returns a habit engine wired to the registry and ledger.
func (c *Context) Engine() *habit.Engine {
	return habit.NewEngine(c.Store, c.Profiles(), c.Ledger(), nil)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.Create()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}
