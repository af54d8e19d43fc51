package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/ritual/internal/cli"
	"github.com/julianstephens/ritual/internal/cli/backups"
	"github.com/julianstephens/ritual/internal/cli/habits"
	"github.com/julianstephens/ritual/internal/cli/overview"
	"github.com/julianstephens/ritual/internal/cli/profiles"
	"github.com/julianstephens/ritual/internal/cli/progress"
	"github.com/julianstephens/ritual/internal/cli/stats"
	"github.com/julianstephens/ritual/internal/cli/system"
	"github.com/julianstephens/ritual/internal/constants"
	"github.com/julianstephens/ritual/internal/errors"
	"github.com/julianstephens/ritual/internal/logger"
	"github.com/julianstephens/ritual/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path." type:"path" default:"~/.config/ritual/ritual.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init    system.InitCmd    `cmd:"" help:"Initialize ritual storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI."`
	Today   overview.TodayCmd `cmd:"" help:"Show today's habits and progress." default:"1"`
	Profile struct {
		Create  profiles.ProfileCreateCmd  `cmd:"" help:"Create a new profile."`
		List    profiles.ProfileListCmd    `cmd:"" help:"List profiles."`
		Switch  profiles.ProfileSwitchCmd  `cmd:"" help:"Switch the active profile."`
		Current profiles.ProfileCurrentCmd `cmd:"" help:"Show the active profile."`
		Delete  profiles.ProfileDeleteCmd  `cmd:"" help:"Delete a profile and all its data."`
	} `cmd:"" help:"Manage profiles."`
	Habit struct {
		Add     habits.HabitAddCmd     `cmd:"" help:"Add a new habit."`
		List    habits.HabitListCmd    `cmd:"" help:"List habits."`
		Done    habits.HabitDoneCmd    `cmd:"" help:"Mark a habit done for its current period."`
		Due     habits.HabitDueCmd     `cmd:"" help:"Show habits still due this period."`
		Archive habits.HabitArchiveCmd `cmd:"" help:"Archive a habit, freeing its name."`
	} `cmd:"" help:"Manage habits."`
	XP struct {
		Status progress.XPStatusCmd `cmd:"" help:"Show level and XP progress." default:"1"`
		Log    progress.XPLogCmd    `cmd:"" help:"Show recent XP events."`
	} `cmd:"" help:"Show XP and levels."`
	Stats struct {
		Habits stats.StatsHabitsCmd `cmd:"" help:"Per-habit completion and streak table." default:"1"`
		Streak stats.StatsStreakCmd `cmd:"" help:"Longest streak for one habit."`
		Best   stats.StatsBestCmd   `cmd:"" help:"Best streak across habits."`
	} `cmd:"" help:"Show streak statistics."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with streaks, XP, and per-profile progress"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg := logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(CLI.Config)}
	if err := logger.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	store := sqlite.NewStore(CLI.Config)
	appCtx := &cli.Context{Store: store}

	// Load the store before running the command (init handles its own setup)
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
		defer store.Close()
	}

	errors.Fatal(ctx.Run(appCtx))
}
