package constants

const (
	AppName           = "ritual"
	DefaultConfigPath = "~/.config/ritual/ritual.db"
	Version           = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// XP constants
	XPPerCompletion         = 1
	XPPerLevel              = 10
	XPReasonHabitCompletion = "HABIT_COMPLETION"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "ritual-"
	BackupFileSuffix = ".db"
)
