package constants

const (
	AppName           = "flamday"
	DefaultConfigPath = "~/.config/flamday/flamday.db"
	Version           = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// StorageKey is the single device-local key holding the itinerary snapshot
	StorageKey = "flam_itinerary_v1"

	// Ship schedule for the visit
	ShipDepartureTime = "17:30"
	ShipOnboardTime   = "17:00"
	DateOfVisit       = "2026-05-14"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "flamday-"
	BackupFileSuffix = ".db"

	DefaultTimezone = "Local"
	DefaultGPS      = "none"
)
