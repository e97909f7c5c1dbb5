package constants

const (
	AppName           = "hard75"
	DefaultConfigPath = "~/.config/hard75/hard75.db"
	Version           = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// CivilTimezone is the fixed IANA zone that defines calendar-day boundaries
	// for everyone, regardless of where the binary runs.
	CivilTimezone = "America/Argentina/Buenos_Aires"

	// Storage keys. These mirror the persisted key-value layout so a state file
	// written by one store implementation can be read by the other.
	KeyChallengeState = "challenge_state"
	KeySelectedPlan   = "selected_plan"
	KeyCustomTasks    = "custom_tasks"
	KeyAttempts       = "attempts"
	KeyAccountSession = "account_session"

	// DefaultPlanID is the plan adopted on first run.
	DefaultPlanID = "hard"

	// Keyring constants for the account session token.
	KeyringService = "hard75"
	KeyringUser    = "session-token"

	// Watcher constants
	WatchLockfileName = "hard75-watch.lock"

	// DefaultServerURL is where the optional account backend listens.
	DefaultServerURL = "http://localhost:3001"
)
