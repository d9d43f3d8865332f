package config

const (
	DefaultTimeZone = "UTC"
	MaxUploadBytes  = 32 << 20

	// Upload result limits
	MaxUploadErrorMessages = 5

	// Session Retention Constants
	DefaultRetentionSchedule = "0 2 * * *" // nightly, after EOD file loads
	SessionRetentionDays     = 90
)
