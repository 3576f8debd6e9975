// Package constants provides shared constants used throughout the pedigreecheck
// codebase: thresholds, default file and sheet names, and file permissions.
package constants

// Reconciliation thresholds
const (
	// MinChipDigits is the digit count below which a chip code is flagged
	// for manual review of its country-of-origin format
	MinChipDigits = 15

	// DefaultNearMatchThreshold is the minimum similarity ratio (0-100)
	// accepted by the optional near-match person tier
	DefaultNearMatchThreshold = 65

	// DefaultWorkers is the number of records reconciled concurrently
	DefaultWorkers = 1

	// MaxWorkers bounds the worker pool size
	MaxWorkers = 64
)

// Dataset defaults
const (
	// SubmittedSheet is the worksheet holding intake form responses
	SubmittedSheet = "Form Responses"

	// ReferenceSheet selects the first worksheet when empty
	ReferenceSheet = ""
)

// Output file names
const (
	// AuditLogPrefix prefixes the timestamped audit log file name
	AuditLogPrefix = "verification_log_"

	// AuditLogExt is the audit log file extension
	AuditLogExt = ".log"

	// AuditLogTimeLayout formats the run start time inside the audit log file name
	AuditLogTimeLayout = "2006-01-02_15-04-05"

	// AuditLineTimeLayout formats the timestamp of each audit log line
	AuditLineTimeLayout = "2006-01-02 15:04:05"

	// OutputFile receives the deduplicated report, one message per line
	OutputFile = "output_file.log"

	// ConfigName is the config file base name searched in $HOME and "."
	ConfigName = ".pedigreecheck"

	// EnvPrefix prefixes environment variables read by viper
	EnvPrefix = "PEDIGREE"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
