package constants

// ============================================================================
// UPLOAD & INGESTION ERRORS (user-facing)
// ============================================================================

const (
	ErrNoDataInFile       = "No data found in the uploaded file."
	ErrUnknownFileTypeMsg = "Unable to identify file type. Please ensure your file contains the expected column headers."
	ErrUploadReadFailed   = "Failed to read the uploaded file"
)

// ============================================================================
// DATABASE ERRORS
// ============================================================================

const (
	ErrDBConnection   = "Database connection error. Please try again later"
	ErrTxStartFailed  = "failed to start transaction: "
	ErrTxCommitFailed = "failed to commit transaction: "
	ErrQueryFailed    = "query failed: "
)
