package constants

// Common error messages
const (
	ErrInvalidSession             = "invalid user_id or session"
	ErrInvalidJSON                = "invalid json or missing fields"
	ErrUserIDRequired             = "user_id required"
	ErrMethodNotAllowed           = "Method Not Allowed"
	ErrFailedToParseMultipartForm = "failed to parse multipart form"
	ErrNoFileUploaded             = "No file uploaded"
	ErrUnsupportedFileType        = "unsupported file type"
	ErrFailedToProcessFile        = "Failed to process file"
)

// Content types
const (
	ContentTypeJSON   = "application/json"
	HeaderContentType = "Content-Type"
)

// Date formats
const (
	DateTimeFormat = "2006-01-02 15:04:05"
	DateFormat     = "2006-01-02"
)

// Upload form fields
const (
	UploadFieldName = "loanFile"
	KeyUserID       = "user_id"
	ValueSuccess    = "success"
)
