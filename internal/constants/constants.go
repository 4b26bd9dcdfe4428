package constants

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Request context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyClaims    = "claims"
	ContextKeyLogger    = "logger"
)

const (
	MinPasswordLength = 8
	// MaxPasswordBytes is the most bcrypt will hash.
	MaxPasswordBytes = 72
	MaxNameLength    = 50
	MaxTagLength     = 100

	// DefaultTaskTitle is used when a task is created without a title.
	DefaultTaskTitle = "Default Task Title"

	// DateLayout is the wire format of project start and end dates.
	DateLayout = "2006-01-02"

	CopySuffix = " (Copy)"
)
