package constants

import "time"

// RFC 3339 date-time format string used for all serialized timestamps.
const RFC3339DateTimeFormat = "2006-01-02T15:04:05Z07:00"

// Gateway-wide rate limit, applied per client address.
const (
	DefaultRateLimitRequests      = 100
	DefaultRateLimitWindowMinutes = 1
)

// Submission routes get a tighter budget: the forms are public and write to the store.
const (
	DefaultSubmissionRateLimitRequests = 10
	SubmissionRateLimitScope           = "submissions"
	DefaultRateLimitScope              = "default"
)

const (
	DefaultStoreTimeout  = 10 * time.Second
	DefaultMailTimeout   = 10 * time.Second
	DefaultNotifyTimeout = 10 * time.Second
	DefaultNotifyWorkers = 16
	DefaultContactInbox  = "contact@nataa.app"
)

func DefaultRateLimitWindow() time.Duration {
	return time.Duration(DefaultRateLimitWindowMinutes) * time.Minute
}
