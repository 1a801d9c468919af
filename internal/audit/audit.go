package audit

import "time"

// Well-known actions. The set is open: repositories store plain strings.
const (
	ActionUserCreated        = "USER_CREATED"
	ActionLogin              = "LOGIN"
	ActionFailedLogin        = "FAILED_LOGIN"
	ActionSuspiciousActivity = "SUSPICIOUS_ACTIVITY"
	ActionAttendanceChecked  = "ATTENDANCE_CHECKED"
)

// Entry is an append-only record of a security-relevant event.
// UserID is nil when the actor is unauthenticated, e.g. a failed login
// for an account that does not exist.
type Entry struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"user_id,omitempty"`
	Action    string    `json:"action"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
	Actor     *Actor    `json:"user,omitempty"`
}

// Actor is the joined user summary attached to admin-facing log listings.
type Actor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// Meta carries the request attributes recorded with every event.
type Meta struct {
	IPAddress string
	UserAgent string
}
