package domain

import "time"

// AuthEventType names an auditable moment in the authentication flow.
type AuthEventType string

const (
	AuthEventRegistered    AuthEventType = "registered"
	AuthEventLogin         AuthEventType = "login"
	AuthEventLoginFailed   AuthEventType = "login_failed"
	AuthEventRefreshed     AuthEventType = "refreshed"
	AuthEventStatusChanged AuthEventType = "status_changed"
)

// AuthEvent is an audit record of an authentication outcome. Subject is the
// email attempted (for failures the account may not exist), UserID is set
// when the subject resolved to a real user.
type AuthEvent struct {
	Type      AuthEventType
	Subject   string
	UserID    string
	RemoteIP  string
	Timestamp time.Time
}
