package model

import "time"

// Session states stored in USERS.session_status.  The flag is the only
// session-tracking mechanism: there is no token and no expiry.
const (
	SessionActive   = "active"
	SessionInactive = "inactive"
)

// User represents an administrator record in the `USERS` table.  The json
// tags are omitted because services expose the UserInfo projection instead.
//
// Fields:
//
//	ID            – primary key identifier.
//	Username      – unique login name.
//	Password      – bcrypt hash or a legacy plaintext value.
//	SessionStatus – "active" after login, "inactive" after logout.
//	CreatedAt     – timestamp of creation.
//	UpdatedAt     – timestamp of last update.
type User struct {
	ID            uint64    // USERS.id_user
	Username      string    // USERS.username
	Password      string    // USERS.password
	SessionStatus string    // USERS.session_status
	CreatedAt     time.Time // USERS.created_at
	UpdatedAt     time.Time // USERS.updated_at
}

// UserInfo is the user projection returned by a successful login.
type UserInfo struct {
	ID            uint64 `json:"id_user"`
	Username      string `json:"username"`
	SessionStatus string `json:"session_status"`
}

// Info projects u without its password.
func (u User) Info() UserInfo {
	return UserInfo{ID: u.ID, Username: u.Username, SessionStatus: u.SessionStatus}
}

// SessionInfo is the payload of a session validation.  HTTP status alone
// does not reveal the session state; callers branch on IsActive.
type SessionInfo struct {
	Username      string `json:"username"`
	IsActive      bool   `json:"isActive"`
	SessionStatus string `json:"session_status"`
}
