// Package session carries the identity of the current user. A Session is a
// plain value handed to whatever needs it; there is no process-wide user.
package session

// Session identifies who is acting. The zero value is an anonymous visitor.
type Session struct {
	// UserID is the creator identifier the remote note store knows the user by.
	UserID string
	Name   string
	// Admin is set when the request carried the admin passkey.
	Admin bool
}

// Anonymous is a session without a user.
var Anonymous = Session{}

// LoggedIn reports whether the session belongs to a user.
func (s Session) LoggedIn() bool {
	return s.UserID != ""
}
