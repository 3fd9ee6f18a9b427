package domain

import "time"

// Identity is the authenticated caller attached to a request.
type Identity struct {
	UserID   string
	Username string
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	Username  string
	UserID    string
	ExpiresAt time.Time
}
