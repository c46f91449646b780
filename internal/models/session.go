package models

import "time"

// Session is the snapshot of the logged-in user.
type Session struct {
	UserID    string
	Email     string
	Nickname  string
	Name      string
	IssuedAt  time.Time
	ExpiresAt *time.Time
}
