package domain

import "time"

// User represents a registered account of the tracking app.
type User struct {
	ID           int64
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
}
