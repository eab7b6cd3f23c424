package model

import "time"

// User represents an account able to place orders.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Active       bool
	Admin        bool
	CreatedAt    time.Time
}
