package model

import "time"

// StaffUser is a store operator allowed to mutate orders and catalog.
type StaffUser struct {
	ID           int64
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}
