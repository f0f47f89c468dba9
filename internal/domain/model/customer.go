package model

import "time"

// Customer is a buyer identified by a normalized Jordanian phone number.
type Customer struct {
	ID        int64
	Name      string
	Phone     string
	Whatsapp  string
	Email     string
	Address   string
	City      string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
