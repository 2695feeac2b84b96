package model

import "time"

// RoleAdmin grants access to the review console.
const RoleAdmin = "admin"

// User represents an authenticated account, customer or operator.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
