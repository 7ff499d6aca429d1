package domain

import "time"

// User represents an account. IsStaff marks administrators.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	IsStaff      bool
	DateOfBirth  *time.Time
	ProfilePhoto string
	DateJoined   time.Time
}

func (u User) Key() int64     { return u.ID }
func (u User) OwnerID() int64 { return u.ID }
func (u User) Public() bool   { return false }

// Actor returns the identity u acts as.
func (u User) Actor() Actor {
	return Actor{ID: u.ID, IsStaff: u.IsStaff}
}
