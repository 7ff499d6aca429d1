package domain

import "time"

// VolunteerStatus enumerates application states.
type VolunteerStatus string

const (
	VolunteerPending  VolunteerStatus = "pending"
	VolunteerApproved VolunteerStatus = "approved"
	VolunteerRejected VolunteerStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s VolunteerStatus) Valid() bool {
	switch s {
	case VolunteerPending, VolunteerApproved, VolunteerRejected:
		return true
	}
	return false
}

// Volunteer is a user's application to help on a project.
type Volunteer struct {
	ID         int64
	UserID     int64
	ProjectID  int64
	Role       string
	Status     VolunteerStatus
	DateJoined time.Time
}

func (v Volunteer) Key() int64     { return v.ID }
func (v Volunteer) OwnerID() int64 { return v.UserID }
func (v Volunteer) Public() bool   { return v.Status == VolunteerApproved }
