package domain

// Actor is the identity making a request. The zero value is anonymous.
type Actor struct {
	ID      int64
	IsStaff bool
}

// Anonymous is the actor used for public endpoints.
var Anonymous = Actor{}

// Authenticated reports whether the actor carries a user identity.
func (a Actor) Authenticated() bool {
	return a.ID > 0
}

// Is reports whether the actor is the user identified by userID.
func (a Actor) Is(userID int64) bool {
	return a.Authenticated() && a.ID == userID
}
