package domain

// Record is implemented by every stored entity.
type Record interface {
	Key() int64
	// OwnerID is the user the row belongs to, or 0 when nobody owns it.
	OwnerID() int64
	// Public reports whether the row is in its publicly visible state.
	Public() bool
}

// Scope narrows a collection to the rows an actor may see. The zero value is
// unrestricted.
type Scope struct {
	Restricted bool
	// PublicRows admits rows in their public state.
	PublicRows bool
	// OwnerID admits rows owned by this user when non-zero.
	OwnerID int64
}

// Unrestricted is the administrator scope.
var Unrestricted = Scope{}

// Admits reports whether r falls inside the scope.
func (s Scope) Admits(r Record) bool {
	if !s.Restricted {
		return true
	}
	if s.PublicRows && r.Public() {
		return true
	}
	return s.OwnerID != 0 && r.OwnerID() == s.OwnerID
}

// Filter carries optional list query parameters. Empty fields are ignored.
type Filter struct {
	ProjectID int64
	Status    string
	Query     string
}
