package domain

// Beneficiary is a person or group a project supports. Only approved rows are
// visible to non-administrators.
type Beneficiary struct {
	ID          int64
	ProjectID   int64
	Name        string
	ContactInfo string
	Approved    bool
}

func (b Beneficiary) Key() int64     { return b.ID }
func (b Beneficiary) OwnerID() int64 { return 0 }
func (b Beneficiary) Public() bool   { return b.Approved }
