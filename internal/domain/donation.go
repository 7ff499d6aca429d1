package domain

import "time"

// DonationStatus tracks a donation's payment state.
type DonationStatus string

// DonationPending is the only state written today: nothing reconciles a
// gateway outcome back into the record yet.
const DonationPending DonationStatus = "pending"

// Currency is the single denomination amounts are expressed in.
const Currency = "KES"

// Donation represents a supporter contribution record. Amount is in whole
// currency units and never changes after creation.
type Donation struct {
	ID        int64
	DonorID   int64
	ProjectID int64
	Amount    int64
	Date      time.Time
	Status    DonationStatus
	Reference string
}

func (d Donation) Key() int64     { return d.ID }
func (d Donation) OwnerID() int64 { return d.DonorID }
func (d Donation) Public() bool   { return false }
