// Package visibility narrows what an actor sees. Row scoping runs in the store
// before any per-row policy check, so hidden rows read as absent. Field
// masking runs at serialization time.
package visibility

import (
	"time"

	"communityaid/internal/domain"
	"communityaid/internal/policy"
)

// Scope returns the rows of kind visible to actor. Administrators see every
// row.
func Scope(kind policy.Kind, actor domain.Actor) domain.Scope {
	if actor.IsStaff {
		return domain.Unrestricted
	}
	switch kind {
	case policy.KindProject:
		return domain.Unrestricted
	case policy.KindBeneficiary:
		return domain.Scope{Restricted: true, PublicRows: true}
	case policy.KindVolunteer:
		return domain.Scope{Restricted: true, PublicRows: true, OwnerID: actor.ID}
	case policy.KindDonation, policy.KindUser:
		return domain.Scope{Restricted: true, OwnerID: actor.ID}
	}
	// Unknown kinds admit nothing.
	return domain.Scope{Restricted: true}
}

// Donation is the outbound shape of a donation. Amount is always present and
// null when the viewer may not see it.
type Donation struct {
	ID        int64     `json:"id"`
	Donor     int64     `json:"donor"`
	Project   int64     `json:"project"`
	Amount    *int64    `json:"amount"`
	Currency  string    `json:"currency"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
	Reference string    `json:"reference,omitempty"`
}

// DonationView renders d for actor. Only administrators see the amount.
func DonationView(actor domain.Actor, d domain.Donation) Donation {
	view := Donation{
		ID:        d.ID,
		Donor:     d.DonorID,
		Project:   d.ProjectID,
		Currency:  domain.Currency,
		Date:      d.Date,
		Status:    string(d.Status),
		Reference: d.Reference,
	}
	if actor.IsStaff {
		amount := d.Amount
		view.Amount = &amount
	}
	return view
}

// DonationViews renders a slice with DonationView.
func DonationViews(actor domain.Actor, items []domain.Donation) []Donation {
	out := make([]Donation, 0, len(items))
	for _, d := range items {
		out = append(out, DonationView(actor, d))
	}
	return out
}
