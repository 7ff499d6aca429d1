package handlers

import (
	"net/http"

	"communityaid/internal/domain"
	"communityaid/internal/resource"
)

func donationFilter(r *http.Request) (domain.Filter, error) {
	project, err := queryID(r, "project")
	if err != nil {
		return domain.Filter{}, err
	}
	return domain.Filter{ProjectID: project}, nil
}

// ListDonations returns the caller's donations; administrators see all of
// them. Amounts are masked for everyone but administrators.
func (a *App) ListDonations(w http.ResponseWriter, r *http.Request) {
	list(a, w, r, a.Donations, donationFilter, donationView)
}

func (a *App) GetDonation(w http.ResponseWriter, r *http.Request) {
	retrieve(a, w, r, a.Donations, donationView)
}

func (a *App) CreateDonation(w http.ResponseWriter, r *http.Request) {
	create[domain.Donation, resource.DonationPatch](a, w, r, a.Donations, donationView)
}

func (a *App) UpdateDonation(w http.ResponseWriter, r *http.Request) {
	update[domain.Donation, resource.DonationPatch](a, w, r, a.Donations, donationView)
}

func (a *App) DeleteDonation(w http.ResponseWriter, r *http.Request) {
	remove(a, w, r, a.Donations)
}
