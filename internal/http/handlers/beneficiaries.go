package handlers

import (
	"net/http"

	"communityaid/internal/domain"
	"communityaid/internal/resource"
)

func beneficiaryFilter(r *http.Request) (domain.Filter, error) {
	project, err := queryID(r, "project")
	if err != nil {
		return domain.Filter{}, err
	}
	return domain.Filter{ProjectID: project}, nil
}

func (a *App) ListBeneficiaries(w http.ResponseWriter, r *http.Request) {
	list(a, w, r, a.Beneficiaries, beneficiaryFilter, beneficiaryView)
}

func (a *App) GetBeneficiary(w http.ResponseWriter, r *http.Request) {
	retrieve(a, w, r, a.Beneficiaries, beneficiaryView)
}

func (a *App) CreateBeneficiary(w http.ResponseWriter, r *http.Request) {
	create[domain.Beneficiary, resource.BeneficiaryPatch](a, w, r, a.Beneficiaries, beneficiaryView)
}

func (a *App) UpdateBeneficiary(w http.ResponseWriter, r *http.Request) {
	update[domain.Beneficiary, resource.BeneficiaryPatch](a, w, r, a.Beneficiaries, beneficiaryView)
}

func (a *App) DeleteBeneficiary(w http.ResponseWriter, r *http.Request) {
	remove(a, w, r, a.Beneficiaries)
}

// ApproveBeneficiaries marks every listed beneficiary approved.
func (a *App) ApproveBeneficiaries(w http.ResponseWriter, r *http.Request) {
	a.transition(w, r, a.BeneficiaryApprovals, resource.StateApproved)
}
