package handlers

import (
	"net/http"
	"strings"

	"communityaid/internal/domain"
	"communityaid/internal/resource"
)

func volunteerFilter(r *http.Request) (domain.Filter, error) {
	project, err := queryID(r, "project")
	if err != nil {
		return domain.Filter{}, err
	}
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status != "" && !domain.VolunteerStatus(status).Valid() {
		return domain.Filter{}, domain.Invalid("status", "must be pending, approved or rejected")
	}
	return domain.Filter{ProjectID: project, Status: status}, nil
}

func (a *App) ListVolunteers(w http.ResponseWriter, r *http.Request) {
	list(a, w, r, a.Volunteers, volunteerFilter, volunteerView)
}

func (a *App) GetVolunteer(w http.ResponseWriter, r *http.Request) {
	retrieve(a, w, r, a.Volunteers, volunteerView)
}

func (a *App) CreateVolunteer(w http.ResponseWriter, r *http.Request) {
	create[domain.Volunteer, resource.VolunteerPatch](a, w, r, a.Volunteers, volunteerView)
}

func (a *App) UpdateVolunteer(w http.ResponseWriter, r *http.Request) {
	update[domain.Volunteer, resource.VolunteerPatch](a, w, r, a.Volunteers, volunteerView)
}

func (a *App) DeleteVolunteer(w http.ResponseWriter, r *http.Request) {
	remove(a, w, r, a.Volunteers)
}

func (a *App) ApproveVolunteers(w http.ResponseWriter, r *http.Request) {
	a.transition(w, r, a.VolunteerApprovals, resource.StateApproved)
}

func (a *App) RejectVolunteers(w http.ResponseWriter, r *http.Request) {
	a.transition(w, r, a.VolunteerApprovals, resource.StateRejected)
}
