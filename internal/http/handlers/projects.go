package handlers

import (
	"net/http"
	"strings"

	"communityaid/internal/domain"
	"communityaid/internal/resource"
)

func projectFilter(r *http.Request) (domain.Filter, error) {
	q := r.URL.Query()
	return domain.Filter{
		Status: strings.TrimSpace(q.Get("status")),
		Query:  strings.TrimSpace(q.Get("q")),
	}, nil
}

func (a *App) ListProjects(w http.ResponseWriter, r *http.Request) {
	list(a, w, r, a.Projects, projectFilter, projectView)
}

func (a *App) GetProject(w http.ResponseWriter, r *http.Request) {
	retrieve(a, w, r, a.Projects, projectView)
}

func (a *App) CreateProject(w http.ResponseWriter, r *http.Request) {
	create[domain.Project, resource.ProjectPatch](a, w, r, a.Projects, projectView)
}

func (a *App) UpdateProject(w http.ResponseWriter, r *http.Request) {
	update[domain.Project, resource.ProjectPatch](a, w, r, a.Projects, projectView)
}

func (a *App) DeleteProject(w http.ResponseWriter, r *http.Request) {
	remove(a, w, r, a.Projects)
}
