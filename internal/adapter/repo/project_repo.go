package repo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"communityaid/internal/domain"
	"communityaid/internal/infra"
	"communityaid/internal/sqlinline"
)

// ProjectRepositoryPG stores projects.
type ProjectRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewProjectRepository(sql infra.SQLExecutor) *ProjectRepositoryPG {
	return &ProjectRepositoryPG{sql: sql}
}

func (r *ProjectRepositoryPG) List(ctx context.Context, scope domain.Scope, filter domain.Filter) ([]domain.Project, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListProjects, scope.Restricted, scope.PublicRows, scope.OwnerID, filter.Status, filter.Query)
	if err != nil {
		return nil, translate(err, "project")
	}
	defer rows.Close()

	items := []domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

func (r *ProjectRepositoryPG) Get(ctx context.Context, id int64, scope domain.Scope) (*domain.Project, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectProjectByID, id, scope.Restricted, scope.PublicRows, scope.OwnerID)
	return scanProject(row)
}

// FindProject looks a project up without visibility scoping.
func (r *ProjectRepositoryPG) FindProject(ctx context.Context, id int64) (*domain.Project, error) {
	return r.Get(ctx, id, domain.Unrestricted)
}

func (r *ProjectRepositoryPG) Create(ctx context.Context, p *domain.Project) error {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertProject, p.Title, p.Description, p.StartDate, p.EndDate, p.Status, p.CreatedBy)
	return translate(row.Scan(&p.ID), "project")
}

func (r *ProjectRepositoryPG) Update(ctx context.Context, p *domain.Project) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QUpdateProject, p.ID, p.Title, p.Description, p.StartDate, p.EndDate, p.Status)
	if err != nil {
		return translate(err, "project")
	}
	return mustAffect(tag)
}

func (r *ProjectRepositoryPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteProject, id)
	if err != nil {
		return translate(err, "project")
	}
	return mustAffect(tag)
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	var end *time.Time
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.StartDate, &end, &p.Status, &p.CreatedBy); err != nil {
		return nil, translate(err, "project")
	}
	p.EndDate = end
	return &p, nil
}
