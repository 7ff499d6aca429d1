package repo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"communityaid/internal/domain"
	"communityaid/internal/infra"
	"communityaid/internal/sqlinline"
)

// VolunteerRepositoryPG stores volunteer applications.
type VolunteerRepositoryPG struct {
	sql infra.SQLExecutor
	tx  infra.TxRunner
}

func NewVolunteerRepository(sql infra.SQLExecutor, tx infra.TxRunner) *VolunteerRepositoryPG {
	return &VolunteerRepositoryPG{sql: sql, tx: tx}
}

func (r *VolunteerRepositoryPG) List(ctx context.Context, scope domain.Scope, filter domain.Filter) ([]domain.Volunteer, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListVolunteers, scope.Restricted, scope.PublicRows, scope.OwnerID, filter.ProjectID, filter.Status)
	if err != nil {
		return nil, translate(err, "volunteer")
	}
	defer rows.Close()

	items := []domain.Volunteer{}
	for rows.Next() {
		v, err := scanVolunteer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *v)
	}
	return items, rows.Err()
}

func (r *VolunteerRepositoryPG) Get(ctx context.Context, id int64, scope domain.Scope) (*domain.Volunteer, error) {
	return scanVolunteer(r.sql.QueryRow(ctx, sqlinline.QSelectVolunteerByID, id, scope.Restricted, scope.PublicRows, scope.OwnerID))
}

func (r *VolunteerRepositoryPG) Create(ctx context.Context, v *domain.Volunteer) error {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertVolunteer, v.UserID, v.ProjectID, v.Role, string(v.Status), v.DateJoined)
	return translate(row.Scan(&v.ID), "volunteer")
}

// Update writes project and role; status only moves through SetState.
func (r *VolunteerRepositoryPG) Update(ctx context.Context, v *domain.Volunteer) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QUpdateVolunteer, v.ID, v.ProjectID, v.Role)
	if err != nil {
		return translate(err, "volunteer")
	}
	return mustAffect(tag)
}

func (r *VolunteerRepositoryPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteVolunteer, id)
	if err != nil {
		return translate(err, "volunteer")
	}
	return mustAffect(tag)
}

// SetState moves every listed application to state in one transaction.
func (r *VolunteerRepositoryPG) SetState(ctx context.Context, ids []int64, state string) (int64, error) {
	if !domain.VolunteerStatus(state).Valid() {
		return 0, domain.Invalid("state", "unknown volunteer status")
	}
	var n int64
	err := r.tx.InTx(ctx, func(sql infra.SQLExecutor) error {
		tag, err := sql.Exec(ctx, sqlinline.QSetVolunteerStatus, ids, state)
		if err != nil {
			return translate(err, "volunteer")
		}
		n = tag.RowsAffected()
		return nil
	})
	return n, err
}

func scanVolunteer(row pgx.Row) (*domain.Volunteer, error) {
	var v domain.Volunteer
	var status string
	if err := row.Scan(&v.ID, &v.UserID, &v.ProjectID, &v.Role, &status, &v.DateJoined); err != nil {
		return nil, translate(err, "volunteer")
	}
	v.Status = domain.VolunteerStatus(status)
	return &v, nil
}
