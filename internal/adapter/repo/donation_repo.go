package repo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"communityaid/internal/domain"
	"communityaid/internal/infra"
	"communityaid/internal/sqlinline"
)

// DonationRepositoryPG implements the donation store using PostgreSQL.
type DonationRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(sql infra.SQLExecutor) *DonationRepositoryPG {
	return &DonationRepositoryPG{sql: sql}
}

// List returns donations inside scope, oldest first.
func (r *DonationRepositoryPG) List(ctx context.Context, scope domain.Scope, filter domain.Filter) ([]domain.Donation, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListDonations, scope.Restricted, scope.OwnerID, filter.ProjectID)
	if err != nil {
		return nil, translate(err, "donation")
	}
	defer rows.Close()

	items := []domain.Donation{}
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	return items, rows.Err()
}

func (r *DonationRepositoryPG) Get(ctx context.Context, id int64, scope domain.Scope) (*domain.Donation, error) {
	return scanDonation(r.sql.QueryRow(ctx, sqlinline.QSelectDonationByID, id, scope.Restricted, scope.OwnerID))
}

// Create inserts a new donation record.
func (r *DonationRepositoryPG) Create(ctx context.Context, d *domain.Donation) error {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertDonation, d.DonorID, d.ProjectID, d.Amount, d.Date, string(d.Status), d.Reference)
	return translate(row.Scan(&d.ID), "donation")
}

// RecordDonation persists a donation produced by the payment flow.
func (r *DonationRepositoryPG) RecordDonation(ctx context.Context, d *domain.Donation) error {
	return r.Create(ctx, d)
}

// Update only moves the donation to another project; amount, donor and date
// are fixed at creation.
func (r *DonationRepositoryPG) Update(ctx context.Context, d *domain.Donation) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QUpdateDonationProject, d.ID, d.ProjectID)
	if err != nil {
		return translate(err, "donation")
	}
	return mustAffect(tag)
}

func (r *DonationRepositoryPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteDonation, id)
	if err != nil {
		return translate(err, "donation")
	}
	return mustAffect(tag)
}

func scanDonation(row pgx.Row) (*domain.Donation, error) {
	var d domain.Donation
	var status string
	if err := row.Scan(&d.ID, &d.DonorID, &d.ProjectID, &d.Amount, &d.Date, &status, &d.Reference); err != nil {
		return nil, translate(err, "donation")
	}
	d.Status = domain.DonationStatus(status)
	return &d, nil
}
