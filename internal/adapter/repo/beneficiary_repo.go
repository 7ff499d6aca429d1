package repo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"communityaid/internal/domain"
	"communityaid/internal/infra"
	"communityaid/internal/sqlinline"
)

// BeneficiaryRepositoryPG stores beneficiaries.
type BeneficiaryRepositoryPG struct {
	sql infra.SQLExecutor
	tx  infra.TxRunner
}

func NewBeneficiaryRepository(sql infra.SQLExecutor, tx infra.TxRunner) *BeneficiaryRepositoryPG {
	return &BeneficiaryRepositoryPG{sql: sql, tx: tx}
}

func (r *BeneficiaryRepositoryPG) List(ctx context.Context, scope domain.Scope, filter domain.Filter) ([]domain.Beneficiary, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListBeneficiaries, scope.Restricted, scope.PublicRows, filter.ProjectID)
	if err != nil {
		return nil, translate(err, "beneficiary")
	}
	defer rows.Close()

	items := []domain.Beneficiary{}
	for rows.Next() {
		b, err := scanBeneficiary(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}

func (r *BeneficiaryRepositoryPG) Get(ctx context.Context, id int64, scope domain.Scope) (*domain.Beneficiary, error) {
	return scanBeneficiary(r.sql.QueryRow(ctx, sqlinline.QSelectBeneficiaryByID, id, scope.Restricted, scope.PublicRows))
}

func (r *BeneficiaryRepositoryPG) Create(ctx context.Context, b *domain.Beneficiary) error {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertBeneficiary, b.ProjectID, b.Name, b.ContactInfo, b.Approved)
	return translate(row.Scan(&b.ID), "beneficiary")
}

func (r *BeneficiaryRepositoryPG) Update(ctx context.Context, b *domain.Beneficiary) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QUpdateBeneficiary, b.ID, b.ProjectID, b.Name, b.ContactInfo, b.Approved)
	if err != nil {
		return translate(err, "beneficiary")
	}
	return mustAffect(tag)
}

func (r *BeneficiaryRepositoryPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteBeneficiary, id)
	if err != nil {
		return translate(err, "beneficiary")
	}
	return mustAffect(tag)
}

// SetState approves every listed beneficiary in one transaction. The only
// supported state is "approved".
func (r *BeneficiaryRepositoryPG) SetState(ctx context.Context, ids []int64, state string) (int64, error) {
	if state != "approved" {
		return 0, domain.Invalid("state", "beneficiaries can only be approved")
	}
	var n int64
	err := r.tx.InTx(ctx, func(sql infra.SQLExecutor) error {
		tag, err := sql.Exec(ctx, sqlinline.QApproveBeneficiaries, ids)
		if err != nil {
			return translate(err, "beneficiary")
		}
		n = tag.RowsAffected()
		return nil
	})
	return n, err
}

func scanBeneficiary(row pgx.Row) (*domain.Beneficiary, error) {
	var b domain.Beneficiary
	if err := row.Scan(&b.ID, &b.ProjectID, &b.Name, &b.ContactInfo, &b.Approved); err != nil {
		return nil, translate(err, "beneficiary")
	}
	return &b, nil
}
