// Package repo implements the entity store on PostgreSQL through
// infra.SQLExecutor.
package repo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"communityaid/internal/domain"
	"communityaid/internal/infra"
)

// translate maps driver errors onto the domain taxonomy.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if infra.IsNoRows(err) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case infra.CodeForeignKeyViolation:
			return domain.Invalid(fkField(pgErr.ConstraintName), "referenced row does not exist")
		case infra.CodeUniqueViolation:
			return domain.Invalid(uniqueField(pgErr.ConstraintName), fmt.Sprintf("a %s with that value already exists", what))
		}
	}
	return fmt.Errorf("%s: %w", what, err)
}

func fkField(constraint string) string {
	switch constraint {
	case "donations_donor_id_fkey":
		return "donor"
	case "volunteers_user_id_fkey":
		return "user"
	case "projects_created_by_fkey":
		return "created_by"
	}
	return "project"
}

func uniqueField(constraint string) string {
	if constraint == "users_username_key" {
		return "username"
	}
	return ""
}

func mustAffect(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
