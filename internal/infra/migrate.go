package infra

import (
	"context"
	"fmt"

	"communityaid/internal/sqlinline"
)

// Migrate creates any missing tables. It is safe to run on every start.
func Migrate(ctx context.Context, sql SQLExecutor) error {
	for i, stmt := range sqlinline.Schema {
		if _, err := sql.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
