package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines transaction control operations shared by
// repositories that support them.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error
}
