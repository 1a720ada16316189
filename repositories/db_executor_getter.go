package repositories

import (
	"context"

	"github.com/lurelab/lurelab-backend/models"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ExecutorGetter struct {
	connectionPool *pgxpool.Pool
}

func NewExecutorGetter(pool *pgxpool.Pool) ExecutorGetter {
	return ExecutorGetter{
		connectionPool: pool,
	}
}

const transactionMaxAttempts = 3

func (g ExecutorGetter) Transaction(
	ctx context.Context,
	fn func(tx Transaction) error,
) error {
	var err error
	// Concurrent transitions on the same outcome rows can deadlock; the
	// whole callback is replayed a bounded number of times.
	for attempt := 0; attempt < transactionMaxAttempts; attempt++ {
		err = pgx.BeginFunc(ctx, g.connectionPool, func(tx pgx.Tx) error {
			return fn(PgTx{tx: tx})
		})
		if !IsDeadlockError(err) {
			break
		}
	}

	// The callback can return ErrIgnoreRollBackError to explicitly specify
	// that the rollback is intentional and the error should be swallowed.
	if errors.Is(err, models.ErrIgnoreRollBackError) {
		return nil
	}
	return errors.Wrap(err, "error executing transaction")
}

func (g ExecutorGetter) GetExecutor() Executor {
	return PgExecutor{exec: g.connectionPool}
}
