package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mentorhub/mentorhub-api/internal/platform/logger"
)

// TxFn is a function that executes within a database transaction.
// It receives the context and a transaction, and returns an error if the operation fails.
// The transaction is committed if the function returns nil, or rolled back if it returns an error.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// TxRunner executes a function within a database transaction. Services depend
// on this interface rather than *sql.DB directly so transactional flows can be
// exercised in tests without a live database.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn TxFn) error
}

// SQLTxRunner is the production TxRunner backed by a *sql.DB.
type SQLTxRunner struct {
	DB *sql.DB
}

// RunInTransaction implements TxRunner using RunInTransaction against the
// underlying database handle.
func (r *SQLTxRunner) RunInTransaction(ctx context.Context, fn TxFn) error {
	return RunInTransaction(ctx, r.DB, fn)
}

// RunInTransaction executes the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// Otherwise, the transaction is committed.
// The function handles rollbacks in case of panic and logs appropriate information.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) error {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction",
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: failed to begin: %v", ErrTransactionFailed, err)
	}

	// Roll back the transaction if the function panics, then re-panic.
	defer func() {
		if p := recover(); p != nil {
			txErr := tx.Rollback()
			if txErr != nil {
				log.Error("failed to roll back transaction after panic",
					slog.String("error", txErr.Error()),
					slog.Any("panic", p))
			} else {
				log.Error("rolled back transaction after panic",
					slog.Any("panic", p))
			}
			panic(p)
		}
	}()

	err = fn(ctx, tx)
	if err != nil {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil {
			log.Error("failed to roll back transaction",
				slog.String("rollback_error", rollbackErr.Error()),
				slog.String("original_error", err.Error()))
			return fmt.Errorf(
				"error rolling back transaction: %v (original error: %w)",
				rollbackErr,
				err,
			)
		}
		log.Debug("rolled back transaction due to error",
			slog.String("error", err.Error()))
		return err
	}

	err = tx.Commit()
	if err != nil {
		log.Error("failed to commit transaction",
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: failed to commit: %v", ErrTransactionFailed, err)
	}

	return nil
}
