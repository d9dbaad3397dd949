package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// WithTransaction executes fn inside a database transaction
func WithTransaction(ctx context.Context, db *database.DB, fn func(tx pgx.Tx) error) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				fmt.Printf("rollback error during panic recovery: %v\n", rbErr)
			}
			panic(p)
		}
	}()

	// Execute function
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetQuerier returns either transaction or pool
// Used in repositories to support both transactional and non-transactional operations
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := ctx.Value("tx").(pgx.Tx); ok {
		return tx
	}
	return db.Pool
}

// TxManager runs a unit of work with a transaction-bound context.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

type txManager struct {
	db *database.DB
}

func NewTxManager(db *database.DB) TxManager {
	return &txManager{db: db}
}

// WithinTx implements TxManager. Repositories called with txCtx share the transaction.
// database.AfterCommit callbacks registered on txCtx run only after a successful commit.
func (m *txManager) WithinTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	hookCtx, runHooks := database.WithCommitHooks(ctx)
	err := WithTransaction(hookCtx, m.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(hookCtx, "tx", tx)
		return fn(txCtx)
	})
	if err != nil {
		return err
	}
	runHooks()
	return nil
}
