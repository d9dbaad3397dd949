package memory

import (
	"context"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/database"
)

// TxManager runs the unit of work directly. Map-backed stores have no rollback,
// but commit callbacks are dropped when fn fails.
type TxManager struct{}

func (TxManager) WithinTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	txCtx, runHooks := database.WithCommitHooks(ctx)
	if err := fn(txCtx); err != nil {
		return err
	}
	runHooks()
	return nil
}
