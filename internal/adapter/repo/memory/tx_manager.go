package memory

import "context"

// TxManager is a pass-through: the repos lock the store themselves, and
// the single-writer engine already serializes the writes inside one
// logical transaction.
type TxManager struct{}

func NewTxManager() TxManager {
	return TxManager{}
}

func (TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
