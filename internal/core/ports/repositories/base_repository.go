package repositories

import (
	"context"
)

// TxFunc is a unit of work executed against a transaction-scoped journal store.
type TxFunc func(ctx context.Context, tx JournalTx) error

// TransactionManager runs units of work atomically.
type TransactionManager interface {
	// RunInTx begins a transaction, runs fn and commits when fn returns nil.
	// Any error from fn, or a cancelled ctx, rolls the transaction back.
	RunInTx(ctx context.Context, fn TxFunc) error

	// RunInReadTx runs fn against a read-only snapshot.
	RunInReadTx(ctx context.Context, fn TxFunc) error
}

// RepositoryWithTx is a marker interface for repositories that support transactions
type RepositoryWithTx interface {
	TransactionManager
}
