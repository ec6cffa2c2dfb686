package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// LedgerReaderSvc defines account-side reads over the ledger.
type LedgerReaderSvc interface {
	// AccountHistory returns the account's entries newest first, offset paginated.
	AccountHistory(ctx context.Context, accountID string, page, size int) ([]domain.LedgerEntry, error)

	// AccountBalance returns credits minus debits over all of the account's entries.
	AccountBalance(ctx context.Context, accountID string) (*domain.AccountBalance, error)
}

// LedgerSvcFacade combines all account-side ledger service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
}
