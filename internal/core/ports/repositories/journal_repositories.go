package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a journal. Missing journals return apperrors.ErrNotFound.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ExistsByExternalRef reports whether any journal already carries externalRef.
	ExistsByExternalRef(ctx context.Context, externalRef string) (bool, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// InsertJournal persists a new journal. A duplicate external reference fails with
	// an error matching apperrors.ErrDuplicate.
	InsertJournal(ctx context.Context, journal domain.Journal) error

	// MarkJournalPosted moves a pending journal to posted.
	MarkJournalPosted(ctx context.Context, journal domain.Journal) error
}

// EntryReader defines aggregate and listing queries over ledger entries.
type EntryReader interface {
	// ListEntriesByJournal returns a journal's entries in creation order.
	ListEntriesByJournal(ctx context.Context, journalID string) ([]domain.LedgerEntry, error)

	// SumBySide returns the debit and credit totals of a journal.
	SumBySide(ctx context.Context, journalID string) (debits int64, credits int64, err error)

	// DistinctCurrencies returns the sorted set of currencies used by a journal's entries.
	DistinctCurrencies(ctx context.Context, journalID string) ([]string, error)

	// NetForAccount returns credits minus debits over every entry of an account.
	NetForAccount(ctx context.Context, accountID string) (int64, error)

	// ListEntriesByAccount returns an account's entries newest first.
	ListEntriesByAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.LedgerEntry, error)
}

// EntryWriter appends ledger entries. Entries are never updated or deleted individually.
type EntryWriter interface {
	InsertEntry(ctx context.Context, entry domain.LedgerEntry) error
}

// JournalLocker serializes work on a single journal.
type JournalLocker interface {
	// LockJournalForUpdate loads the journal and holds its lock until the unit of work ends.
	LockJournalForUpdate(ctx context.Context, journalID string) (*domain.Journal, error)
}

// AccountLookup resolves accounts from inside a unit of work.
type AccountLookup interface {
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
}

// JournalTx is the transaction-scoped view of the store handed to a TxFunc.
type JournalTx interface {
	JournalReader
	JournalWriter
	JournalLocker
	EntryReader
	EntryWriter
	AccountLookup
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// for reads outside an explicit unit of work.
type JournalRepositoryFacade interface {
	JournalReader
	EntryReader
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
