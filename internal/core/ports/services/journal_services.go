package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournal retrieves a specific journal by its ID.
	GetJournal(ctx context.Context, journalID string) (*domain.Journal, error)

	// GetJournalWithDiagnostics reads a journal and its aggregates from one snapshot.
	GetJournalWithDiagnostics(ctx context.Context, journalID string) (*domain.Journal, *domain.Diagnostics, error)

	// ListEntries returns the journal's entries in creation order.
	ListEntries(ctx context.Context, journalID string) ([]domain.LedgerEntry, error)

	// Diagnostics returns the journal's aggregates as computed by the posting guard.
	Diagnostics(ctx context.Context, journalID string) (*domain.Diagnostics, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateJournal persists a new pending journal.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest) (*domain.Journal, error)

	// AddEntry appends an entry to a pending journal.
	AddEntry(ctx context.Context, journalID string, req dto.AddEntryRequest) (*domain.LedgerEntry, error)

	// PostJournal finalizes a balanced journal. Posting a posted journal is a no-op.
	PostJournal(ctx context.Context, journalID string) (*domain.Journal, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
