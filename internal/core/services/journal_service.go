package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// journalService owns the journal lifecycle. Every mutation locks the journal row
// first and checks invariants only while holding the lock.
type journalService struct {
	BaseService
	journalRepo    portsrepo.JournalRepositoryWithTx
	retry          RetryPolicy
	allowEmptyPost bool
	now            func() time.Time
	newID          func() string
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithRetryPolicy overrides how store conflicts are retried.
func WithRetryPolicy(policy RetryPolicy) JournalServiceOption {
	return func(s *journalService) {
		s.retry = policy
	}
}

// WithEmptyJournalPost controls whether a journal without entries may be posted.
func WithEmptyJournalPost(allowed bool) JournalServiceOption {
	return func(s *journalService) {
		s.allowEmptyPost = allowed
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) JournalServiceOption {
	return func(s *journalService) {
		s.now = now
	}
}

// WithIDGenerator replaces the journal and entry id generator.
func WithIDGenerator(newID func() string) JournalServiceOption {
	return func(s *journalService) {
		s.newID = newID
	}
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryWithTx, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo:    journalRepo,
		retry:          DefaultRetryPolicy,
		allowEmptyPost: true,
		now:            func() time.Time { return time.Now().UTC() },
		newID:          uuid.NewString,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournal creates a pending journal. A reused external reference fails with
// DuplicateReference, including when two creates race.
func (s *journalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest) (*domain.Journal, error) {
	description := domain.NormalizeOptionalText(req.Description)
	externalRef := domain.NormalizeOptionalText(req.ExternalRef)

	if domain.ExceedsLength(description, domain.MaxDescriptionLength) {
		return nil, apperrors.Validation(apperrors.CodeInvalidDescription, "description must be at most 500 characters")
	}
	if domain.ExceedsLength(externalRef, domain.MaxExternalRefLength) {
		return nil, apperrors.Validation(apperrors.CodeInvalidExternalRef, "externalRef must be at most 120 characters")
	}

	journal := domain.NewJournal(s.newID(), description, externalRef, s.now())

	err := s.runWithRetry(ctx, s.journalRepo, s.retry, "create_journal", func(ctx context.Context, tx portsrepo.JournalTx) error {
		if externalRef != nil {
			exists, err := tx.ExistsByExternalRef(ctx, *externalRef)
			if err != nil {
				return err
			}
			if exists {
				return apperrors.DuplicateReference(*externalRef)
			}
		}
		return tx.InsertJournal(ctx, journal)
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to create journal")
		return nil, err
	}

	s.LogInfo(ctx, "Journal created", slog.String("journal_id", journal.JournalID))
	return &journal, nil
}

// AddEntry appends an entry to a pending journal. Checks run in a fixed order and
// the first failure wins; nothing is written unless every check passes.
func (s *journalService) AddEntry(ctx context.Context, journalID string, req dto.AddEntryRequest) (*domain.LedgerEntry, error) {
	var entry domain.LedgerEntry

	err := s.runWithRetry(ctx, s.journalRepo, s.retry, "add_entry", func(ctx context.Context, tx portsrepo.JournalTx) error {
		journal, err := tx.LockJournalForUpdate(ctx, journalID)
		if err != nil {
			return err
		}
		if !journal.IsPending() {
			return apperrors.JournalNotPending(journalID, string(journal.Status))
		}

		if _, err := requireActiveAccount(ctx, tx, req.AccountID); err != nil {
			return err
		}

		side, err := domain.ParseSide(req.Side)
		if err != nil {
			return apperrors.Validation(apperrors.CodeInvalidSide, "side must be debit or credit").
				WithMeta("side", req.Side)
		}

		amount, ok := req.Amount()
		if !ok || amount <= 0 {
			return apperrors.Validation(apperrors.CodeInvalidAmount, "amountCents must be a positive integer").
				WithMeta("amountCents", req.AmountCents.String())
		}

		currency, err := domain.NormalizeCurrency(req.Currency)
		if err != nil {
			return apperrors.Validation(apperrors.CodeInvalidCurrency, "currency must be a recognized ISO-4217 code").
				WithMeta("currency", req.Currency)
		}

		existing, err := tx.DistinctCurrencies(ctx, journalID)
		if err != nil {
			return err
		}
		for _, c := range existing {
			if c != currency {
				return apperrors.CurrencyMismatch(journalID, c, currency)
			}
		}

		debits, credits, err := tx.SumBySide(ctx, journalID)
		if err != nil {
			return err
		}
		sideTotal := debits
		if side == domain.Credit {
			sideTotal = credits
		}
		if domain.AddOverflows(sideTotal, amount) {
			return apperrors.Validation(apperrors.CodeInvalidAmount, "amountCents would overflow the journal's "+string(side)+" total").
				WithMeta("amountCents", req.AmountCents.String()).
				WithMeta("currentTotalCents", sideTotal)
		}

		entry = domain.LedgerEntry{
			EntryID:     s.newID(),
			JournalID:   journalID,
			AccountID:   req.AccountID,
			Side:        side,
			AmountCents: amount,
			Currency:    currency,
			CreatedAt:   s.now(),
		}
		return tx.InsertEntry(ctx, entry)
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to add entry", slog.String("journal_id", journalID))
		return nil, err
	}

	s.LogDebug(ctx, "Entry added",
		slog.String("journal_id", journalID),
		slog.String("entry_id", entry.EntryID))
	return &entry, nil
}

// PostJournal moves a balanced pending journal to POSTED. A posted journal is
// returned unchanged.
func (s *journalService) PostJournal(ctx context.Context, journalID string) (*domain.Journal, error) {
	var result domain.Journal
	var transitioned bool

	err := s.runWithRetry(ctx, s.journalRepo, s.retry, "post_journal", func(ctx context.Context, tx portsrepo.JournalTx) error {
		transitioned = false
		journal, err := tx.LockJournalForUpdate(ctx, journalID)
		if err != nil {
			return err
		}
		if journal.Status == domain.Posted {
			result = *journal
			return nil
		}

		diag, err := computeDiagnostics(ctx, tx, journalID)
		if err != nil {
			return err
		}
		if diag.Currency == nil && !s.allowEmptyPost {
			return apperrors.EmptyJournal(journalID)
		}
		if !diag.Balanced {
			return apperrors.UnbalancedJournal(journalID, diag.CurrencyOrEmpty(), diag.DebitTotalCents, diag.CreditTotalCents, diag.NetCents)
		}

		journal.MarkPosted(s.now())
		if err := tx.MarkJournalPosted(ctx, *journal); err != nil {
			return err
		}
		result = *journal
		transitioned = true
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to post journal", slog.String("journal_id", journalID))
		return nil, err
	}

	if transitioned {
		s.LogInfo(ctx, "Journal posted", slog.String("journal_id", journalID))
	} else {
		s.LogDebug(ctx, "Journal already posted", slog.String("journal_id", journalID))
	}
	return &result, nil
}

// GetJournal retrieves a journal by its ID.
func (s *journalService) GetJournal(ctx context.Context, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to get journal", slog.String("journal_id", journalID))
		return nil, err
	}
	return journal, nil
}

// GetJournalWithDiagnostics reads the journal and its aggregates from one snapshot.
func (s *journalService) GetJournalWithDiagnostics(ctx context.Context, journalID string) (*domain.Journal, *domain.Diagnostics, error) {
	var journal *domain.Journal
	var diag *domain.Diagnostics

	err := s.journalRepo.RunInReadTx(ctx, func(ctx context.Context, tx portsrepo.JournalTx) error {
		var err error
		if journal, err = tx.FindJournalByID(ctx, journalID); err != nil {
			return err
		}
		diag, err = computeDiagnostics(ctx, tx, journalID)
		return err
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to get journal", slog.String("journal_id", journalID))
		return nil, nil, err
	}
	return journal, diag, nil
}

// ListEntries returns the journal's entries in creation order.
func (s *journalService) ListEntries(ctx context.Context, journalID string) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry

	err := s.journalRepo.RunInReadTx(ctx, func(ctx context.Context, tx portsrepo.JournalTx) error {
		if _, err := tx.FindJournalByID(ctx, journalID); err != nil {
			return err
		}
		var err error
		entries, err = tx.ListEntriesByJournal(ctx, journalID)
		return err
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to list entries", slog.String("journal_id", journalID))
		return nil, err
	}
	return entries, nil
}

// Diagnostics returns the journal aggregates computed the same way PostJournal does.
func (s *journalService) Diagnostics(ctx context.Context, journalID string) (*domain.Diagnostics, error) {
	_, diag, err := s.GetJournalWithDiagnostics(ctx, journalID)
	if err != nil {
		return nil, err
	}
	return diag, nil
}
