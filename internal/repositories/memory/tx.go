package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

// memTx is the staged unit of work handed to a TxFunc.
type memTx struct {
	store    *Store
	readOnly bool

	held []string

	newJournals  map[string]domain.Journal
	journalOrder []string
	posted       map[string]domain.Journal
	newEntries   []domain.LedgerEntry

	snapshots map[string][]domain.LedgerEntry
}

var _ portsrepo.JournalTx = (*memTx)(nil)

func newMemTx(s *Store, readOnly bool) *memTx {
	return &memTx{
		store:       s,
		readOnly:    readOnly,
		newJournals: make(map[string]domain.Journal),
		posted:      make(map[string]domain.Journal),
		snapshots:   make(map[string][]domain.LedgerEntry),
	}
}

func (t *memTx) release() {
	for i := len(t.held) - 1; i >= 0; i-- {
		t.store.releaseLock(t.held[i])
	}
	t.held = nil
}

func (t *memTx) holds(journalID string) bool {
	for _, id := range t.held {
		if id == journalID {
			return true
		}
	}
	return false
}

func (t *memTx) writable() error {
	if t.readOnly {
		return apperrors.NewInternalError("write attempted in a read-only unit of work", nil)
	}
	return nil
}

func (t *memTx) FindJournalByID(_ context.Context, journalID string) (*domain.Journal, error) {
	if j, ok := t.posted[journalID]; ok {
		return &j, nil
	}
	if j, ok := t.newJournals[journalID]; ok {
		return &j, nil
	}
	if j, ok := t.store.committedJournal(journalID); ok {
		return &j, nil
	}
	return nil, apperrors.JournalNotFound(journalID)
}

func (t *memTx) LockJournalForUpdate(ctx context.Context, journalID string) (*domain.Journal, error) {
	if err := t.writable(); err != nil {
		return nil, err
	}
	if !t.holds(journalID) {
		if err := t.store.acquire(ctx, journalID); err != nil {
			return nil, err
		}
		t.held = append(t.held, journalID)
		// Entries committed before the lock was granted must be visible.
		delete(t.snapshots, journalID)
	}
	return t.FindJournalByID(ctx, journalID)
}

func (t *memTx) ExistsByExternalRef(_ context.Context, externalRef string) (bool, error) {
	for _, j := range t.newJournals {
		if j.ExternalRef != nil && *j.ExternalRef == externalRef {
			return true, nil
		}
	}
	return t.store.committedRefExists(externalRef), nil
}

func (t *memTx) InsertJournal(ctx context.Context, journal domain.Journal) error {
	if err := t.writable(); err != nil {
		return err
	}
	if journal.ExternalRef != nil {
		exists, err := t.ExistsByExternalRef(ctx, *journal.ExternalRef)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.DuplicateReference(*journal.ExternalRef)
		}
	}
	t.newJournals[journal.JournalID] = journal
	t.journalOrder = append(t.journalOrder, journal.JournalID)
	return nil
}

func (t *memTx) MarkJournalPosted(ctx context.Context, journal domain.Journal) error {
	if err := t.writable(); err != nil {
		return err
	}
	current, err := t.FindJournalByID(ctx, journal.JournalID)
	if err != nil {
		return err
	}
	if !current.IsPending() {
		return apperrors.NewConflictError("journal "+journal.JournalID+" changed state during posting", nil)
	}
	if _, staged := t.newJournals[journal.JournalID]; staged {
		t.newJournals[journal.JournalID] = journal
		return nil
	}
	t.posted[journal.JournalID] = journal
	return nil
}

func (t *memTx) InsertEntry(_ context.Context, entry domain.LedgerEntry) error {
	if err := t.writable(); err != nil {
		return err
	}
	t.newEntries = append(t.newEntries, entry)
	return nil
}

// journalEntries returns committed entries (snapshotted once per unit of work) plus staged ones.
func (t *memTx) journalEntries(journalID string) []domain.LedgerEntry {
	committed, ok := t.snapshots[journalID]
	if !ok {
		committed = t.store.snapshotEntries(journalID)
		t.snapshots[journalID] = committed
	}
	out := append([]domain.LedgerEntry(nil), committed...)
	for _, e := range t.newEntries {
		if e.JournalID == journalID {
			out = append(out, e)
		}
	}
	return out
}

func (t *memTx) ListEntriesByJournal(_ context.Context, journalID string) ([]domain.LedgerEntry, error) {
	return t.journalEntries(journalID), nil
}

func (t *memTx) SumBySide(_ context.Context, journalID string) (int64, int64, error) {
	debits, credits := domain.SumEntries(t.journalEntries(journalID))
	return debits, credits, nil
}

func (t *memTx) DistinctCurrencies(_ context.Context, journalID string) ([]string, error) {
	seen := make(map[string]struct{})
	for _, e := range t.journalEntries(journalID) {
		seen[e.Currency] = struct{}{}
	}
	currencies := make([]string, 0, len(seen))
	for c := range seen {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)
	return currencies, nil
}

// accountEntries merges committed and staged entries of an account, newest first.
func (t *memTx) accountEntries(accountID string) []domain.LedgerEntry {
	stored := t.store.accountEntries(accountID)
	var staged []storedEntry
	for i, e := range t.newEntries {
		if e.AccountID == accountID {
			// Staged entries sort after every committed one.
			staged = append(staged, storedEntry{seq: int64(1<<62) + int64(i), LedgerEntry: e})
		}
	}
	if len(staged) > 0 {
		stored = append(stored, staged...)
		sortNewestFirst(stored)
	}
	out := make([]domain.LedgerEntry, 0, len(stored))
	for _, e := range stored {
		out = append(out, e.LedgerEntry)
	}
	return out
}

func (t *memTx) NetForAccount(_ context.Context, accountID string) (int64, error) {
	var net int64
	for _, e := range t.accountEntries(accountID) {
		net += e.SignedForAccount()
	}
	return net, nil
}

func (t *memTx) ListEntriesByAccount(_ context.Context, accountID string, limit, offset int) ([]domain.LedgerEntry, error) {
	all := t.accountEntries(accountID)
	if offset >= len(all) {
		return []domain.LedgerEntry{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (t *memTx) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return t.store.FindAccountByID(ctx, accountID)
}
