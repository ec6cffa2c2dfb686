package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

type storedEntry struct {
	seq int64
	domain.LedgerEntry
}

// Store is an in-process journal store with the same unit-of-work semantics as the
// Postgres repositories: writes are staged and applied atomically on commit, and
// LockJournalForUpdate serializes units of work touching the same journal.
type Store struct {
	mu        sync.RWMutex
	journals  map[string]domain.Journal
	refs      map[string]string
	entries   map[string][]storedEntry
	byAccount map[string][]storedEntry
	accounts  map[string]domain.Account
	seq       int64

	locksMu sync.Mutex
	locks   map[string]*journalLock
}

// journalLock is a one-slot semaphore shared by the holder and waiters of a
// journal. It is dropped from Store.locks once nobody references it.
type journalLock struct {
	ch   chan struct{}
	refs int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		journals:  make(map[string]domain.Journal),
		refs:      make(map[string]string),
		entries:   make(map[string][]storedEntry),
		byAccount: make(map[string][]storedEntry),
		accounts:  make(map[string]domain.Account),
		locks:     make(map[string]*journalLock),
	}
}

var (
	_ portsrepo.JournalRepositoryWithTx = (*Store)(nil)
	_ portsrepo.AccountRepositoryFacade = (*Store)(nil)
)

// NewRepositoryProvider wires a single store as both account and journal repository.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: store,
		JournalRepo: store,
	}
}

// RunInTx runs fn against a staged view of the store and commits when fn succeeds.
func (s *Store) RunInTx(ctx context.Context, fn portsrepo.TxFunc) error {
	tx := newMemTx(s, false)
	defer tx.release()

	if err := ctx.Err(); err != nil {
		return apperrors.NewInternalError("unit of work cancelled", err)
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return apperrors.NewInternalError("unit of work cancelled before commit", err)
	}
	return s.commit(tx)
}

// RunInReadTx runs fn against per-journal snapshots; nothing is written.
func (s *Store) RunInReadTx(ctx context.Context, fn portsrepo.TxFunc) error {
	tx := newMemTx(s, true)
	defer tx.release()
	return fn(ctx, tx)
}

// view returns a read-only unit of work for calls made outside RunInTx.
func (s *Store) view() *memTx {
	return newMemTx(s, true)
}

func (s *Store) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	return s.view().FindJournalByID(ctx, journalID)
}

func (s *Store) ExistsByExternalRef(ctx context.Context, externalRef string) (bool, error) {
	return s.view().ExistsByExternalRef(ctx, externalRef)
}

func (s *Store) ListEntriesByJournal(ctx context.Context, journalID string) ([]domain.LedgerEntry, error) {
	return s.view().ListEntriesByJournal(ctx, journalID)
}

func (s *Store) SumBySide(ctx context.Context, journalID string) (int64, int64, error) {
	return s.view().SumBySide(ctx, journalID)
}

func (s *Store) DistinctCurrencies(ctx context.Context, journalID string) ([]string, error) {
	return s.view().DistinctCurrencies(ctx, journalID)
}

func (s *Store) NetForAccount(ctx context.Context, accountID string) (int64, error) {
	return s.view().NetForAccount(ctx, accountID)
}

func (s *Store) ListEntriesByAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.LedgerEntry, error) {
	return s.view().ListEntriesByAccount(ctx, accountID, limit, offset)
}

// FindAccountByID retrieves an account by its ID.
func (s *Store) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.AccountNotFound(accountID)
	}
	return &account, nil
}

// SaveAccount inserts or replaces an account.
func (s *Store) SaveAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.AccountID] = account
	return nil
}

// acquire takes the journal's lock, giving up when ctx is done.
func (s *Store) acquire(ctx context.Context, journalID string) error {
	s.locksMu.Lock()
	l, ok := s.locks[journalID]
	if !ok {
		l = &journalLock{ch: make(chan struct{}, 1)}
		s.locks[journalID] = l
	}
	l.refs++
	s.locksMu.Unlock()

	select {
	case l.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		s.locksMu.Lock()
		s.unrefLocked(journalID, l)
		s.locksMu.Unlock()
		return apperrors.NewInternalError("cancelled while waiting for journal lock "+journalID, ctx.Err())
	}
}

func (s *Store) releaseLock(journalID string) {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l := s.locks[journalID]
	<-l.ch
	s.unrefLocked(journalID, l)
}

func (s *Store) unrefLocked(journalID string, l *journalLock) {
	l.refs--
	if l.refs == 0 {
		delete(s.locks, journalID)
	}
}

// snapshotEntries copies the committed entries of a journal.
func (s *Store) snapshotEntries(journalID string) []domain.LedgerEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.entries[journalID]
	out := make([]domain.LedgerEntry, len(stored))
	for i, e := range stored {
		out[i] = e.LedgerEntry
	}
	return out
}

func (s *Store) committedJournal(journalID string) (domain.Journal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.journals[journalID]
	return j, ok
}

func (s *Store) committedRefExists(ref string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.refs[ref]
	return ok
}

// accountEntries returns committed entries of an account ordered newest first.
func (s *Store) accountEntries(accountID string) []storedEntry {
	s.mu.RLock()
	out := append([]storedEntry(nil), s.byAccount[accountID]...)
	s.mu.RUnlock()
	sortNewestFirst(out)
	return out
}

func sortNewestFirst(entries []storedEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].seq > entries[j].seq
	})
}

// commit applies the staged writes of tx atomically. Uniqueness and ownership
// are re-checked here, the way the database constraints would.
func (s *Store) commit(tx *memTx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range tx.journalOrder {
		j := tx.newJournals[id]
		if _, exists := s.journals[id]; exists {
			return apperrors.NewInternalError("journal id collision "+id, nil)
		}
		if j.ExternalRef != nil {
			if _, taken := s.refs[*j.ExternalRef]; taken {
				return apperrors.DuplicateReference(*j.ExternalRef)
			}
		}
	}
	for _, e := range tx.newEntries {
		_, committed := s.journals[e.JournalID]
		_, staged := tx.newJournals[e.JournalID]
		if !committed && !staged {
			return apperrors.JournalNotFound(e.JournalID)
		}
		if _, ok := s.accounts[e.AccountID]; !ok {
			return apperrors.AccountNotFound(e.AccountID)
		}
	}

	for _, id := range tx.journalOrder {
		j := tx.newJournals[id]
		s.journals[id] = j
		if j.ExternalRef != nil {
			s.refs[*j.ExternalRef] = id
		}
	}
	for id, j := range tx.posted {
		s.journals[id] = j
	}
	for _, e := range tx.newEntries {
		s.seq++
		stored := storedEntry{seq: s.seq, LedgerEntry: e}
		s.entries[e.JournalID] = append(s.entries[e.JournalID], stored)
		s.byAccount[e.AccountID] = append(s.byAccount[e.AccountID], stored)
	}
	return nil
}
