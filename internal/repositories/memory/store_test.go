package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

func newSeededStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	require.NoError(t, s.SaveAccount(context.Background(), domain.Account{AccountID: "cash", IsActive: true}))
	return s
}

func insertJournal(t *testing.T, s *Store, id string, ref *string) {
	t.Helper()
	err := s.RunInTx(context.Background(), func(ctx context.Context, tx portsrepo.JournalTx) error {
		return tx.InsertJournal(ctx, domain.NewJournal(id, nil, ref, t0))
	})
	require.NoError(t, err)
}

func entry(id, journalID string, side domain.EntrySide, amount int64, at time.Time) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID: id, JournalID: journalID, AccountID: "cash",
		Side: side, AmountCents: amount, Currency: "USD", CreatedAt: at,
	}
}

func TestRunInTx_RollsBackOnError(t *testing.T) {
	s := newSeededStore(t)
	insertJournal(t, s, "j1", nil)
	boom := errors.New("boom")

	err := s.RunInTx(context.Background(), func(ctx context.Context, tx portsrepo.JournalTx) error {
		if _, err := tx.LockJournalForUpdate(ctx, "j1"); err != nil {
			return err
		}
		if err := tx.InsertEntry(ctx, entry("e1", "j1", domain.Debit, 10, t0)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	entries, err := s.ListEntriesByJournal(context.Background(), "j1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunInTx_StagedWritesVisibleInsideUnit(t *testing.T) {
	s := newSeededStore(t)

	err := s.RunInTx(context.Background(), func(ctx context.Context, tx portsrepo.JournalTx) error {
		require.NoError(t, tx.InsertJournal(ctx, domain.NewJournal("j1", nil, nil, t0)))
		require.NoError(t, tx.InsertEntry(ctx, entry("e1", "j1", domain.Debit, 30, t0)))
		require.NoError(t, tx.InsertEntry(ctx, entry("e2", "j1", domain.Credit, 10, t0)))

		debits, credits, err := tx.SumBySide(ctx, "j1")
		require.NoError(t, err)
		assert.Equal(t, int64(30), debits)
		assert.Equal(t, int64(10), credits)

		// Not committed yet.
		_, err = s.FindJournalByID(ctx, "j1")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		return nil
	})
	require.NoError(t, err)

	net, err := s.NetForAccount(context.Background(), "cash")
	require.NoError(t, err)
	assert.Equal(t, int64(-20), net)
}

func TestRunInReadTx_RejectsWrites(t *testing.T) {
	s := newSeededStore(t)

	err := s.RunInReadTx(context.Background(), func(ctx context.Context, tx portsrepo.JournalTx) error {
		return tx.InsertJournal(ctx, domain.NewJournal("j1", nil, nil, t0))
	})
	assert.ErrorIs(t, err, apperrors.ErrInternal)
}

func TestCommit_ChecksReferenceUniqueness(t *testing.T) {
	s := newSeededStore(t)
	ref := "dup"
	ctx := context.Background()

	// Both units stage the same reference before either commits.
	started := make(chan struct{})
	release := make(chan struct{})
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.RunInTx(ctx, func(ctx context.Context, tx portsrepo.JournalTx) error {
			if err := tx.InsertJournal(ctx, domain.NewJournal("a", nil, &ref, t0)); err != nil {
				return err
			}
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	insertJournal(t, s, "b", &ref)
	close(release)

	err := <-errCh
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	_, err = s.FindJournalByID(ctx, "a")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCommit_ChecksAccountExists(t *testing.T) {
	s := newSeededStore(t)
	insertJournal(t, s, "j1", nil)

	err := s.RunInTx(context.Background(), func(ctx context.Context, tx portsrepo.JournalTx) error {
		e := entry("e1", "j1", domain.Debit, 10, t0)
		e.AccountID = "ghost"
		return tx.InsertEntry(ctx, e)
	})
	assert.Equal(t, apperrors.CodeAccountNotFound, apperrors.AsAppError(err).Code)
}

func TestLockJournalForUpdate_HonoursContext(t *testing.T) {
	s := newSeededStore(t)
	insertJournal(t, s, "j1", nil)

	locked := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- s.RunInTx(context.Background(), func(ctx context.Context, tx portsrepo.JournalTx) error {
			if _, err := tx.LockJournalForUpdate(ctx, "j1"); err != nil {
				return err
			}
			close(locked)
			<-release
			return nil
		})
	}()
	<-locked

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := s.RunInTx(ctx, func(ctx context.Context, tx portsrepo.JournalTx) error {
		_, err := tx.LockJournalForUpdate(ctx, "j1")
		return err
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	other := s.RunInTx(context.Background(), func(ctx context.Context, tx portsrepo.JournalTx) error {
		_, err := tx.LockJournalForUpdate(ctx, "j2-missing")
		return err
	})
	assert.ErrorIs(t, other, apperrors.ErrNotFound, "other journals are not blocked")

	close(release)
	require.NoError(t, <-done)
}

func (s *Store) lockCount() int {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	return len(s.locks)
}

func TestJournalLocks_DroppedWhenUnused(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()
	for _, id := range []string{"j1", "j2", "j3"} {
		insertJournal(t, s, id, nil)
		require.NoError(t, s.RunInTx(ctx, func(ctx context.Context, tx portsrepo.JournalTx) error {
			_, err := tx.LockJournalForUpdate(ctx, id)
			return err
		}))
	}
	assert.Zero(t, s.lockCount())

	locked := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- s.RunInTx(ctx, func(ctx context.Context, tx portsrepo.JournalTx) error {
			if _, err := tx.LockJournalForUpdate(ctx, "j1"); err != nil {
				return err
			}
			close(locked)
			<-release
			return nil
		})
	}()
	<-locked

	waitCtx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	err := s.RunInTx(waitCtx, func(ctx context.Context, tx portsrepo.JournalTx) error {
		_, err := tx.LockJournalForUpdate(ctx, "j1")
		return err
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, s.lockCount(), "the holder still references the lock")

	close(release)
	require.NoError(t, <-done)
	assert.Zero(t, s.lockCount())
}

func TestInsertJournal_DuplicateReferenceInsideUnit(t *testing.T) {
	s := newSeededStore(t)
	ref := "same"

	err := s.RunInTx(context.Background(), func(ctx context.Context, tx portsrepo.JournalTx) error {
		if err := tx.InsertJournal(ctx, domain.NewJournal("a", nil, &ref, t0)); err != nil {
			return err
		}
		return tx.InsertJournal(ctx, domain.NewJournal("b", nil, &ref, t0))
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestMarkJournalPosted(t *testing.T) {
	s := newSeededStore(t)
	insertJournal(t, s, "j1", nil)
	ctx := context.Background()

	err := s.RunInTx(ctx, func(ctx context.Context, tx portsrepo.JournalTx) error {
		j, err := tx.LockJournalForUpdate(ctx, "j1")
		if err != nil {
			return err
		}
		j.MarkPosted(t0.Add(time.Hour))
		return tx.MarkJournalPosted(ctx, *j)
	})
	require.NoError(t, err)

	j, err := s.FindJournalByID(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, domain.Posted, j.Status)
	require.NotNil(t, j.PostedAt)

	err = s.RunInTx(ctx, func(ctx context.Context, tx portsrepo.JournalTx) error {
		return tx.MarkJournalPosted(ctx, *j)
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestAccountEntries_NewestFirstWithTiebreak(t *testing.T) {
	s := newSeededStore(t)
	insertJournal(t, s, "j1", nil)
	ctx := context.Background()

	err := s.RunInTx(ctx, func(ctx context.Context, tx portsrepo.JournalTx) error {
		for _, e := range []domain.LedgerEntry{
			entry("old", "j1", domain.Debit, 1, t0),
			entry("same-1", "j1", domain.Debit, 2, t0.Add(time.Minute)),
			entry("same-2", "j1", domain.Credit, 3, t0.Add(time.Minute)),
		} {
			if err := tx.InsertEntry(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	got, err := s.ListEntriesByAccount(ctx, "cash", 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"same-2", "same-1", "old"}, []string{got[0].EntryID, got[1].EntryID, got[2].EntryID})

	page, err := s.ListEntriesByAccount(ctx, "cash", 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "same-1", page[0].EntryID)
}

func TestDistinctCurrencies(t *testing.T) {
	s := newSeededStore(t)
	insertJournal(t, s, "j1", nil)
	ctx := context.Background()

	currencies, err := s.DistinctCurrencies(ctx, "j1")
	require.NoError(t, err)
	assert.Empty(t, currencies)

	require.NoError(t, s.RunInTx(ctx, func(ctx context.Context, tx portsrepo.JournalTx) error {
		if err := tx.InsertEntry(ctx, entry("e1", "j1", domain.Debit, 5, t0)); err != nil {
			return err
		}
		return tx.InsertEntry(ctx, entry("e2", "j1", domain.Credit, 5, t0))
	}))

	currencies, err = s.DistinctCurrencies(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, []string{"USD"}, currencies)
}
