package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	journalColumns = `journal_id, status, description, external_ref, created_at, posted_at`
	entryColumns   = `entry_id, journal_id, account_id, side, amount_cents, currency, created_at`
)

// PgxJournalRepository reads journals and entries from the pool and hands
// transaction-scoped views of the same queries to units of work.
type PgxJournalRepository struct {
	BaseRepository
	journalQueries
}

// newPgxJournalRepository creates a new repository for journal and entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		journalQueries: journalQueries{db: pool},
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

// RunInTx runs fn in a read-committed transaction. Journal rows locked through
// LockJournalForUpdate stay locked until commit or rollback.
func (r *PgxJournalRepository) RunInTx(ctx context.Context, fn portsrepo.TxFunc) error {
	return r.runTx(ctx, writeTxOptions, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, journalQueries{db: tx})
	})
}

// RunInReadTx runs fn against a repeatable-read, read-only snapshot.
func (r *PgxJournalRepository) RunInReadTx(ctx context.Context, fn portsrepo.TxFunc) error {
	return r.runTx(ctx, readTxOptions, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, journalQueries{db: tx})
	})
}

// journalQueries holds every journal and entry query; db is either the pool or a live transaction.
type journalQueries struct {
	db querier
}

var _ portsrepo.JournalTx = journalQueries{}

// FindJournalByID retrieves a journal by its ID.
func (q journalQueries) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	return q.selectJournal(ctx, `SELECT `+journalColumns+` FROM journals WHERE journal_id = $1`, journalID)
}

// LockJournalForUpdate loads the journal and takes its row lock.
func (q journalQueries) LockJournalForUpdate(ctx context.Context, journalID string) (*domain.Journal, error) {
	return q.selectJournal(ctx, `SELECT `+journalColumns+` FROM journals WHERE journal_id = $1 FOR UPDATE`, journalID)
}

func (q journalQueries) selectJournal(ctx context.Context, query, journalID string) (*domain.Journal, error) {
	rows, err := q.db.Query(ctx, query, journalID)
	if err != nil {
		return nil, translateError("failed to query journal "+journalID, err)
	}
	modelJournal, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Journal])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.JournalNotFound(journalID)
		}
		return nil, translateError("failed to scan journal "+journalID, err)
	}
	journal, err := mapping.ToDomainJournal(modelJournal)
	if err != nil {
		return nil, apperrors.NewInternalError("corrupt journal row", err)
	}
	return &journal, nil
}

// ExistsByExternalRef reports whether a journal already uses externalRef.
func (q journalQueries) ExistsByExternalRef(ctx context.Context, externalRef string) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM journals WHERE external_ref = $1)`, externalRef).Scan(&exists)
	if err != nil {
		return false, translateError("failed to check external reference", err)
	}
	return exists, nil
}

// InsertJournal inserts a new journal row. The unique constraint on external_ref
// settles races between concurrent creates.
func (q journalQueries) InsertJournal(ctx context.Context, journal domain.Journal) error {
	m := mapping.ToModelJournal(journal)
	_, err := q.db.Exec(ctx, `
		INSERT INTO journals (journal_id, status, description, external_ref, created_at, posted_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.JournalID, m.Status, m.Description, m.ExternalRef, m.CreatedAt, m.PostedAt,
	)
	if err != nil {
		if isUniqueViolation(err, externalRefConstraint) && m.ExternalRef != nil {
			return apperrors.DuplicateReference(*m.ExternalRef)
		}
		return translateError("failed to insert journal "+m.JournalID, err)
	}
	return nil
}

// MarkJournalPosted flips a pending journal to posted.
func (q journalQueries) MarkJournalPosted(ctx context.Context, journal domain.Journal) error {
	cmdTag, err := q.db.Exec(ctx, `
		UPDATE journals SET status = $2, posted_at = $3
		WHERE journal_id = $1 AND status = $4`,
		journal.JournalID, domain.Posted.StoredValue(), journal.PostedAt, domain.Pending.StoredValue(),
	)
	if err != nil {
		return translateError("failed to post journal "+journal.JournalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewConflictError("journal "+journal.JournalID+" changed state during posting", nil)
	}
	return nil
}

// InsertEntry appends a ledger entry.
func (q journalQueries) InsertEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	_, err := q.db.Exec(ctx, `
		INSERT INTO ledger_entries (entry_id, journal_id, account_id, side, amount_cents, currency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.EntryID, m.JournalID, m.AccountID, m.Side, m.AmountCents, m.Currency, m.CreatedAt,
	)
	if err != nil {
		return translateError("failed to insert ledger entry for journal "+m.JournalID, err)
	}
	return nil
}

// ListEntriesByJournal returns the journal's entries in insertion order.
func (q journalQueries) ListEntriesByJournal(ctx context.Context, journalID string) ([]domain.LedgerEntry, error) {
	return q.selectEntries(ctx, `
		SELECT `+entryColumns+` FROM ledger_entries
		WHERE journal_id = $1
		ORDER BY seq ASC`, journalID)
}

// ListEntriesByAccount returns an account's entries, newest first.
func (q journalQueries) ListEntriesByAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.LedgerEntry, error) {
	return q.selectEntries(ctx, `
		SELECT `+entryColumns+` FROM ledger_entries
		WHERE account_id = $1
		ORDER BY created_at DESC, seq DESC
		LIMIT $2 OFFSET $3`, accountID, limit, offset)
}

func (q journalQueries) selectEntries(ctx context.Context, query string, args ...any) ([]domain.LedgerEntry, error) {
	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError("failed to query ledger entries", err)
	}
	modelEntries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LedgerEntry])
	if err != nil {
		return nil, translateError("failed to scan ledger entries", err)
	}
	entries, err := mapping.ToDomainLedgerEntries(modelEntries)
	if err != nil {
		return nil, apperrors.NewInternalError("corrupt ledger entry row", err)
	}
	return entries, nil
}

// SumBySide returns debit and credit totals for a journal.
func (q journalQueries) SumBySide(ctx context.Context, journalID string) (int64, int64, error) {
	var debits, credits int64
	err := q.db.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(amount_cents) FILTER (WHERE side = 'debit'), 0)::BIGINT,
			COALESCE(SUM(amount_cents) FILTER (WHERE side = 'credit'), 0)::BIGINT
		FROM ledger_entries
		WHERE journal_id = $1`, journalID).Scan(&debits, &credits)
	if err != nil {
		return 0, 0, translateError("failed to sum journal "+journalID, err)
	}
	return debits, credits, nil
}

// DistinctCurrencies returns the sorted currencies used by a journal's entries.
func (q journalQueries) DistinctCurrencies(ctx context.Context, journalID string) ([]string, error) {
	rows, err := q.db.Query(ctx, `
		SELECT DISTINCT currency FROM ledger_entries
		WHERE journal_id = $1
		ORDER BY currency`, journalID)
	if err != nil {
		return nil, translateError("failed to query currencies for journal "+journalID, err)
	}
	currencies, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, translateError("failed to scan currencies for journal "+journalID, err)
	}
	return currencies, nil
}

// NetForAccount returns credits minus debits across an account's entries.
func (q journalQueries) NetForAccount(ctx context.Context, accountID string) (int64, error) {
	var net int64
	err := q.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(CASE WHEN side = 'credit' THEN amount_cents ELSE -amount_cents END), 0)::BIGINT
		FROM ledger_entries
		WHERE account_id = $1`, accountID).Scan(&net)
	if err != nil {
		return 0, translateError("failed to compute net for account "+accountID, err)
	}
	return net, nil
}

// FindAccountByID reads an account through the same connection as the unit of work.
func (q journalQueries) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return findAccount(ctx, q.db, accountID)
}
