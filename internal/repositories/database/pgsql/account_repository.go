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

// PgxAccountRepository reads the accounts table.
type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return findAccount(ctx, r.Pool, accountID)
}

// SaveAccount upserts an account row.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO accounts (account_id, name, currency_code, is_active, opened_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (account_id) DO UPDATE
		SET name = EXCLUDED.name, currency_code = EXCLUDED.currency_code, is_active = EXCLUDED.is_active`,
		m.AccountID, m.Name, m.CurrencyCode, m.IsActive, m.OpenedAt,
	)
	if err != nil {
		return translateError("failed to save account "+m.AccountID, err)
	}
	return nil
}

func findAccount(ctx context.Context, db querier, accountID string) (*domain.Account, error) {
	rows, err := db.Query(ctx, `
		SELECT account_id, name, currency_code, is_active, opened_at
		FROM accounts WHERE account_id = $1`, accountID)
	if err != nil {
		return nil, translateError("failed to query account "+accountID, err)
	}
	modelAccount, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.AccountNotFound(accountID)
		}
		return nil, translateError("failed to scan account "+accountID, err)
	}
	account := mapping.ToDomainAccount(modelAccount)
	return &account, nil
}
