package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/utils/pagination"
)

// MaxPageSize caps account history pages.
const MaxPageSize = 200

// ledgerService answers account-side questions over posted and pending entries.
type ledgerService struct {
	BaseService
	entryRepo   portsrepo.EntryReader
	accountRepo portsrepo.AccountReader
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(entryRepo portsrepo.EntryReader, accountRepo portsrepo.AccountReader) portssvc.LedgerSvcFacade {
	return &ledgerService{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// AccountHistory returns page `page` of the account's entries, newest first.
// Unknown accounts yield an empty page.
func (s *ledgerService) AccountHistory(ctx context.Context, accountID string, page, size int) ([]domain.LedgerEntry, error) {
	limit, offset, err := pagination.Offset(page, size, MaxPageSize)
	if err != nil {
		err = apperrors.Validation(apperrors.CodeInvalidPagination, "page must be >= 0 and size between 1 and 200").
			WithMeta("page", page).
			WithMeta("size", size)
		s.LogWarn(ctx, err, "Rejected account history request", slog.String("account_id", accountID))
		return nil, err
	}

	entries, err := s.entryRepo.ListEntriesByAccount(ctx, accountID, limit, offset)
	if err != nil {
		s.logFailure(ctx, err, "Failed to list account entries", slog.String("account_id", accountID))
		return nil, err
	}
	return entries, nil
}

// AccountBalance returns credits minus debits over every entry of the account.
func (s *ledgerService) AccountBalance(ctx context.Context, accountID string) (*domain.AccountBalance, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		s.logFailure(ctx, err, "Failed to resolve account", slog.String("account_id", accountID))
		return nil, err
	}

	net, err := s.entryRepo.NetForAccount(ctx, accountID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to compute account balance", slog.String("account_id", accountID))
		return nil, err
	}
	return &domain.AccountBalance{AccountID: accountID, NetCents: net}, nil
}
