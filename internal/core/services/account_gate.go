package services

import (
	"context"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

// requireActiveAccount resolves accountID and rejects unknown or inactive accounts.
func requireActiveAccount(ctx context.Context, lookup portsrepo.AccountLookup, accountID string) (*domain.Account, error) {
	if strings.TrimSpace(accountID) == "" {
		return nil, apperrors.AccountNotFound(accountID)
	}
	account, err := lookup.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, apperrors.InactiveAccount(accountID)
	}
	return account, nil
}
