package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

const inactiveFlag = "inactive"

// ParseSeedAccounts parses a comma separated list of "id" or "id:inactive" items.
// Blank items are skipped; repeated ids keep the last definition.
func ParseSeedAccounts(list string, openedAt time.Time) ([]domain.Account, error) {
	var accounts []domain.Account
	index := make(map[string]int)

	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		id, flag, hasFlag := strings.Cut(item, ":")
		id = strings.TrimSpace(id)
		flag = strings.ToLower(strings.TrimSpace(flag))
		if id == "" {
			return nil, fmt.Errorf("seed account %q has no id", item)
		}
		if hasFlag && flag != inactiveFlag {
			return nil, fmt.Errorf("seed account %q: unknown flag %q", id, flag)
		}

		account := domain.Account{
			AccountID: id,
			Name:      id,
			IsActive:  !hasFlag,
			OpenedAt:  openedAt,
		}
		if i, seen := index[id]; seen {
			accounts[i] = account
			continue
		}
		index[id] = len(accounts)
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// SeedAccounts saves every account through w.
func SeedAccounts(ctx context.Context, w portsrepo.AccountWriter, accounts []domain.Account) error {
	for _, account := range accounts {
		if err := w.SaveAccount(ctx, account); err != nil {
			return fmt.Errorf("seed account %s: %w", account.AccountID, err)
		}
	}
	return nil
}
