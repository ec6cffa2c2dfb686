package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	a := domain.Account{
		AccountID: m.AccountID,
		Name:      m.Name,
		IsActive:  m.IsActive,
		OpenedAt:  m.OpenedAt.UTC(),
	}
	if m.CurrencyCode != nil {
		a.CurrencyCode = *m.CurrencyCode
	}
	return a
}

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	m := models.Account{
		AccountID: d.AccountID,
		Name:      d.Name,
		IsActive:  d.IsActive,
		OpenedAt:  d.OpenedAt,
	}
	if d.CurrencyCode != "" {
		code := d.CurrencyCode
		m.CurrencyCode = &code
	}
	return m
}
