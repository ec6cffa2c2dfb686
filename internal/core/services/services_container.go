package services

import (
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	retry := RetryPolicy{
		MaxRetries: cfg.TxMaxRetries,
		BaseDelay:  cfg.TxRetryBaseDelay,
	}

	return &portssvc.ServiceContainer{
		Journal: NewJournalService(
			repos.JournalRepo,
			WithRetryPolicy(retry),
			WithEmptyJournalPost(cfg.AllowEmptyJournalPost),
		),
		Ledger: NewLedgerService(repos.JournalRepo, repos.AccountRepo),
	}
}
