package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

// computeDiagnostics is the single aggregation path shared by the posting guard
// and the read endpoints.
func computeDiagnostics(ctx context.Context, q portsrepo.EntryReader, journalID string) (*domain.Diagnostics, error) {
	currencies, err := q.DistinctCurrencies(ctx, journalID)
	if err != nil {
		return nil, err
	}
	debits, credits, err := q.SumBySide(ctx, journalID)
	if err != nil {
		return nil, err
	}
	d := domain.NewDiagnostics(journalID, currencies, debits, credits)
	return &d, nil
}
