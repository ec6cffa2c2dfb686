package mapping

import (
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:   d.JournalID,
		Status:      d.Status.StoredValue(),
		Description: d.Description,
		ExternalRef: d.ExternalRef,
		CreatedAt:   d.CreatedAt,
		PostedAt:    d.PostedAt,
	}
}

// ToDomainJournal converts a model Journal to a domain Journal. A row whose
// status and postedAt disagree is rejected.
func ToDomainJournal(m models.Journal) (domain.Journal, error) {
	status, err := domain.ParseJournalStatus(m.Status)
	if err != nil {
		return domain.Journal{}, fmt.Errorf("journal %s has stored status %q: %w", m.JournalID, m.Status, err)
	}
	j := domain.Journal{
		JournalID:   m.JournalID,
		Status:      status,
		Description: m.Description,
		ExternalRef: m.ExternalRef,
		CreatedAt:   m.CreatedAt.UTC(),
		PostedAt:    utcPtr(m.PostedAt),
	}
	if err := j.Validate(); err != nil {
		return domain.Journal{}, fmt.Errorf("journal %s: %w", m.JournalID, err)
	}
	return j, nil
}

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:     d.EntryID,
		JournalID:   d.JournalID,
		AccountID:   d.AccountID,
		Side:        string(d.Side),
		AmountCents: d.AmountCents,
		Currency:    d.Currency,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) (domain.LedgerEntry, error) {
	side, err := domain.ParseSide(m.Side)
	if err != nil {
		return domain.LedgerEntry{}, fmt.Errorf("entry %s has stored side %q: %w", m.EntryID, m.Side, err)
	}
	return domain.LedgerEntry{
		EntryID:     m.EntryID,
		JournalID:   m.JournalID,
		AccountID:   m.AccountID,
		Side:        side,
		AmountCents: m.AmountCents,
		Currency:    m.Currency,
		CreatedAt:   m.CreatedAt.UTC(),
	}, nil
}

// ToDomainLedgerEntries converts a slice of model entries
func ToDomainLedgerEntries(ms []models.LedgerEntry) ([]domain.LedgerEntry, error) {
	entries := make([]domain.LedgerEntry, 0, len(ms))
	for _, m := range ms {
		e, err := ToDomainLedgerEntry(m)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
