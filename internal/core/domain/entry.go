package domain

import (
	"errors"
	"strings"
	"time"
)

// EntrySide is the side of the ledger an entry lands on.
type EntrySide string

const (
	Debit  EntrySide = "debit"
	Credit EntrySide = "credit"
)

var ErrInvalidSide = errors.New("side must be debit or credit")

// ParseSide normalizes s (trimmed, case-insensitive) into an EntrySide.
func ParseSide(s string) (EntrySide, error) {
	switch EntrySide(strings.ToLower(strings.TrimSpace(s))) {
	case Debit:
		return Debit, nil
	case Credit:
		return Credit, nil
	default:
		return "", ErrInvalidSide
	}
}

// LedgerEntry is one immutable line of a journal. Amounts are positive minor units;
// the side carries the direction.
type LedgerEntry struct {
	EntryID     string    `json:"entryID"`
	JournalID   string    `json:"journalID"`
	AccountID   string    `json:"accountID"`
	Side        EntrySide `json:"side"`
	AmountCents int64     `json:"amountCents"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SignedForJournal returns the entry's contribution to a journal net (debit positive).
func (e LedgerEntry) SignedForJournal() int64 {
	if e.Side == Debit {
		return e.AmountCents
	}
	return -e.AmountCents
}

// SignedForAccount returns the entry's contribution to an account net (credit positive).
func (e LedgerEntry) SignedForAccount() int64 {
	return -e.SignedForJournal()
}
