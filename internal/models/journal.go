package models

import "time"

// Journal is the journals table row. Status holds the stored lower case form.
type Journal struct {
	JournalID   string     `db:"journal_id"`
	Status      string     `db:"status"`
	Description *string    `db:"description"`
	ExternalRef *string    `db:"external_ref"`
	CreatedAt   time.Time  `db:"created_at"`
	PostedAt    *time.Time `db:"posted_at"`
}

// LedgerEntry is the ledger_entries table row.
type LedgerEntry struct {
	EntryID     string    `db:"entry_id"`
	JournalID   string    `db:"journal_id"`
	AccountID   string    `db:"account_id"`
	Side        string    `db:"side"`
	AmountCents int64     `db:"amount_cents"`
	Currency    string    `db:"currency"`
	CreatedAt   time.Time `db:"created_at"`
}
