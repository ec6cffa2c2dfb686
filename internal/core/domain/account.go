package domain

import "time"

// Account is owned by another subsystem; the ledger only reads it to gate entries.
type Account struct {
	AccountID    string    `json:"accountID"`
	Name         string    `json:"name"`
	CurrencyCode string    `json:"currencyCode,omitempty"`
	IsActive     bool      `json:"isActive"`
	OpenedAt     time.Time `json:"openedAt"`
}

// AccountBalance is the net of an account over all of its entries (credits minus debits).
type AccountBalance struct {
	AccountID string `json:"accountID"`
	NetCents  int64  `json:"netCents"`
}
