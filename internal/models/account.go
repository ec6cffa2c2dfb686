package models

import "time"

// Account is the accounts table row.
type Account struct {
	AccountID    string    `db:"account_id"`
	Name         string    `db:"name"`
	CurrencyCode *string   `db:"currency_code"`
	IsActive     bool      `db:"is_active"`
	OpenedAt     time.Time `db:"opened_at"`
}
