package domain

import "math"

// Diagnostics is the aggregate view of a journal's entries.
// Currency is nil when the journal has no entries.
type Diagnostics struct {
	JournalID        string  `json:"journalID"`
	Currency         *string `json:"currency,omitempty"`
	DebitTotalCents  int64   `json:"debitTotalCents"`
	CreditTotalCents int64   `json:"creditTotalCents"`
	NetCents         int64   `json:"netCents"`
	Balanced         bool    `json:"balanced"`
}

// NewDiagnostics derives net and balance from the side totals. Both totals are
// non-negative and at most math.MaxInt64, so the net cannot overflow.
func NewDiagnostics(journalID string, currencies []string, debitTotal, creditTotal int64) Diagnostics {
	d := Diagnostics{
		JournalID:        journalID,
		DebitTotalCents:  debitTotal,
		CreditTotalCents: creditTotal,
		NetCents:         debitTotal - creditTotal,
	}
	if len(currencies) > 0 {
		c := currencies[0]
		d.Currency = &c
	}
	d.Balanced = d.NetCents == 0
	return d
}

// AddOverflows reports whether adding a positive amount to a non-negative side
// total would exceed math.MaxInt64.
func AddOverflows(total, amount int64) bool {
	return amount > math.MaxInt64-total
}

// SumEntries folds entries into side totals. Stores without aggregate queries use it.
func SumEntries(entries []LedgerEntry) (debits, credits int64) {
	for _, e := range entries {
		switch e.Side {
		case Debit:
			debits += e.AmountCents
		case Credit:
			credits += e.AmountCents
		}
	}
	return debits, credits
}

// CurrencyOrEmpty returns the currency or "" when unset.
func (d Diagnostics) CurrencyOrEmpty() string {
	if d.Currency == nil {
		return ""
	}
	return *d.Currency
}
