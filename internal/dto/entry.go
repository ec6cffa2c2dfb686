package dto

import (
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils"
)

// AddEntryRequest defines the body for adding an entry to a journal.
// Fields carry no binding rules: the service checks them after the journal and
// account, so a missing field reports the same code as an invalid one.
type AddEntryRequest struct {
	AccountID   string    `json:"accountId" example:"cash"`
	Side        string    `json:"side" example:"debit"`
	AmountCents RawAmount `json:"amountCents" swaggertype:"integer" example:"1500"`
	Currency    string    `json:"currency" example:"USD"`
}

// RawAmount keeps amountCents exactly as sent. Any JSON value decodes, so
// fractional or non-numeric amounts are rejected by the service as INVALID_AMOUNT.
type RawAmount []byte

// AmountOf returns the RawAmount for a whole number of minor units.
func AmountOf(cents int64) RawAmount {
	return RawAmount(strconv.FormatInt(cents, 10))
}

// UnmarshalJSON stores a copy of the raw value.
func (a *RawAmount) UnmarshalJSON(data []byte) error {
	*a = append(RawAmount(nil), data...)
	return nil
}

// MarshalJSON writes the raw value back, null when absent.
func (a RawAmount) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return []byte("null"), nil
	}
	return a, nil
}

// String returns the raw value as sent.
func (a RawAmount) String() string {
	return string(a)
}

// Amount returns the requested amount in minor units. ok is false when the
// value is absent, not an integer, or out of the int64 range.
func (r AddEntryRequest) Amount() (amount int64, ok bool) {
	raw := strings.TrimSpace(string(r.AmountCents))
	if raw == "" || raw == "null" {
		return 0, false
	}
	amount, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	EntryID     string    `json:"id"`
	JournalID   string    `json:"journalId"`
	AccountID   string    `json:"accountId"`
	Side        string    `json:"side"`
	AmountCents int64     `json:"amountCents"`
	Amount      string    `json:"amount"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListEntriesResponse wraps a page of entries.
type ListEntriesResponse struct {
	Entries []LedgerEntryResponse `json:"entries"`
	Page    int                   `json:"page,omitempty"`
	Size    int                   `json:"size,omitempty"`
}

// ListAccountEntriesParams defines the query parameters for account history.
type ListAccountEntriesParams struct {
	Page int `form:"page,default=0"`
	Size int `form:"size,default=20"`
}

// AccountBalanceResponse defines the data returned for an account balance.
type AccountBalanceResponse struct {
	AccountID string `json:"accountId"`
	NetCents  int64  `json:"netCents"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to LedgerEntryResponse DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:     e.EntryID,
		JournalID:   e.JournalID,
		AccountID:   e.AccountID,
		Side:        string(e.Side),
		AmountCents: e.AmountCents,
		Amount:      utils.FormatMinorUnits(e.AmountCents, e.Currency),
		Currency:    e.Currency,
		CreatedAt:   e.CreatedAt,
	}
}

// ToLedgerEntryResponses converts a slice of domain.LedgerEntry to []LedgerEntryResponse.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToLedgerEntryResponse(&entries[i])
	}
	return responses
}
