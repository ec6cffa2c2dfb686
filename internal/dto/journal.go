package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils"
)

// CreateJournalRequest defines the body for creating a journal.
type CreateJournalRequest struct {
	Description *string `json:"description" binding:"omitempty,max=500"`
	ExternalRef *string `json:"externalRef" binding:"omitempty,max=120"`
}

// JournalResponse defines the data returned for a journal, including its diagnostics.
type JournalResponse struct {
	JournalID        string     `json:"id"`
	Status           string     `json:"status"`
	Description      *string    `json:"description"`
	ExternalRef      *string    `json:"externalRef"`
	CreatedAt        time.Time  `json:"createdAt"`
	PostedAt         *time.Time `json:"postedAt"`
	Balanced         bool       `json:"balanced"`
	Currency         *string    `json:"currency"`
	DebitTotalCents  int64      `json:"debitTotalCents"`
	CreditTotalCents int64      `json:"creditTotalCents"`
	NetCents         int64      `json:"netCents"`
	DebitTotal       string     `json:"debitTotal"`
	CreditTotal      string     `json:"creditTotal"`
	Net              string     `json:"net"`
}

// DiagnosticsResponse defines the data returned by the diagnostics endpoint.
type DiagnosticsResponse struct {
	JournalID        string  `json:"journalId"`
	Currency         *string `json:"currency"`
	DebitTotalCents  int64   `json:"debitTotalCents"`
	CreditTotalCents int64   `json:"creditTotalCents"`
	NetCents         int64   `json:"netCents"`
	Balanced         bool    `json:"balanced"`
	Net              string  `json:"net"`
}

// ToJournalResponse converts a journal and its diagnostics to a JournalResponse DTO.
func ToJournalResponse(j *domain.Journal, d *domain.Diagnostics) JournalResponse {
	resp := JournalResponse{
		JournalID:   j.JournalID,
		Status:      string(j.Status),
		Description: j.Description,
		ExternalRef: j.ExternalRef,
		CreatedAt:   j.CreatedAt,
		PostedAt:    j.PostedAt,
		Balanced:    true,
		DebitTotal:  "0",
		CreditTotal: "0",
		Net:         "0",
	}
	if d == nil {
		return resp
	}
	currency := d.CurrencyOrEmpty()
	resp.Balanced = d.Balanced
	resp.Currency = d.Currency
	resp.DebitTotalCents = d.DebitTotalCents
	resp.CreditTotalCents = d.CreditTotalCents
	resp.NetCents = d.NetCents
	resp.DebitTotal = utils.FormatMinorUnits(d.DebitTotalCents, currency)
	resp.CreditTotal = utils.FormatMinorUnits(d.CreditTotalCents, currency)
	resp.Net = utils.FormatMinorUnits(d.NetCents, currency)
	return resp
}

// ToDiagnosticsResponse converts domain diagnostics to the response DTO.
func ToDiagnosticsResponse(d *domain.Diagnostics) DiagnosticsResponse {
	return DiagnosticsResponse{
		JournalID:        d.JournalID,
		Currency:         d.Currency,
		DebitTotalCents:  d.DebitTotalCents,
		CreditTotalCents: d.CreditTotalCents,
		NetCents:         d.NetCents,
		Balanced:         d.Balanced,
		Net:              utils.FormatMinorUnits(d.NetCents, d.CurrencyOrEmpty()),
	}
}
