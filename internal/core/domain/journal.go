package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// JournalStatus indicates the state of a journal.
type JournalStatus string

const (
	Pending JournalStatus = "PENDING"
	Posted  JournalStatus = "POSTED"
)

// Field limits for journals.
const (
	MaxDescriptionLength = 500
	MaxExternalRefLength = 120
)

var ErrInvalidJournalStatus = errors.New("invalid journal status")

// ParseJournalStatus accepts the stored lower case form as well as the canonical upper case one.
func ParseJournalStatus(s string) (JournalStatus, error) {
	switch JournalStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case Pending:
		return Pending, nil
	case Posted:
		return Posted, nil
	default:
		return "", ErrInvalidJournalStatus
	}
}

// StoredValue is the representation persisted in the journals.status column.
func (s JournalStatus) StoredValue() string {
	return strings.ToLower(string(s))
}

// Journal groups ledger entries that must balance before posting.
// PostedAt is set exactly when Status is Posted.
type Journal struct {
	JournalID   string        `json:"journalID"`
	Status      JournalStatus `json:"status"`
	Description *string       `json:"description,omitempty"`
	ExternalRef *string       `json:"externalRef,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	PostedAt    *time.Time    `json:"postedAt,omitempty"`
}

// NewJournal builds a pending journal.
func NewJournal(id string, description, externalRef *string, now time.Time) Journal {
	return Journal{
		JournalID:   id,
		Status:      Pending,
		Description: description,
		ExternalRef: externalRef,
		CreatedAt:   now,
	}
}

// IsPending reports whether the journal still accepts entries.
func (j Journal) IsPending() bool {
	return j.Status == Pending
}

// MarkPosted moves a pending journal to Posted. Posting an already posted journal is a no-op
// and keeps the original PostedAt.
func (j *Journal) MarkPosted(now time.Time) bool {
	if j.Status == Posted {
		return false
	}
	j.Status = Posted
	j.PostedAt = &now
	return true
}

var ErrPostedAtMismatch = errors.New("postedAt must be set exactly when the journal is posted")

// Validate checks the status and postedAt pairing.
func (j Journal) Validate() error {
	switch j.Status {
	case Pending:
		if j.PostedAt != nil {
			return ErrPostedAtMismatch
		}
	case Posted:
		if j.PostedAt == nil {
			return ErrPostedAtMismatch
		}
	default:
		return ErrInvalidJournalStatus
	}
	return nil
}

// NormalizeOptionalText trims s and turns blank values into nil.
func NormalizeOptionalText(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ExceedsLength reports whether s is longer than max characters.
func ExceedsLength(s *string, max int) bool {
	return s != nil && utf8.RuneCountInString(*s) > max
}
