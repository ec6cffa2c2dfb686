package apperrors

// Stable machine readable error codes.
const (
	CodeJournalNotFound     = "JOURNAL_NOT_FOUND"
	CodeAccountNotFound     = "ACCOUNT_NOT_FOUND"
	CodeDuplicateReference  = "EXTERNAL_REFERENCE_ALREADY_EXISTS"
	CodeInvalidSide         = "INVALID_TRANSACTION_SIDE"
	CodeInvalidAmount       = "INVALID_AMOUNT"
	CodeInvalidCurrency     = "INVALID_CURRENCY_CODE"
	CodeInvalidDescription  = "INVALID_DESCRIPTION"
	CodeInvalidExternalRef  = "INVALID_EXTERNAL_REFERENCE"
	CodeInvalidPagination   = "INVALID_PAGINATION"
	CodeJournalNotPending   = "JOURNAL_NOT_PENDING"
	CodeInactiveAccount     = "INACTIVE_ACCOUNT"
	CodeUnbalancedJournal   = "UNBALANCED_JOURNAL"
	CodeCurrencyMismatch    = "CURRENCY_MISMATCH"
	CodeEmptyJournal        = "EMPTY_JOURNAL"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	CodeInternal            = "INTERNAL_ERROR"
	CodeRequestValidation   = "VALIDATION_ERROR"
	CodeMalformedRequest    = "MALFORMED_REQUEST"
	CodeRateLimited         = "RATE_LIMITED"
)

// JournalNotFound reports a missing journal.
func JournalNotFound(journalID string) *AppError {
	return New(KindNotFound, CodeJournalNotFound, "journal not found: "+journalID).
		WithMeta("journalId", journalID)
}

// AccountNotFound reports a missing account.
func AccountNotFound(accountID string) *AppError {
	return New(KindNotFound, CodeAccountNotFound, "account not found: "+accountID).
		WithMeta("accountId", accountID)
}

// DuplicateReference reports an external reference already used by another journal.
func DuplicateReference(externalRef string) *AppError {
	return Wrap(KindValidation, CodeDuplicateReference, "external reference already exists: "+externalRef, ErrDuplicate).
		WithMeta("externalRef", externalRef)
}

// JournalNotPending reports a mutation attempted on a journal that is no longer pending.
func JournalNotPending(journalID, status string) *AppError {
	return New(KindBusinessRule, CodeJournalNotPending, "journal is not pending: "+journalID).
		WithMeta("journalId", journalID).
		WithMeta("status", status)
}

// InactiveAccount reports an entry against an inactive account.
func InactiveAccount(accountID string) *AppError {
	return New(KindBusinessRule, CodeInactiveAccount, "account is inactive: "+accountID).
		WithMeta("accountId", accountID)
}

// CurrencyMismatch reports an entry whose currency differs from the journal's.
func CurrencyMismatch(journalID, expected, actual string) *AppError {
	return New(KindBusinessRule, CodeCurrencyMismatch, "entry currency "+actual+" does not match journal currency "+expected).
		WithMeta("journalId", journalID).
		WithMeta("expected", expected).
		WithMeta("actual", actual)
}

// Validation reports rejected input under the given code.
func Validation(code, message string) *AppError {
	return New(KindValidation, code, message)
}

// UnbalancedJournal reports a posting attempt on a journal whose debits and credits differ.
func UnbalancedJournal(journalID, currency string, debitTotal, creditTotal, net int64) *AppError {
	return New(KindBusinessRule, CodeUnbalancedJournal, "journal is not balanced: "+journalID).
		WithMeta("journalId", journalID).
		WithMeta("currency", currency).
		WithMeta("debitTotalCents", debitTotal).
		WithMeta("creditTotalCents", creditTotal).
		WithMeta("netCents", net)
}

// EmptyJournal reports a posting attempt on a journal without entries when that is disallowed.
func EmptyJournal(journalID string) *AppError {
	return New(KindBusinessRule, CodeEmptyJournal, "journal has no entries: "+journalID).
		WithMeta("journalId", journalID)
}
