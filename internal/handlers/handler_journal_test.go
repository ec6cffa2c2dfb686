package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/handlers"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) GetJournal(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalService) GetJournalWithDiagnostics(ctx context.Context, journalID string) (*domain.Journal, *domain.Diagnostics, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Journal), args.Get(1).(*domain.Diagnostics), args.Error(2)
}

func (m *MockJournalService) ListEntries(ctx context.Context, journalID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockJournalService) Diagnostics(ctx context.Context, journalID string) (*domain.Diagnostics, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Diagnostics), args.Error(1)
}

func (m *MockJournalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest) (*domain.Journal, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalService) AddEntry(ctx context.Context, journalID string, req dto.AddEntryRequest) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, journalID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockJournalService) PostJournal(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) AccountHistory(ctx context.Context, accountID string, page, size int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, accountID, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) AccountBalance(ctx context.Context, accountID string) (*domain.AccountBalance, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockJournalSvc *MockJournalService
	mockLedgerSvc  *MockLedgerService
	now            time.Time
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockJournalSvc = new(MockJournalService)
	s.mockLedgerSvc = new(MockLedgerService)
	s.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	s.router = gin.New()
	s.router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.DiscardHandler)))
	handlers.RegisterRoutes(s.router, &config.Config{IsProduction: true}, &portssvc.ServiceContainer{
		Journal: s.mockJournalSvc,
		Ledger:  s.mockLedgerSvc,
	}, nil)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.mockJournalSvc.AssertExpectations(s.T())
	s.mockLedgerSvc.AssertExpectations(s.T())
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(middleware.RequestIDHeader, "test-req")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) problem(w *httptest.ResponseRecorder) dto.ProblemResponse {
	var p dto.ProblemResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &p))
	return p
}

func (s *HandlerTestSuite) pendingJournal(id string) *domain.Journal {
	j := domain.NewJournal(id, nil, nil, s.now)
	return &j
}

func ptr[T any](v T) *T { return &v }

func (s *HandlerTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "")
	s.Equal(http.StatusOK, w.Code)
	s.Equal("OK", w.Body.String())
}

func (s *HandlerTestSuite) TestCreateJournal_EmptyBody() {
	s.mockJournalSvc.On("CreateJournal", mock.Anything, dto.CreateJournalRequest{}).
		Return(s.pendingJournal("j-1"), nil).Once()

	w := s.do(http.MethodPost, "/api/v1/journals", "")

	s.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("j-1", resp.JournalID)
	s.Equal("PENDING", resp.Status)
	s.Nil(resp.PostedAt)
	s.True(resp.Balanced)
	s.Nil(resp.Currency)
	s.Equal("0.00", resp.Net)
}

func (s *HandlerTestSuite) TestCreateJournal_WithFields() {
	req := dto.CreateJournalRequest{Description: ptr("rent"), ExternalRef: ptr("inv-1")}
	j := domain.NewJournal("j-2", req.Description, req.ExternalRef, s.now)
	s.mockJournalSvc.On("CreateJournal", mock.Anything, req).Return(&j, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/journals", `{"description":"rent","externalRef":"inv-1"}`)

	s.Equal(http.StatusCreated, w.Code)
	s.Contains(w.Body.String(), `"externalRef":"inv-1"`)
}

func (s *HandlerTestSuite) TestCreateJournal_DescriptionTooLong() {
	body := `{"description":"` + strings.Repeat("x", 501) + `"}`

	w := s.do(http.MethodPost, "/api/v1/journals", body)

	s.Equal(http.StatusBadRequest, w.Code)
	p := s.problem(w)
	s.Equal(apperrors.CodeRequestValidation, p.Code)
	s.Equal("test-req", p.RequestID)
	s.Equal("/api/v1/journals", p.Path)
	fields, ok := p.Meta["fields"].(map[string]any)
	s.Require().True(ok)
	s.Equal("max", fields["description"])
	s.mockJournalSvc.AssertNotCalled(s.T(), "CreateJournal", mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestCreateJournal_MalformedJSON() {
	w := s.do(http.MethodPost, "/api/v1/journals", `{"description":`)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(apperrors.CodeMalformedRequest, s.problem(w).Code)
}

func (s *HandlerTestSuite) TestCreateJournal_DuplicateReference() {
	req := dto.CreateJournalRequest{ExternalRef: ptr("inv-1")}
	s.mockJournalSvc.On("CreateJournal", mock.Anything, req).
		Return(nil, apperrors.DuplicateReference("inv-1")).Once()

	w := s.do(http.MethodPost, "/api/v1/journals", `{"externalRef":"inv-1"}`)

	s.Equal(http.StatusBadRequest, w.Code)
	p := s.problem(w)
	s.Equal(apperrors.CodeDuplicateReference, p.Code)
	s.Equal("inv-1", p.Meta["externalRef"])
}

func (s *HandlerTestSuite) TestGetJournal() {
	diag := domain.NewDiagnostics("j-1", []string{"USD"}, 1500, 1000)
	s.mockJournalSvc.On("GetJournalWithDiagnostics", mock.Anything, "j-1").
		Return(s.pendingJournal("j-1"), &diag, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/journals/j-1", "")

	s.Equal(http.StatusOK, w.Code)
	var resp dto.JournalResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.False(resp.Balanced)
	s.Equal(int64(500), resp.NetCents)
	s.Equal("15.00", resp.DebitTotal)
	s.Equal("5.00", resp.Net)
	s.Require().NotNil(resp.Currency)
	s.Equal("USD", *resp.Currency)
}

func (s *HandlerTestSuite) TestGetJournal_NotFound() {
	s.mockJournalSvc.On("GetJournalWithDiagnostics", mock.Anything, "missing").
		Return(nil, nil, apperrors.JournalNotFound("missing")).Once()

	w := s.do(http.MethodGet, "/api/v1/journals/missing", "")

	s.Equal(http.StatusNotFound, w.Code)
	p := s.problem(w)
	s.Equal(apperrors.CodeJournalNotFound, p.Code)
	s.Equal("Not Found", p.Title)
	s.Equal("missing", p.Meta["journalId"])
}

func (s *HandlerTestSuite) TestAddEntry_Created() {
	req := dto.AddEntryRequest{AccountID: "cash", Side: "debit", AmountCents: dto.AmountOf(1500), Currency: "usd"}
	entry := &domain.LedgerEntry{
		EntryID: "e-1", JournalID: "j-1", AccountID: "cash",
		Side: domain.Debit, AmountCents: 1500, Currency: "USD", CreatedAt: s.now,
	}
	s.mockJournalSvc.On("AddEntry", mock.Anything, "j-1", req).Return(entry, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/journals/j-1/entries",
		`{"accountId":"cash","side":"debit","amountCents":1500,"currency":"usd"}`)

	s.Equal(http.StatusCreated, w.Code)
	var resp dto.LedgerEntryResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("e-1", resp.EntryID)
	s.Equal("debit", resp.Side)
	s.Equal("15.00", resp.Amount)
}

func (s *HandlerTestSuite) TestAddEntry_MissingFieldsReachService() {
	s.mockJournalSvc.On("AddEntry", mock.Anything, "j-1", dto.AddEntryRequest{AccountID: "cash"}).
		Return(nil, apperrors.Validation(apperrors.CodeInvalidSide, "side must be debit or credit")).Once()

	w := s.do(http.MethodPost, "/api/v1/journals/j-1/entries", `{"accountId":"cash"}`)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(apperrors.CodeInvalidSide, s.problem(w).Code)
}

func (s *HandlerTestSuite) TestAddEntry_NonIntegerAmountReachesService() {
	tests := []struct {
		name   string
		amount string
		err    error
		status int
		code   string
	}{
		{"fraction on missing journal", "1.5", apperrors.JournalNotFound("missing"), http.StatusNotFound, apperrors.CodeJournalNotFound},
		{"fraction", "1.5", apperrors.Validation(apperrors.CodeInvalidAmount, "amountCents must be a positive integer"), http.StatusBadRequest, apperrors.CodeInvalidAmount},
		{"string", `"ten"`, apperrors.Validation(apperrors.CodeInvalidAmount, "amountCents must be a positive integer"), http.StatusBadRequest, apperrors.CodeInvalidAmount},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := dto.AddEntryRequest{AccountID: "cash", Side: "debit", AmountCents: dto.RawAmount(tt.amount), Currency: "USD"}
			s.mockJournalSvc.On("AddEntry", mock.Anything, "missing", req).Return(nil, tt.err).Once()

			w := s.do(http.MethodPost, "/api/v1/journals/missing/entries",
				`{"accountId":"cash","side":"debit","amountCents":`+tt.amount+`,"currency":"USD"}`)

			s.Equal(tt.status, w.Code)
			s.Equal(tt.code, s.problem(w).Code)
		})
	}
}

func (s *HandlerTestSuite) TestAddEntry_WrongJSONType() {
	w := s.do(http.MethodPost, "/api/v1/journals/j-1/entries", `{"side":5}`)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(apperrors.CodeMalformedRequest, s.problem(w).Code)
}

func (s *HandlerTestSuite) TestAddEntry_ErrorStatuses() {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not pending", apperrors.JournalNotPending("j-1", "POSTED"), http.StatusUnprocessableEntity, apperrors.CodeJournalNotPending},
		{"inactive account", apperrors.InactiveAccount("cash"), http.StatusUnprocessableEntity, apperrors.CodeInactiveAccount},
		{"currency mismatch", apperrors.CurrencyMismatch("j-1", "USD", "EUR"), http.StatusUnprocessableEntity, apperrors.CodeCurrencyMismatch},
		{"account missing", apperrors.AccountNotFound("cash"), http.StatusNotFound, apperrors.CodeAccountNotFound},
		{"conflict", apperrors.NewConflictError("serialization failure", nil), http.StatusConflict, apperrors.CodeConcurrencyConflict},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.mockJournalSvc.On("AddEntry", mock.Anything, "j-1", mock.Anything).Return(nil, tt.err).Once()

			w := s.do(http.MethodPost, "/api/v1/journals/j-1/entries",
				`{"accountId":"cash","side":"credit","amountCents":100,"currency":"EUR"}`)

			s.Equal(tt.status, w.Code)
			s.Equal(tt.code, s.problem(w).Code)
		})
	}
}

func (s *HandlerTestSuite) TestInternalErrorIsOpaque() {
	s.mockJournalSvc.On("ListEntries", mock.Anything, "j-1").
		Return(nil, errors.New("pq: connection refused to 10.0.0.5")).Once()

	w := s.do(http.MethodGet, "/api/v1/journals/j-1/entries", "")

	s.Equal(http.StatusInternalServerError, w.Code)
	p := s.problem(w)
	s.Equal(apperrors.CodeInternal, p.Code)
	s.NotContains(w.Body.String(), "10.0.0.5")
	s.Nil(p.Meta)
}

func (s *HandlerTestSuite) TestListEntries() {
	entries := []domain.LedgerEntry{
		{EntryID: "e-1", JournalID: "j-1", AccountID: "cash", Side: domain.Debit, AmountCents: 100, Currency: "JPY", CreatedAt: s.now},
		{EntryID: "e-2", JournalID: "j-1", AccountID: "sales", Side: domain.Credit, AmountCents: 100, Currency: "JPY", CreatedAt: s.now},
	}
	s.mockJournalSvc.On("ListEntries", mock.Anything, "j-1").Return(entries, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/journals/j-1/entries", "")

	s.Equal(http.StatusOK, w.Code)
	var resp dto.ListEntriesResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().Len(resp.Entries, 2)
	s.Equal("e-1", resp.Entries[0].EntryID)
	s.Equal("100", resp.Entries[0].Amount)
}

func (s *HandlerTestSuite) TestPostJournal() {
	posted := s.pendingJournal("j-1")
	posted.MarkPosted(s.now.Add(time.Minute))
	diag := domain.NewDiagnostics("j-1", []string{"USD"}, 1000, 1000)
	s.mockJournalSvc.On("PostJournal", mock.Anything, "j-1").Return(posted, nil).Once()
	s.mockJournalSvc.On("Diagnostics", mock.Anything, "j-1").Return(&diag, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/journals/j-1/post", "")

	s.Equal(http.StatusOK, w.Code)
	var resp dto.JournalResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("POSTED", resp.Status)
	s.Require().NotNil(resp.PostedAt)
	s.True(resp.Balanced)
	s.Equal(int64(1000), resp.DebitTotalCents)
}

func (s *HandlerTestSuite) TestPostJournal_Unbalanced() {
	s.mockJournalSvc.On("PostJournal", mock.Anything, "j-1").
		Return(nil, apperrors.UnbalancedJournal("j-1", "USD", 1500, 1000, 500)).Once()

	w := s.do(http.MethodPost, "/api/v1/journals/j-1/post", "")

	s.Equal(http.StatusUnprocessableEntity, w.Code)
	p := s.problem(w)
	s.Equal(apperrors.CodeUnbalancedJournal, p.Code)
	s.Equal("j-1", p.Meta["journalId"])
	s.Equal("USD", p.Meta["currency"])
	s.EqualValues(1500, p.Meta["debitTotalCents"])
	s.EqualValues(1000, p.Meta["creditTotalCents"])
	s.EqualValues(500, p.Meta["netCents"])
}

func (s *HandlerTestSuite) TestGetDiagnostics() {
	diag := domain.NewDiagnostics("j-1", nil, 0, 0)
	s.mockJournalSvc.On("Diagnostics", mock.Anything, "j-1").Return(&diag, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/journals/j-1/diagnostics", "")

	s.Equal(http.StatusOK, w.Code)
	var resp dto.DiagnosticsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.Balanced)
	s.Nil(resp.Currency)
}
