package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journals.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

// registerJournalRoutes registers the /journals routes.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("/:journalID", h.getJournal)
		journals.POST("/:journalID/entries", h.addEntry)
		journals.GET("/:journalID/entries", h.listEntries)
		journals.POST("/:journalID/post", h.postJournal)
		journals.GET("/:journalID/diagnostics", h.getDiagnostics)
	}
}

// createJournal godoc
// @Summary Create a journal
// @Description Creates a PENDING journal. externalRef, when given, must be unique across journals.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journal body dto.CreateJournalRequest false "Journal details"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} dto.ProblemResponse "Validation error or duplicate external reference"
// @Failure 500 {object} dto.ProblemResponse
// @Router /journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}

	journal, err := h.journalService.CreateJournal(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	empty := domain.NewDiagnostics(journal.JournalID, nil, 0, 0)
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal, &empty))
}

// getJournal godoc
// @Summary Get a journal
// @Description Retrieves a journal together with its diagnostics
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} dto.ProblemResponse "Journal not found"
// @Failure 500 {object} dto.ProblemResponse
// @Router /journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	journal, diag, err := h.journalService.GetJournalWithDiagnostics(c.Request.Context(), c.Param("journalID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal, diag))
}

// addEntry godoc
// @Summary Add an entry to a journal
// @Description Appends a debit or credit line to a PENDING journal
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Param   entry body dto.AddEntryRequest true "Entry details"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} dto.ProblemResponse "Invalid side, amount or currency"
// @Failure 404 {object} dto.ProblemResponse "Journal or account not found"
// @Failure 409 {object} dto.ProblemResponse "Concurrency conflict, retry"
// @Failure 422 {object} dto.ProblemResponse "Journal not pending, inactive account or currency mismatch"
// @Failure 500 {object} dto.ProblemResponse
// @Router /journals/{journalID}/entries [post]
func (h *journalHandler) addEntry(c *gin.Context) {
	journalID := c.Param("journalID")

	var req dto.AddEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := h.journalService.AddEntry(c.Request.Context(), journalID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists a journal's entries in creation order
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 404 {object} dto.ProblemResponse "Journal not found"
// @Failure 500 {object} dto.ProblemResponse
// @Router /journals/{journalID}/entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	entries, err := h.journalService.ListEntries(c.Request.Context(), c.Param("journalID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListEntriesResponse{Entries: dto.ToLedgerEntryResponses(entries)})
}

// postJournal godoc
// @Summary Post a journal
// @Description Finalizes a balanced journal. Posting an already posted journal returns it unchanged.
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} dto.ProblemResponse "Journal not found"
// @Failure 409 {object} dto.ProblemResponse "Concurrency conflict, retry"
// @Failure 422 {object} dto.ProblemResponse "Journal is unbalanced"
// @Failure 500 {object} dto.ProblemResponse
// @Router /journals/{journalID}/post [post]
func (h *journalHandler) postJournal(c *gin.Context) {
	journalID := c.Param("journalID")

	journal, err := h.journalService.PostJournal(c.Request.Context(), journalID)
	if err != nil {
		respondError(c, err)
		return
	}

	// Entries of a posted journal never change, so this read matches what posting saw.
	diag, err := h.journalService.Diagnostics(c.Request.Context(), journalID)
	if err != nil {
		middleware.GetLoggerFromContext(c).Warn("Journal posted but diagnostics unavailable",
			slog.String("journal_id", journalID),
			slog.String("error", err.Error()))
		diag = nil
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal, diag))
}

// getDiagnostics godoc
// @Summary Journal diagnostics
// @Description Returns the debit and credit totals, net and balance flag of a journal
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.DiagnosticsResponse
// @Failure 404 {object} dto.ProblemResponse "Journal not found"
// @Failure 500 {object} dto.ProblemResponse
// @Router /journals/{journalID}/diagnostics [get]
func (h *journalHandler) getDiagnostics(c *gin.Context) {
	diag, err := h.journalService.Diagnostics(c.Request.Context(), c.Param("journalID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDiagnosticsResponse(diag))
}
