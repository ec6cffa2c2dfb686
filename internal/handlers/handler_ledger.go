package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/gin-gonic/gin"
)

// ledgerHandler serves account-side ledger reads.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ledgerService portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ledgerService}
}

// registerAccountRoutes registers the /accounts routes.
func registerAccountRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/:accountID/entries", h.listAccountEntries)
		accounts.GET("/:accountID/balance", h.getAccountBalance)
	}
}

// listAccountEntries godoc
// @Summary Account history
// @Description Lists an account's entries newest first, offset paginated
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   page query int false "Zero-based page" default(0)
// @Param   size query int false "Page size (1-200)" default(20)
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} dto.ProblemResponse "Invalid pagination"
// @Failure 500 {object} dto.ProblemResponse
// @Router /accounts/{accountID}/entries [get]
func (h *ledgerHandler) listAccountEntries(c *gin.Context) {
	var params dto.ListAccountEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	entries, err := h.ledgerService.AccountHistory(c.Request.Context(), c.Param("accountID"), params.Page, params.Size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.ToLedgerEntryResponses(entries),
		Page:    params.Page,
		Size:    params.Size,
	})
}

// getAccountBalance godoc
// @Summary Account balance
// @Description Returns credits minus debits over all of the account's entries
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 404 {object} dto.ProblemResponse "Account not found"
// @Failure 500 {object} dto.ProblemResponse
// @Router /accounts/{accountID}/balance [get]
func (h *ledgerHandler) getAccountBalance(c *gin.Context) {
	balance, err := h.ledgerService.AccountBalance(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AccountBalanceResponse{AccountID: balance.AccountID, NetCents: balance.NetCents})
}
