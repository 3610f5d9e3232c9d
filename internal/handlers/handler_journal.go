package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fleetbooks/fleetbooks_app/internal/apperrors"
	portssvc "github.com/fleetbooks/fleetbooks_app/internal/core/ports/services"
	"github.com/fleetbooks/fleetbooks_app/internal/dto"
	"github.com/fleetbooks/fleetbooks_app/internal/middleware"
)

// journalHandler handles HTTP requests related to journal batches.
type journalHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(ls portssvc.LedgerSvcFacade) *journalHandler {
	return &journalHandler{
		ledgerService: ls,
	}
}

// registerJournalRoutes registers routes for journal batches and the entry history.
func registerJournalRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newJournalHandler(ledgerService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.commitBatch)
		journals.GET("/:reference", h.getBatch)
		journals.POST("/:reference/reverse", h.reverseBatch)
	}
	rg.GET("/entries", h.listEntries)
}

// commitBatch godoc
// @Summary Commit a journal batch
// @Description Validates a candidate batch against the double-entry rules and commits it atomically
// @Tags journals
// @Accept json
// @Produce json
// @Param batch body dto.CreateJournalBatchRequest true "Candidate batch"
// @Success 201 {object} dto.JournalBatchResponse
// @Failure 400 {object} map[string]string "Invalid request or rejected batch"
// @Failure 409 {object} map[string]string "Duplicate reference"
// @Failure 500 {object} map[string]string "Failed to commit batch"
// @Router /journals [post]
func (h *journalHandler) commitBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tenant ID required"})
		return
	}
	actor := middleware.GetActorIDFromContext(c)

	var req dto.CreateJournalBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for commitBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	batch, err := h.ledgerService.CommitBatch(c.Request.Context(), tenantID, req, actor)
	if err != nil {
		h.writeCommitError(c, logger, req.Reference, err)
		return
	}

	logger.Info("Batch committed", slog.String("batch_id", batch.BatchID), slog.String("reference", batch.Reference))
	c.JSON(http.StatusCreated, dto.ToJournalBatchResponse(batch))
}

// writeCommitError maps a commit failure onto an HTTP status. Each rejection
// rule surfaces its own message so the caller knows which check failed.
func (h *journalHandler) writeCommitError(c *gin.Context, logger *slog.Logger, reference string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate batch reference", slog.String("reference", reference))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnbalancedBatch),
		errors.Is(err, apperrors.ErrInsufficientLines),
		errors.Is(err, apperrors.ErrMixedSidesOnAccount),
		errors.Is(err, apperrors.ErrUnknownAccount),
		errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Batch rejected", slog.String("reference", reference), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to commit batch", slog.String("reference", reference), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit batch"})
	}
}

// getBatch godoc
// @Summary Get a journal batch
// @Description Retrieves a committed batch and its entries by reference
// @Tags journals
// @Produce json
// @Param reference path string true "Batch reference"
// @Success 200 {object} dto.JournalBatchResponse
// @Failure 404 {object} map[string]string "Batch not found"
// @Failure 500 {object} map[string]string "Failed to retrieve batch"
// @Router /journals/{reference} [get]
func (h *journalHandler) getBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tenant ID required"})
		return
	}
	reference := c.Param("reference")

	batch, err := h.ledgerService.GetBatchByReference(c.Request.Context(), tenantID, reference)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Batch not found"})
			return
		}
		logger.Error("Failed to get batch", slog.String("error", err.Error()), slog.String("reference", reference))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve batch"})
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalBatchResponse(batch))
}

// reverseBatch godoc
// @Summary Reverse a journal batch
// @Description Posts a new offsetting batch for a committed one. The original batch is never modified.
// @Tags journals
// @Produce json
// @Param reference path string true "Reference of the batch to reverse"
// @Success 201 {object} dto.JournalBatchResponse
// @Failure 404 {object} map[string]string "Batch not found"
// @Failure 409 {object} map[string]string "Batch already reversed or is itself a reversal"
// @Failure 500 {object} map[string]string "Failed to reverse batch"
// @Router /journals/{reference}/reverse [post]
func (h *journalHandler) reverseBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tenant ID required"})
		return
	}
	actor := middleware.GetActorIDFromContext(c)
	reference := c.Param("reference")

	batch, err := h.ledgerService.ReverseBatch(c.Request.Context(), tenantID, reference, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Batch not found"})
		case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Rejected reversal", slog.String("reference", reference), slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to reverse batch", slog.String("error", err.Error()), slog.String("reference", reference))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reverse batch"})
		}
		return
	}

	logger.Info("Batch reversed", slog.String("reference", reference), slog.String("reversal_batch_id", batch.BatchID))
	c.JSON(http.StatusCreated, dto.ToJournalBatchResponse(batch))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists committed entries in chronological order, optionally bounded by account and date range
// @Tags journals
// @Produce json
// @Param accountID query string false "Filter by account"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Router /entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tenant ID required"})
		return
	}

	params := dto.ListEntriesParams{}
	if accountID := c.Query("accountID"); accountID != "" {
		params.AccountID = &accountID
	}
	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date format. Use YYYY-MM-DD"})
			return
		}
		params.From = &from
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date format. Use YYYY-MM-DD"})
			return
		}
		params.To = &to
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		params.Limit = limit
	}
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}

	page, err := h.ledgerService.ListEntries(c.Request.Context(), tenantID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, page)
}
