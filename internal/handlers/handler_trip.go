package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fleetbooks/fleetbooks_app/internal/apperrors"
	portssvc "github.com/fleetbooks/fleetbooks_app/internal/core/ports/services"
	"github.com/fleetbooks/fleetbooks_app/internal/dto"
	"github.com/fleetbooks/fleetbooks_app/internal/middleware"
)

// tripHandler translates trip lifecycle events into ledger postings.
type tripHandler struct {
	tripService portssvc.TripJournalSvcFacade
}

// newTripHandler creates a new tripHandler.
func newTripHandler(ts portssvc.TripJournalSvcFacade) *tripHandler {
	return &tripHandler{
		tripService: ts,
	}
}

// registerTripRoutes registers routes for trip lifecycle events.
func registerTripRoutes(rg *gin.RouterGroup, tripService portssvc.TripJournalSvcFacade) {
	trips := rg.Group("/trips")
	h := newTripHandler(tripService)
	trips.POST("/completed", h.tripCompleted)
}

// tripCompleted godoc
// @Summary Post the journal batch for a completed trip
// @Description Builds a balanced journal batch from a completed-trip event (freight receivable, freight income, expense lines) and commits it
// @Tags trips
// @Accept json
// @Produce json
// @Param trip body dto.TripCompletedRequest true "Completed trip details"
// @Success 201 {object} dto.JournalBatchResponse
// @Failure 400 {object} map[string]string "Invalid request or unresolvable accounts"
// @Failure 409 {object} map[string]string "Trip already posted"
// @Failure 500 {object} map[string]string "Failed to post trip journal"
// @Router /trips/completed [post]
func (h *tripHandler) tripCompleted(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tenant ID required"})
		return
	}
	actor := middleware.GetActorIDFromContext(c)

	var req dto.TripCompletedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for tripCompleted", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	batch, err := h.tripService.CreateTripJournal(c.Request.Context(), tenantID, req, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Trip already posted", slog.String("trip_id", req.TripID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrUnknownAccount), errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Trip journal rejected", slog.String("trip_id", req.TripID), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to post trip journal", slog.String("trip_id", req.TripID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post trip journal"})
		}
		return
	}

	logger.Info("Trip journal posted", slog.String("trip_id", req.TripID), slog.String("batch_id", batch.BatchID))
	c.JSON(http.StatusCreated, dto.ToJournalBatchResponse(batch))
}
