package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/skyvoyage/booking-backend/internal/models"
	"github.com/skyvoyage/booking-backend/internal/services"
)

// BookingHandler exposes the booking orchestration endpoints
type BookingHandler struct {
	orchestrator *services.BookingOrchestratorService
	flights      services.FlightInventory
	logger       *logrus.Logger
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(
	orchestrator *services.BookingOrchestratorService,
	flights services.FlightInventory,
	logger *logrus.Logger,
) *BookingHandler {
	return &BookingHandler{
		orchestrator: orchestrator,
		flights:      flights,
		logger:       logger,
	}
}

// submitBookingRequest is the wire shape of a booking submission. Item
// arrives as the upstream service sent it and is normalized exactly
// once, here.
type submitBookingRequest struct {
	UserID    string                 `json:"userId" binding:"required"`
	Type      models.ItemType        `json:"type" binding:"required"`
	Item      models.RawItem         `json:"item"`
	Selection models.SelectionState  `json:"selection"`
	Payment   models.PaymentDetails  `json:"payment"`
}

// quoteRequest asks for a price preview without any side effects
type quoteRequest struct {
	Type      models.ItemType       `json:"type" binding:"required"`
	Item      models.RawItem        `json:"item"`
	Selection models.SelectionState `json:"selection"`
}

// ============================================================================
// SUBMIT BOOKING - POST /api/v1/bookings
// ============================================================================

// SubmitBooking runs the full booking saga for one submission
func (h *BookingHandler) SubmitBooking(c *gin.Context) {
	var req submitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request: " + err.Error(),
		})
		return
	}

	item, err := req.Item.Normalize(req.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	booking, err := h.orchestrator.SubmitBooking(c.Request.Context(), &services.SubmitBookingInput{
		UserID:    req.UserID,
		Item:      item,
		Selection: req.Selection,
		Payment:   req.Payment,
	})
	if err != nil {
		h.writeSubmitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Booking confirmed",
		"data":    gin.H{"booking": booking},
	})
}

func (h *BookingHandler) writeSubmitError(c *gin.Context, err error) {
	switch e := err.(type) {
	case *models.ValidationError:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": e.Error(),
			"field":   e.Field,
		})
	case *models.InvalidTotalError:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": e.Error(),
		})
	case *models.InventoryConflictError:
		resp := gin.H{
			"success": false,
			"message": e.Error(),
			"domain":  e.Domain,
		}
		if len(e.UnavailableSeats) > 0 {
			resp["unavailableSeats"] = e.UnavailableSeats
		}
		c.JSON(http.StatusConflict, resp)
	case *models.CommitError:
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "Failed to create booking. Please try again.",
		})
	default:
		h.logger.WithError(err).Error("Booking submission failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "internal error",
		})
	}
}

// ============================================================================
// QUOTE - POST /api/v1/bookings/quote
// ============================================================================

// Quote computes the total for a selection without reserving anything
func (h *BookingHandler) Quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request: " + err.Error(),
		})
		return
	}

	item, err := req.Item.Normalize(req.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	total, err := h.orchestrator.ComputeTotal(item, &req.Selection)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Quote computed",
		"data": gin.H{
			"total": total,
			"units": h.orchestrator.NightsOrDays(item, &req.Selection),
		},
	})
}

// ============================================================================
// SEAT MAP - GET /api/v1/flights/:id/seatmap
// ============================================================================

// GetSeatMap proxies the per-leg seat map from the flight service
func (h *BookingHandler) GetSeatMap(c *gin.Context) {
	flightID := c.Param("id")
	returnFlight := c.Query("returnFlight") == "true"

	seatMap, err := h.flights.GetSeatMap(c.Request.Context(), flightID, returnFlight)
	if err != nil {
		h.logger.WithError(err).WithField("flight_id", flightID).Error("Failed to fetch seat map")
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "failed to fetch seat map",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Seat map fetched",
		"data":    gin.H{"seatMap": seatMap},
	})
}
