package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/skyvoyage/booking-backend/internal/models"
)

// FlightClient talks to the flight service's seat reservation
// endpoints. Reservation and release are keyed by the temporary
// correlation reference; confirmation rebinds the hold to the final
// booking id.
type FlightClient struct {
	baseClient
}

// NewFlightClient creates a flight service client
func NewFlightClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *FlightClient {
	return &FlightClient{baseClient: newBaseClient(baseURL, timeout, logger)}
}

type seatActionRequest struct {
	SeatNumbers  []string `json:"seatNumbers"`
	BookingID    string   `json:"bookingId"`
	UserID       string   `json:"userId,omitempty"`
	ReturnFlight bool     `json:"returnFlight"`
}

type seatMapResponse struct {
	SeatMap []models.Seat `json:"seatMap"`
}

// conflictData is what the flight service attaches to a seat-taken
// rejection
type conflictData struct {
	UnavailableSeats []string `json:"unavailableSeats"`
}

// GetSeatMap fetches the per-leg seat map
func (c *FlightClient) GetSeatMap(ctx context.Context, flightID string, returnFlight bool) ([]models.Seat, error) {
	path := fmt.Sprintf("/flights/%s/seatmap?returnFlight=%t", flightID, returnFlight)

	var resp seatMapResponse
	if err := c.do(ctx, "GET", path, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch seat map: %w", err)
	}
	return resp.SeatMap, nil
}

// ReserveSeats places a hold on the given seats under correlationRef.
// The service accepts all seats or none.
func (c *FlightClient) ReserveSeats(ctx context.Context, flightID string, seats []string, correlationRef, userID string, returnFlight bool) error {
	path := fmt.Sprintf("/flights/%s/reserve-seats", flightID)
	req := seatActionRequest{
		SeatNumbers:  seats,
		BookingID:    correlationRef,
		UserID:       userID,
		ReturnFlight: returnFlight,
	}

	if err := c.do(ctx, "POST", path, req, nil); err != nil {
		return c.mapSeatError(err, flightID, seats, returnFlight)
	}
	return nil
}

// ConfirmSeats upgrades reserved seats to booked under the final
// booking id
func (c *FlightClient) ConfirmSeats(ctx context.Context, flightID string, seats []string, bookingID string, returnFlight bool) error {
	path := fmt.Sprintf("/flights/%s/confirm-seats", flightID)
	req := seatActionRequest{
		SeatNumbers:  seats,
		BookingID:    bookingID,
		ReturnFlight: returnFlight,
	}
	return c.do(ctx, "POST", path, req, nil)
}

// ReleaseSeats returns reserved seats held under correlationRef to
// available
func (c *FlightClient) ReleaseSeats(ctx context.Context, flightID string, seats []string, correlationRef, userID string, returnFlight bool) error {
	path := fmt.Sprintf("/flights/%s/release-seats", flightID)
	req := seatActionRequest{
		SeatNumbers:  seats,
		BookingID:    correlationRef,
		UserID:       userID,
		ReturnFlight: returnFlight,
	}
	return c.do(ctx, "POST", path, req, nil)
}

func (c *FlightClient) mapSeatError(err error, flightID string, seats []string, returnFlight bool) error {
	httpErr, ok := err.(*httpError)
	if !ok || !conflictStatus(httpErr.StatusCode) {
		return err
	}

	conflict := &models.InventoryConflictError{
		Domain:  "flight",
		Message: httpErr.Message,
	}
	if len(httpErr.Data) > 0 {
		var data conflictData
		if jsonErr := json.Unmarshal(httpErr.Data, &data); jsonErr == nil {
			conflict.UnavailableSeats = data.UnavailableSeats
		}
	}

	c.logger.WithFields(logrus.Fields{
		"flight_id":         flightID,
		"seats":             seats,
		"return_flight":     returnFlight,
		"unavailable_seats": conflict.UnavailableSeats,
	}).Warn("Seat reservation rejected")

	return conflict
}
