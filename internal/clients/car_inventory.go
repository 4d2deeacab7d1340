package clients

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/skyvoyage/booking-backend/internal/models"
)

// CarClient blocks and unblocks rental date ranges in the car service
type CarClient struct {
	baseClient
}

// NewCarClient creates a car service client
func NewCarClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *CarClient {
	return &CarClient{baseClient: newBaseClient(baseURL, timeout, logger)}
}

type carBookingRequest struct {
	PickupDate string `json:"pickupDate"`
	ReturnDate string `json:"returnDate"`
	BookingRef string `json:"bookingRef"`
	UserID     string `json:"userId"`
}

// AddBooking blocks the pickup/return date range under correlationRef.
// The service rejects overlapping ranges.
func (c *CarClient) AddBooking(ctx context.Context, carID, pickupDate, returnDate, correlationRef, userID string) error {
	path := fmt.Sprintf("/cars/%s/bookings", carID)
	req := carBookingRequest{
		PickupDate: pickupDate,
		ReturnDate: returnDate,
		BookingRef: correlationRef,
		UserID:     userID,
	}

	if err := c.do(ctx, "POST", path, req, nil); err != nil {
		if httpErr, ok := err.(*httpError); ok && conflictStatus(httpErr.StatusCode) {
			c.logger.WithFields(logrus.Fields{
				"car_id":      carID,
				"pickup_date": pickupDate,
				"return_date": returnDate,
			}).Warn("Car date block rejected")
			return &models.InventoryConflictError{Domain: "car", Message: httpErr.Message}
		}
		return err
	}
	return nil
}

// RemoveBooking removes the date block held under correlationRef when
// a later step of the same submission fails
func (c *CarClient) RemoveBooking(ctx context.Context, carID, correlationRef string) error {
	path := fmt.Sprintf("/cars/%s/bookings/%s", carID, correlationRef)
	return c.do(ctx, "DELETE", path, nil, nil)
}
