package clients

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/skyvoyage/booking-backend/internal/models"
)

// BookingClient creates the booking and its billing record in the
// user/billing service. The service writes both or neither.
type BookingClient struct {
	baseClient
}

// NewBookingClient creates a user/billing service client
func NewBookingClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *BookingClient {
	return &BookingClient{baseClient: newBaseClient(baseURL, timeout, logger)}
}

type createBookingRequest struct {
	Booking *models.Booking       `json:"booking"`
	Billing *models.BillingRecord `json:"billing"`
}

type createBookingResponse struct {
	Booking *models.Booking `json:"booking"`
}

// CreateBooking submits the booking and billing record as one call.
// On id collision the service re-keys and returns the booking it
// actually stored.
func (c *BookingClient) CreateBooking(ctx context.Context, userID string, booking *models.Booking, billing *models.BillingRecord) (*models.Booking, error) {
	path := fmt.Sprintf("/users/%s/bookings", userID)
	req := createBookingRequest{Booking: booking, Billing: billing}

	var resp createBookingResponse
	if err := c.do(ctx, "POST", path, req, &resp); err != nil {
		c.logger.WithFields(logrus.Fields{
			"user_id":    userID,
			"booking_id": booking.BookingID,
		}).WithError(err).Error("Booking creation failed")
		return nil, err
	}

	if resp.Booking != nil {
		return resp.Booking, nil
	}
	return booking, nil
}
