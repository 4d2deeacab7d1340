package services

import (
	"context"

	"github.com/skyvoyage/booking-backend/internal/models"
)

// FlightInventory is the flight domain's seat reservation protocol.
// Seats move available → reserved(ref) → booked(bookingID); release
// returns reserved seats held under ref to available.
type FlightInventory interface {
	GetSeatMap(ctx context.Context, flightID string, returnFlight bool) ([]models.Seat, error)
	ReserveSeats(ctx context.Context, flightID string, seats []string, correlationRef, userID string, returnFlight bool) error
	ConfirmSeats(ctx context.Context, flightID string, seats []string, bookingID string, returnFlight bool) error
	ReleaseSeats(ctx context.Context, flightID string, seats []string, correlationRef, userID string, returnFlight bool) error
}

// HotelInventory decrements room availability atomically across all
// requested room types, or not at all. ReleaseRooms restocks a
// decrement made by the same submission when a later step fails.
type HotelInventory interface {
	ReserveRooms(ctx context.Context, hotelID string, rooms int, allocation models.RoomAllocation) error
	ReleaseRooms(ctx context.Context, hotelID string, rooms int, allocation models.RoomAllocation) error
}

// CarInventory blocks a pickup/return date range for a car.
// RemoveBooking undoes a block held under the correlation ref when a
// later step fails.
type CarInventory interface {
	AddBooking(ctx context.Context, carID, pickupDate, returnDate, correlationRef, userID string) error
	RemoveBooking(ctx context.Context, carID, correlationRef string) error
}

// BookingBilling creates the Booking and BillingRecord as one logical
// operation in the user/billing domain. If the call fails, neither
// record exists.
type BookingBilling interface {
	CreateBooking(ctx context.Context, userID string, booking *models.Booking, billing *models.BillingRecord) (*models.Booking, error)
}

// AuditLog records the outcome of each submission attempt. Recording
// is best-effort: a failed write never fails the saga.
type AuditLog interface {
	Record(ctx context.Context, audit *models.BookingAudit) error
}
