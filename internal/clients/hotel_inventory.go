package clients

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/skyvoyage/booking-backend/internal/models"
)

// HotelClient adjusts room availability in the hotel service. The
// service takes positive counts on both calls: the booking endpoint
// subtracts them from availability, the restock endpoint adds them
// back.
type HotelClient struct {
	baseClient
}

// NewHotelClient creates a hotel service client
func NewHotelClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *HotelClient {
	return &HotelClient{baseClient: newBaseClient(baseURL, timeout, logger)}
}

type roomAdjustRequest struct {
	Rooms     int            `json:"rooms"`
	RoomTypes map[string]int `json:"roomTypes,omitempty"`
}

// ReserveRooms books the stay: the hotel-level pool shrinks by rooms,
// each selected room type by its count. One PUT applies the whole
// adjustment atomically; insufficient availability rejects it all.
func (c *HotelClient) ReserveRooms(ctx context.Context, hotelID string, rooms int, allocation models.RoomAllocation) error {
	return c.send(ctx, "PUT", fmt.Sprintf("/hotels/%s/rooms", hotelID), hotelID, rooms, allocation)
}

// ReleaseRooms restocks what ReserveRooms took, when a later step of
// the same submission fails
func (c *HotelClient) ReleaseRooms(ctx context.Context, hotelID string, rooms int, allocation models.RoomAllocation) error {
	return c.send(ctx, "POST", fmt.Sprintf("/hotels/%s/rooms/restock", hotelID), hotelID, rooms, allocation)
}

func (c *HotelClient) send(ctx context.Context, method, path, hotelID string, rooms int, allocation models.RoomAllocation) error {
	req := roomAdjustRequest{Rooms: rooms, RoomTypes: allocation}

	if err := c.do(ctx, method, path, req, nil); err != nil {
		if httpErr, ok := err.(*httpError); ok && conflictStatus(httpErr.StatusCode) {
			c.logger.WithFields(logrus.Fields{
				"hotel_id": hotelID,
				"rooms":    rooms,
			}).Warn("Room adjustment rejected")
			return &models.InventoryConflictError{Domain: "hotel", Message: httpErr.Message}
		}
		return err
	}
	return nil
}
