package services

import (
	"testing"

	"github.com/skyvoyage/booking-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeatMap() []models.Seat {
	return []models.Seat{
		{SeatNumber: "1A", Row: 1, Column: "A", Status: models.SeatAvailable},
		{SeatNumber: "1B", Row: 1, Column: "B", Status: models.SeatAvailable},
		{SeatNumber: "1C", Row: 1, Column: "C", Status: models.SeatReserved},
		{SeatNumber: "2A", Row: 2, Column: "A", Status: models.SeatBooked},
		{SeatNumber: "2B", Row: 2, Column: "B", Status: models.SeatAvailable},
	}
}

func TestSeatPicker_Toggle(t *testing.T) {
	t.Run("Select And Deselect", func(t *testing.T) {
		picker := NewSeatPicker(testSeatMap(), 2)

		require.NoError(t, picker.Toggle("1A"))
		assert.Equal(t, []string{"1A"}, picker.Selected())

		require.NoError(t, picker.Toggle("1A"))
		assert.Empty(t, picker.Selected())
	})

	t.Run("Reserved Seat Rejected", func(t *testing.T) {
		picker := NewSeatPicker(testSeatMap(), 2)
		err := picker.Toggle("1C")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not available")
	})

	t.Run("Booked Seat Rejected", func(t *testing.T) {
		picker := NewSeatPicker(testSeatMap(), 2)
		assert.Error(t, picker.Toggle("2A"))
	})

	t.Run("Unknown Seat Rejected", func(t *testing.T) {
		picker := NewSeatPicker(testSeatMap(), 2)
		assert.Error(t, picker.Toggle("99Z"))
	})

	t.Run("Capacity Enforced", func(t *testing.T) {
		picker := NewSeatPicker(testSeatMap(), 2)
		require.NoError(t, picker.Toggle("1A"))
		require.NoError(t, picker.Toggle("1B"))

		err := picker.Toggle("2B")
		require.Error(t, err)
		assert.Len(t, picker.Selected(), 2)

		// Deselecting frees a slot
		require.NoError(t, picker.Toggle("1A"))
		assert.NoError(t, picker.Toggle("2B"))
	})
}

func TestSeatPicker_Complete(t *testing.T) {
	picker := NewSeatPicker(testSeatMap(), 2)
	assert.False(t, picker.Complete())

	require.NoError(t, picker.Toggle("1A"))
	assert.False(t, picker.Complete())
	assert.Equal(t, 1, picker.Count())

	require.NoError(t, picker.Toggle("2B"))
	assert.True(t, picker.Complete())
	assert.Equal(t, []string{"1A", "2B"}, picker.Selected())
}

func TestSeatPicker_View(t *testing.T) {
	picker := NewSeatPicker(testSeatMap(), 2)
	require.NoError(t, picker.Toggle("1A"))

	view := picker.View()
	require.Len(t, view, 5)
	assert.Equal(t, "1A", view[0].SeatNumber)
	assert.Equal(t, models.SeatSelected, view[0].Status)
	// Untouched seats keep their upstream status
	assert.Equal(t, models.SeatReserved, view[2].Status)
	assert.Equal(t, models.SeatBooked, view[3].Status)
}

func TestRoomPicker(t *testing.T) {
	roomTypes := testHotel().RoomTypes

	t.Run("Increment Clamped To Availability", func(t *testing.T) {
		picker := NewRoomPicker(roomTypes)

		assert.Equal(t, 1, picker.Increment("Suite"))
		// Only one suite available
		assert.Equal(t, 1, picker.Increment("Suite"))
		assert.Equal(t, 1, picker.TotalRooms())
	})

	t.Run("Decrement Clamped To Zero", func(t *testing.T) {
		picker := NewRoomPicker(roomTypes)

		assert.Equal(t, 0, picker.Decrement("Standard"))
		picker.Increment("Standard")
		assert.Equal(t, 0, picker.Decrement("Standard"))
	})

	t.Run("Unknown Room Type Ignored", func(t *testing.T) {
		picker := NewRoomPicker(roomTypes)
		assert.Equal(t, 0, picker.Increment("Penthouse"))
		assert.Equal(t, 0, picker.TotalRooms())
	})

	t.Run("Derived Totals", func(t *testing.T) {
		picker := NewRoomPicker(roomTypes)
		picker.Increment("Standard")
		picker.Increment("Standard")
		picker.Increment("Suite")

		assert.Equal(t, 3, picker.TotalRooms())
		// 2 standard x 2 guests + 1 suite x 4 guests
		assert.Equal(t, 8, picker.TotalGuests())

		allocation := picker.Allocation()
		assert.Equal(t, models.RoomAllocation{"Standard": 2, "Suite": 1}, allocation)

		// Zero entries are omitted from the allocation
		picker.Decrement("Suite")
		assert.NotContains(t, picker.Allocation(), "Suite")
	})
}
