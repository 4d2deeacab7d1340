package services

import (
	"testing"

	"github.com/skyvoyage/booking-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oneWayFlight(fare float64) *models.ReservableItem {
	return &models.ReservableItem{
		ID:           "FL123",
		Type:         models.ItemTypeFlight,
		OutboundFare: fare,
	}
}

func roundTripFlight(outbound, ret float64) *models.ReservableItem {
	return &models.ReservableItem{
		ID:           "FL123",
		Type:         models.ItemTypeFlight,
		OutboundFare: outbound,
		ReturnFare:   ret,
		HasReturnLeg: true,
	}
}

func testHotel() *models.ReservableItem {
	return &models.ReservableItem{
		ID:            "HT001",
		Type:          models.ItemTypeHotel,
		Name:          "Grand Plaza",
		PricePerNight: 80,
		RoomTypes: []models.RoomType{
			{Type: "Standard", PricePerNight: 80, Available: 5, MaxGuests: 2},
			{Type: "Deluxe", PricePerNight: 100, Available: 3, MaxGuests: 2},
			{Type: "Suite", PricePerNight: 200, Available: 1, MaxGuests: 4},
		},
	}
}

func testCar(rate float64) *models.ReservableItem {
	return &models.ReservableItem{
		ID:        "CR042",
		Type:      models.ItemTypeCar,
		DailyRate: rate,
	}
}

func TestComputeTotal_Flight(t *testing.T) {
	svc := NewPricingService()

	t.Run("One Way Economy", func(t *testing.T) {
		total, err := svc.ComputeTotal(oneWayFlight(300), &models.SelectionState{
			Passengers: 2,
			CabinClass: models.ClassEconomy,
			TripType:   models.TripOneWay,
		})
		require.NoError(t, err)
		assert.Equal(t, 600.0, total)
	})

	t.Run("Round Trip Business", func(t *testing.T) {
		total, err := svc.ComputeTotal(roundTripFlight(300, 280), &models.SelectionState{
			Passengers: 2,
			CabinClass: models.ClassBusiness,
			TripType:   models.TripRoundTrip,
		})
		require.NoError(t, err)
		// (300 + 280 + 500) x 2
		assert.Equal(t, 2160.0, total)
	})

	t.Run("Round Trip Selected But No Return Leg", func(t *testing.T) {
		// Selecting round-trip on a flight without return data prices
		// as one-way
		total, err := svc.ComputeTotal(oneWayFlight(300), &models.SelectionState{
			Passengers: 1,
			TripType:   models.TripRoundTrip,
		})
		require.NoError(t, err)
		assert.Equal(t, 300.0, total)
	})

	t.Run("Unknown Class Prices As Economy", func(t *testing.T) {
		total, err := svc.ComputeTotal(oneWayFlight(300), &models.SelectionState{
			Passengers: 1,
			CabinClass: "Galaxy Class",
		})
		require.NoError(t, err)
		assert.Equal(t, 300.0, total)
	})

	t.Run("Zero Passengers Treated As One", func(t *testing.T) {
		total, err := svc.ComputeTotal(oneWayFlight(300), &models.SelectionState{})
		require.NoError(t, err)
		assert.Equal(t, 300.0, total)
	})

	t.Run("Class Upgrade Table", func(t *testing.T) {
		assert.Equal(t, 0.0, svc.ClassUpgrade(models.ClassEconomy))
		assert.Equal(t, 250.0, svc.ClassUpgrade(models.ClassPremiumEconomy))
		assert.Equal(t, 500.0, svc.ClassUpgrade(models.ClassBusiness))
		assert.Equal(t, 750.0, svc.ClassUpgrade(models.ClassFirst))
	})
}

func TestComputeTotal_Hotel(t *testing.T) {
	svc := NewPricingService()

	t.Run("Room Type Allocation", func(t *testing.T) {
		total, err := svc.ComputeTotal(testHotel(), &models.SelectionState{
			CheckIn:  "2026-03-10",
			CheckOut: "2026-03-12",
			Rooms:    models.RoomAllocation{"Deluxe": 2},
		})
		require.NoError(t, err)
		// 100 x 2 rooms x 2 nights
		assert.Equal(t, 400.0, total)
	})

	t.Run("Mixed Allocation", func(t *testing.T) {
		total, err := svc.ComputeTotal(testHotel(), &models.SelectionState{
			CheckIn:  "2026-03-10",
			CheckOut: "2026-03-13",
			Rooms:    models.RoomAllocation{"Standard": 1, "Suite": 1},
		})
		require.NoError(t, err)
		// (80 + 200) x 3 nights
		assert.Equal(t, 840.0, total)
	})

	t.Run("Base Price Fallback Without Allocation", func(t *testing.T) {
		total, err := svc.ComputeTotal(testHotel(), &models.SelectionState{
			CheckIn:  "2026-03-10",
			CheckOut: "2026-03-12",
		})
		require.NoError(t, err)
		assert.Equal(t, 160.0, total)
	})

	t.Run("Check Out Before Check In", func(t *testing.T) {
		_, err := svc.ComputeTotal(testHotel(), &models.SelectionState{
			CheckIn:  "2026-03-12",
			CheckOut: "2026-03-10",
		})
		var valErr *models.ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, "checkOut", valErr.Field)
	})

	t.Run("Same Day Stay Rejected", func(t *testing.T) {
		_, err := svc.ComputeTotal(testHotel(), &models.SelectionState{
			CheckIn:  "2026-03-10",
			CheckOut: "2026-03-10",
		})
		assert.Error(t, err)
	})
}

func TestComputeTotal_Car(t *testing.T) {
	svc := NewPricingService()

	t.Run("Three Day Rental", func(t *testing.T) {
		total, err := svc.ComputeTotal(testCar(50), &models.SelectionState{
			PickupDate: "2026-04-01",
			ReturnDate: "2026-04-04",
		})
		require.NoError(t, err)
		assert.Equal(t, 150.0, total)
	})

	t.Run("Missing Dates Yield Bare Daily Rate", func(t *testing.T) {
		total, err := svc.ComputeTotal(testCar(50), &models.SelectionState{})
		require.NoError(t, err)
		assert.Equal(t, 50.0, total)
	})

	t.Run("Same Day Counts As One Day", func(t *testing.T) {
		total, err := svc.ComputeTotal(testCar(50), &models.SelectionState{
			PickupDate: "2026-04-01",
			ReturnDate: "2026-04-01",
		})
		require.NoError(t, err)
		assert.Equal(t, 50.0, total)
	})
}

func TestComputeTotal_Determinism(t *testing.T) {
	svc := NewPricingService()
	item := roundTripFlight(123.45, 234.56)
	sel := &models.SelectionState{
		Passengers: 3,
		CabinClass: models.ClassPremiumEconomy,
		TripType:   models.TripRoundTrip,
	}

	first, err := svc.ComputeTotal(item, sel)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := svc.ComputeTotal(item, sel)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestComputeTotal_InvalidAmounts(t *testing.T) {
	svc := NewPricingService()

	t.Run("Negative Fare", func(t *testing.T) {
		_, err := svc.ComputeTotal(oneWayFlight(-10), &models.SelectionState{Passengers: 1})
		var totalErr *models.InvalidTotalError
		assert.ErrorAs(t, err, &totalErr)
	})

	t.Run("Unknown Item Type", func(t *testing.T) {
		_, err := svc.ComputeTotal(&models.ReservableItem{Type: "boat"}, &models.SelectionState{})
		assert.Error(t, err)
	})
}

func TestNightsAndRentalDays(t *testing.T) {
	svc := NewPricingService()

	assert.Equal(t, 2, svc.Nights("2026-03-10", "2026-03-12"))
	assert.Equal(t, 0, svc.Nights("", "2026-03-12"))
	assert.Equal(t, 0, svc.Nights("2026-03-12", "2026-03-10"))
	assert.Equal(t, 0, svc.Nights("not-a-date", "2026-03-12"))
	assert.Equal(t, 3, svc.RentalDays("2026-04-01", "2026-04-04"))

	hotel := testHotel()
	assert.Equal(t, 2, svc.NightsOrDays(hotel, &models.SelectionState{CheckIn: "2026-03-10", CheckOut: "2026-03-12"}))
	assert.Equal(t, 0, svc.NightsOrDays(oneWayFlight(100), &models.SelectionState{}))
}
