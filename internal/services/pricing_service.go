package services

import (
	"math"

	"github.com/skyvoyage/booking-backend/internal/models"
)

// classUpgradeTable is the per-passenger surcharge on top of the base
// fare for each cabin class
var classUpgradeTable = map[models.CabinClass]float64{
	models.ClassEconomy:        0,
	models.ClassPremiumEconomy: 250,
	models.ClassBusiness:       500,
	models.ClassFirst:          750,
}

// PricingService computes what the customer owes for a selection.
// All methods are pure: calling them twice with identical inputs
// yields identical output and causes no side effects.
type PricingService struct{}

// NewPricingService creates a new pricing service
func NewPricingService() *PricingService {
	return &PricingService{}
}

// ClassUpgrade returns the per-passenger surcharge for a cabin class.
// Unknown classes price as Economy.
func (s *PricingService) ClassUpgrade(class models.CabinClass) float64 {
	return classUpgradeTable[class]
}

// BasePrice returns the per-unit rate before quantity multipliers:
// the fare sum for the effective trip type (flight), the nightly base
// rate (hotel), or the daily rate (car).
func (s *PricingService) BasePrice(item *models.ReservableItem, sel *models.SelectionState) float64 {
	switch item.Type {
	case models.ItemTypeFlight:
		if sel.EffectiveTripType(item) == models.TripRoundTrip {
			return item.OutboundFare + item.ReturnFare
		}
		return item.OutboundFare
	case models.ItemTypeHotel:
		return item.PricePerNight
	case models.ItemTypeCar:
		return item.DailyRate
	}
	return 0
}

// Nights returns the whole nights between check-in and check-out,
// zero when either date is missing or the range is not positive
func (s *PricingService) Nights(checkIn, checkOut string) int {
	return wholeDays(checkIn, checkOut)
}

// RentalDays returns the whole days between pickup and return, zero
// when either date is missing or the range is not positive
func (s *PricingService) RentalDays(pickup, ret string) int {
	return wholeDays(pickup, ret)
}

// NightsOrDays returns the stay/rental length relevant to the item
// type, for live price previews. Flights have no duration component
// and return zero.
func (s *PricingService) NightsOrDays(item *models.ReservableItem, sel *models.SelectionState) int {
	switch item.Type {
	case models.ItemTypeHotel:
		return s.Nights(sel.CheckIn, sel.CheckOut)
	case models.ItemTypeCar:
		return s.RentalDays(sel.PickupDate, sel.ReturnDate)
	}
	return 0
}

// ComputeTotal prices the selection, rounded to 2 decimals.
//
// Flight:  (outbound [+ return] + classUpgrade) × passengers.
// Hotel:   Σ roomType price × count × nights, or basePrice × nights
//          when no allocation exists; check-out must be after
//          check-in.
// Car:     dailyRate × max(days, 1); missing dates still yield the
//          bare daily rate so previews can show a provisional figure
//          (submission of a car booking without dates is rejected by
//          the orchestrator, not here).
func (s *PricingService) ComputeTotal(item *models.ReservableItem, sel *models.SelectionState) (float64, error) {
	var total float64

	switch item.Type {
	case models.ItemTypeFlight:
		passengers := sel.Passengers
		if passengers < 1 {
			passengers = 1
		}
		total = (s.BasePrice(item, sel) + s.ClassUpgrade(sel.CabinClass)) * float64(passengers)

	case models.ItemTypeHotel:
		nights := s.Nights(sel.CheckIn, sel.CheckOut)
		if nights == 0 {
			return 0, models.NewValidationError("checkOut", "check-out date must be after check-in date")
		}
		if len(item.RoomTypes) > 0 && sel.Rooms.TotalRooms() > 0 {
			for _, rt := range item.RoomTypes {
				if count := sel.Rooms[rt.Type]; count > 0 {
					total += rt.PricePerNight * float64(count) * float64(nights)
				}
			}
		} else {
			total = item.PricePerNight * float64(nights)
		}

	case models.ItemTypeCar:
		days := s.RentalDays(sel.PickupDate, sel.ReturnDate)
		if days < 1 {
			days = 1
		}
		total = item.DailyRate * float64(days)

	default:
		return 0, models.NewValidationError("type", "unknown item type: "+string(item.Type))
	}

	if math.IsNaN(total) || math.IsInf(total, 0) || total < 0 {
		return 0, &models.InvalidTotalError{Amount: total}
	}
	return roundCents(total), nil
}

func wholeDays(from, to string) int {
	start, ok := models.ParseDate(from)
	if !ok {
		return 0
	}
	end, ok := models.ParseDate(to)
	if !ok {
		return 0
	}
	diff := end.Sub(start)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
