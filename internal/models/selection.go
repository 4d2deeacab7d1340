package models

import "time"

// TripType selects one-way or round-trip pricing and reservation
type TripType string

const (
	TripOneWay    TripType = "one-way"
	TripRoundTrip TripType = "round-trip"
)

// CabinClass is the fare class chosen for all passengers of a booking
type CabinClass string

const (
	ClassEconomy        CabinClass = "Economy"
	ClassPremiumEconomy CabinClass = "Premium Economy"
	ClassBusiness       CabinClass = "Business"
	ClassFirst          CabinClass = "First Class"
)

// DateLayout is the wire format for all selection dates
const DateLayout = "2006-01-02"

// ParseDate parses a selection date; the zero time means absent/invalid
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// RoomAllocation maps room type name → requested count. The
// invariant is that no entry may exceed the currently reported
// availability of its type; total rooms and guest capacity are always
// derived, never stored.
type RoomAllocation map[string]int

// TotalRooms is the sum of all requested room counts
func (a RoomAllocation) TotalRooms() int {
	total := 0
	for _, count := range a {
		total += count
	}
	return total
}

// TotalGuests derives guest capacity from the allocation against the
// hotel's room types
func (a RoomAllocation) TotalGuests(roomTypes []RoomType) int {
	total := 0
	for _, rt := range roomTypes {
		total += rt.MaxGuests * a[rt.Type]
	}
	return total
}

// SelectionState is the user's chosen quantity and parameters for one
// submission. It is owned by the caller and read-only to the
// orchestrator.
type SelectionState struct {
	// Flight
	Passengers    int        `json:"passengers,omitempty"`
	CabinClass    CabinClass `json:"cabinClass,omitempty"`
	TripType      TripType   `json:"tripType,omitempty"`
	OutboundSeats []string   `json:"outboundSeats,omitempty"`
	ReturnSeats   []string   `json:"returnSeats,omitempty"`

	// Hotel
	CheckIn  string         `json:"checkIn,omitempty"`
	CheckOut string         `json:"checkOut,omitempty"`
	Rooms    RoomAllocation `json:"rooms,omitempty"`

	// Car
	PickupDate string `json:"pickupDate,omitempty"`
	ReturnDate string `json:"returnDate,omitempty"`
}

// EffectiveTripType forces one-way when the flight carries no return
// leg data, regardless of what the caller selected
func (s *SelectionState) EffectiveTripType(item *ReservableItem) TripType {
	if s.TripType == TripRoundTrip && item.HasReturnLeg {
		return TripRoundTrip
	}
	return TripOneWay
}

// Guests derives the hotel guest count: from the room allocation when
// room types exist, otherwise the raw passenger count
func (s *SelectionState) Guests(item *ReservableItem) int {
	if len(item.RoomTypes) > 0 && len(s.Rooms) > 0 {
		return s.Rooms.TotalGuests(item.RoomTypes)
	}
	return s.Passengers
}
