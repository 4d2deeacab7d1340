package models

// ItemType tags the three reservable inventory kinds
type ItemType string

const (
	ItemTypeFlight ItemType = "flight"
	ItemTypeHotel  ItemType = "hotel"
	ItemTypeCar    ItemType = "car"
)

// Valid reports whether t is one of the known inventory kinds
func (t ItemType) Valid() bool {
	return t == ItemTypeFlight || t == ItemTypeHotel || t == ItemTypeCar
}

// SeatStatus is the per-seat state machine:
// available → selected (client-side) → reserved(ref) → booked(ref),
// or reserved → available on release
type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatSelected  SeatStatus = "selected"
	SeatReserved  SeatStatus = "reserved"
	SeatBooked    SeatStatus = "booked"
)

// Seat is one entry of a flight seat map. HoldRef carries the booking
// reference owning a reserved or booked seat; it is empty otherwise.
type Seat struct {
	SeatNumber string     `json:"seatNumber"`
	Row        int        `json:"row"`
	Column     string     `json:"column"`
	Status     SeatStatus `json:"status"`
	HoldRef    string     `json:"holdRef,omitempty"`
}

// RoomType is one bookable room category of a hotel
type RoomType struct {
	Type          string  `json:"type"`
	PricePerNight float64 `json:"pricePerNight"`
	Available     int     `json:"available"`
	MaxGuests     int     `json:"maxGuests"`
}

// ReservableItem is the canonical shape every inventory document is
// normalized into at the service boundary. Upstream services expose
// inconsistent field names; NormalizeItem maps them here exactly once
// so no fallback logic leaks into pricing or orchestration.
type ReservableItem struct {
	ID   string   `json:"id"`
	Type ItemType `json:"type"`
	Name string   `json:"name"`

	// Flight
	OutboundFare  float64 `json:"outboundFare,omitempty"`
	ReturnFare    float64 `json:"returnFare,omitempty"`
	HasReturnLeg  bool    `json:"hasReturnLeg,omitempty"`
	Airline       string  `json:"airline,omitempty"`
	DepartureCity string  `json:"departureCity,omitempty"`
	ArrivalCity   string  `json:"arrivalCity,omitempty"`

	// Hotel
	PricePerNight float64    `json:"pricePerNight,omitempty"`
	RoomTypes     []RoomType `json:"roomTypes,omitempty"`
	MaxGuests     int        `json:"maxGuests,omitempty"`
	City          string     `json:"city,omitempty"`

	// Car
	DailyRate      float64 `json:"dailyRate,omitempty"`
	Brand          string  `json:"brand,omitempty"`
	Model          string  `json:"model,omitempty"`
	PickupLocation string  `json:"pickupLocation,omitempty"`
}

// RoomTypeByName looks up a room type by its name
func (i *ReservableItem) RoomTypeByName(name string) (RoomType, bool) {
	for _, rt := range i.RoomTypes {
		if rt.Type == name {
			return rt, true
		}
	}
	return RoomType{}, false
}

// MaxGuestCapacity returns the guest cap used by submission
// validation: the largest room-type capacity when room types exist,
// otherwise the hotel-level cap (default 10).
func (i *ReservableItem) MaxGuestCapacity() int {
	if len(i.RoomTypes) > 0 {
		max := 0
		for _, rt := range i.RoomTypes {
			guests := rt.MaxGuests
			if guests == 0 {
				guests = 2
			}
			if guests > max {
				max = guests
			}
		}
		return max
	}
	if i.MaxGuests > 0 {
		return i.MaxGuests
	}
	return 10
}
