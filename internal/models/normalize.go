package models

import "strings"

// RawFlightLeg is one leg of a combined round-trip document
type RawFlightLeg struct {
	TicketPrice float64 `json:"ticketPrice"`
}

// RawItem is the wire shape of an inventory document as the upstream
// services actually send it. Field names are inconsistent between
// domains and between document generations; every historical alias is
// listed here and resolved in Normalize, nowhere else.
type RawItem struct {
	// Identifier aliases
	MongoID  string `json:"_id"`
	ID       string `json:"id"`
	FlightID string `json:"flightId"`
	HotelID  string `json:"hotelId"`
	CarID    string `json:"carId"`

	// Shared
	Price float64 `json:"price"`
	Name  string  `json:"name"`
	City  string  `json:"city"`

	// Flight
	TicketPrice             float64       `json:"ticketPrice"`
	ReturnTicketPrice       float64       `json:"returnTicketPrice"`
	IsRoundTrip             bool          `json:"isRoundTrip"`
	Outbound                *RawFlightLeg `json:"outbound"`
	Return                  *RawFlightLeg `json:"return"`
	HasReturnFlight         bool          `json:"hasReturnFlight"`
	ReturnDepartureDateTime string        `json:"returnDepartureDateTime"`
	Airline                 string        `json:"airline"`
	DepartureAirport        *RawAirport   `json:"departureAirport"`
	ArrivalAirport          *RawAirport   `json:"arrivalAirport"`

	// Hotel
	HotelName     string     `json:"hotelName"`
	PricePerNight float64    `json:"pricePerNight"`
	RoomTypes     []RoomType `json:"roomTypes"`
	MaxGuests     int        `json:"maxGuests"`

	// Car
	DailyRentalPrice float64 `json:"dailyRentalPrice"`
	PricePerDay      float64 `json:"pricePerDay"`
	Brand            string  `json:"brand"`
	Model            string  `json:"model"`
	PickupLocation   string  `json:"pickupLocation"`
}

// RawAirport carries the city of a flight endpoint
type RawAirport struct {
	City string `json:"city"`
}

// Normalize collapses the raw document into the canonical
// ReservableItem for the given inventory kind. This is the single
// place where field fallback chains are allowed to exist.
func (r *RawItem) Normalize(itemType ItemType) (*ReservableItem, error) {
	if !itemType.Valid() {
		return nil, NewValidationError("type", "unknown item type: "+string(itemType))
	}

	item := &ReservableItem{
		Type: itemType,
		ID:   firstNonEmpty(r.MongoID, r.ID, r.FlightID, r.HotelID, r.CarID),
	}
	if item.ID == "" {
		return nil, NewValidationError("item", "item identifier is missing")
	}

	switch itemType {
	case ItemTypeFlight:
		r.normalizeFlight(item)
	case ItemTypeHotel:
		r.normalizeHotel(item)
	case ItemTypeCar:
		r.normalizeCar(item)
	}
	return item, nil
}

func (r *RawItem) normalizeFlight(item *ReservableItem) {
	item.Airline = r.Airline
	if r.DepartureAirport != nil {
		item.DepartureCity = r.DepartureAirport.City
	}
	if r.ArrivalAirport != nil {
		item.ArrivalCity = r.ArrivalAirport.City
	}

	switch {
	case r.IsRoundTrip && r.Outbound != nil && r.Return != nil:
		// Two separate flight documents combined into one result
		item.OutboundFare = r.Outbound.TicketPrice
		item.ReturnFare = r.Return.TicketPrice
		item.HasReturnLeg = true
	case (r.HasReturnFlight || r.ReturnDepartureDateTime != "") && r.ReturnDepartureDateTime != "":
		// Return leg embedded in the same document
		item.OutboundFare = r.TicketPrice
		item.ReturnFare = r.ReturnTicketPrice
		item.HasReturnLeg = true
	default:
		item.OutboundFare = firstNonZero(r.TicketPrice, r.Price)
	}

	item.Name = strings.TrimSpace(item.Airline + " " + item.DepartureCity + " - " + item.ArrivalCity)
}

func (r *RawItem) normalizeHotel(item *ReservableItem) {
	item.Name = firstNonEmpty(r.Name, r.HotelName, "Hotel")
	item.City = r.City
	item.PricePerNight = firstNonZero(r.PricePerNight, r.Price)
	item.RoomTypes = r.RoomTypes
	item.MaxGuests = r.MaxGuests
}

func (r *RawItem) normalizeCar(item *ReservableItem) {
	item.Brand = r.Brand
	item.Model = r.Model
	item.PickupLocation = firstNonEmpty(r.PickupLocation, r.City)
	item.DailyRate = firstNonZero(r.DailyRentalPrice, r.PricePerDay, r.Price)
	item.Name = strings.TrimSpace(r.Brand + " " + r.Model)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...float64) float64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
