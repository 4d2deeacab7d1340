package models

import "time"

// BookingStatus transitions: upcoming→completed by date passage,
// upcoming→cancelled by explicit cancel, never reversed
type BookingStatus string

const (
	BookingUpcoming  BookingStatus = "upcoming"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// BookingDetails is the immutable snapshot stored with a booking:
// the reserved item, the selection, and the computed amounts.
type BookingDetails struct {
	Item ReservableItem `json:"item"`

	Passengers    int        `json:"passengers,omitempty"`
	CabinClass    CabinClass `json:"flightClass,omitempty"`
	TripType      TripType   `json:"tripType,omitempty"`
	OutboundSeats []string   `json:"outboundSeats,omitempty"`
	ReturnSeats   []string   `json:"returnSeats,omitempty"`

	Guests        int            `json:"guests,omitempty"`
	SelectedRooms RoomAllocation `json:"selectedRooms,omitempty"`
	CheckIn       string         `json:"checkIn,omitempty"`
	CheckOut      string         `json:"checkOut,omitempty"`

	PickupDate string `json:"pickupDate,omitempty"`
	ReturnDate string `json:"returnDate,omitempty"`

	TotalAmountPaid float64 `json:"totalAmountPaid"`
	BasePrice       float64 `json:"basePrice"`
}

// Booking is created exactly once per successful saga. It only exists
// if the inventory hold was confirmed (flights) or the inventory
// decrement succeeded (hotel/car) and the billing record was durably
// created alongside it.
type Booking struct {
	BookingID   string         `json:"bookingId"`
	Type        ItemType       `json:"type"`
	Status      BookingStatus  `json:"status"`
	BookingDate time.Time      `json:"bookingDate"`
	Details     BookingDetails `json:"details"`
}

// InvoiceLine is one charge row of a billing record
type InvoiceLine struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Nights      int     `json:"nights,omitempty"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

// Invoice itemizes the charge. Tax is included in the price, so the
// tax row is always zero.
type Invoice struct {
	Items    []InvoiceLine `json:"items"`
	Subtotal float64       `json:"subtotal"`
	Tax      float64       `json:"tax"`
	Discount float64       `json:"discount"`
	Total    float64       `json:"total"`
}

// CardSummary is the only card data a billing record may carry
type CardSummary struct {
	CardLast4      string `json:"cardLast4"`
	CardType       string `json:"cardType"`
	ExpiryDate     string `json:"expiryDate"`
	CardholderName string `json:"cardholderName"`
}

// BillingRecord is created together with the Booking as one commit
// step. If that step fails the booking must not be considered valid
// and any inventory hold must be released.
type BillingRecord struct {
	BillingID         string        `json:"billingId"`
	UserID            string        `json:"userId"`
	BookingType       ItemType      `json:"bookingType"`
	ItemID            string        `json:"itemId"`
	BookingID         string        `json:"bookingId"`
	TotalAmountPaid   float64       `json:"totalAmountPaid"`
	PaymentMethod     PaymentMethod `json:"paymentMethod"`
	TransactionStatus string        `json:"transactionStatus"`
	PaymentDetails    *CardSummary  `json:"paymentDetails,omitempty"`
	InvoiceDetails    Invoice       `json:"invoiceDetails"`
}
