package models

import (
	"fmt"
	"strings"
	"time"
)

// PaymentMethod is the payment instrument chosen for a booking
type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "Credit Card"
	PaymentDebitCard    PaymentMethod = "Debit Card"
	PaymentPayPal       PaymentMethod = "PayPal"
	PaymentBankTransfer PaymentMethod = "Bank Transfer"
)

// PaymentDetails carries the payment input for one submission. Card
// fields are only required for card methods and are never persisted
// beyond the billing record's CardSummary.
type PaymentDetails struct {
	Method         PaymentMethod `json:"method"`
	CardNumber     string        `json:"cardNumber,omitempty"`
	ExpiryDate     string        `json:"expiryDate,omitempty"` // MM/YY
	CVV            string        `json:"cvv,omitempty"`
	CardholderName string        `json:"cardholderName,omitempty"`
}

// RequiresCard reports whether card field validation applies
func (p *PaymentDetails) RequiresCard() bool {
	return p.Method == PaymentCreditCard || p.Method == PaymentDebitCard
}

// CardDigits returns the card number with spacing stripped
func (p *PaymentDetails) CardDigits() string {
	return strings.ReplaceAll(p.CardNumber, " ", "")
}

// Validate checks the card fields against the given current time.
// Non-card methods always pass.
func (p *PaymentDetails) Validate(now time.Time) error {
	if !p.RequiresCard() {
		return nil
	}

	digits := p.CardDigits()
	if len(digits) != 16 || !allDigits(digits) {
		return NewValidationError("cardNumber", "a valid 16-digit card number is required")
	}

	month, year, ok := parseExpiry(p.ExpiryDate)
	if !ok {
		return NewValidationError("expiryDate", "expiry date must be in MM/YY format")
	}
	// The card is valid through the last day of its expiry month
	expiry := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	if !expiry.After(now) {
		return NewValidationError("expiryDate", "card expiry date cannot be in the past")
	}

	if l := len(p.CVV); l != 3 && l != 4 || !allDigits(p.CVV) {
		return NewValidationError("cvv", "a valid CVV (3-4 digits) is required")
	}

	if len(strings.TrimSpace(p.CardholderName)) < 2 {
		return NewValidationError("cardholderName", "cardholder name is required")
	}

	return nil
}

// Summary produces the persistable card summary, or nil for non-card
// methods
func (p *PaymentDetails) Summary() *CardSummary {
	if !p.RequiresCard() {
		return nil
	}
	digits := p.CardDigits()
	last4 := digits
	if len(digits) >= 4 {
		last4 = digits[len(digits)-4:]
	}
	return &CardSummary{
		CardLast4:      last4,
		CardType:       CardBrand(digits),
		ExpiryDate:     p.ExpiryDate,
		CardholderName: p.CardholderName,
	}
}

// CardBrand infers the card network from the leading digit
func CardBrand(digits string) string {
	switch {
	case strings.HasPrefix(digits, "4"):
		return "Visa"
	case strings.HasPrefix(digits, "5"):
		return "Mastercard"
	case strings.HasPrefix(digits, "3"):
		return "Amex"
	default:
		return "Other"
	}
}

func parseExpiry(s string) (month, year int, ok bool) {
	if len(s) != 5 || s[2] != '/' {
		return 0, 0, false
	}
	if _, err := fmt.Sscanf(s, "%02d/%02d", &month, &year); err != nil {
		return 0, 0, false
	}
	if month < 1 || month > 12 {
		return 0, 0, false
	}
	return month, 2000 + year, true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
