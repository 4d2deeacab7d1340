package services

import (
	"strings"

	"github.com/skyvoyage/booking-backend/internal/models"
)

// CardEntryState is the explicit state of the payment form's
// saved-card feature. Replaces the ad-hoc boolean toggle with one
// transition function per field edit.
type CardEntryState string

const (
	// NotUsingSaved: all fields entered manually, no saved card applied
	NotUsingSaved CardEntryState = "not_using_saved"
	// UsingSavedMasked: saved card is masked; name and expiry are
	// prefilled and locked, the user must type the full card number
	UsingSavedMasked CardEntryState = "using_saved_masked"
	// UsingSavedUnmasked: all card fields prefilled from the saved
	// card; any edit to a prefilled field drops to ManualEntry
	UsingSavedUnmasked CardEntryState = "using_saved_unmasked"
	// ManualEntry: a saved card exists but the user chose to override
	ManualEntry CardEntryState = "manual_entry"
)

// SavedCard is the card stored on the user profile. The CVV is never
// stored.
type SavedCard struct {
	CardNumber     string `json:"cardNumber"`
	CardholderName string `json:"cardHolderName"`
	ExpiryDate     string `json:"expiryDate"`
}

// Masked reports whether the stored number is masked and therefore
// unusable as-is
func (c *SavedCard) Masked() bool {
	return strings.Contains(c.CardNumber, "*")
}

// CardEntry drives the payment form's card fields through the
// saved-card state machine
type CardEntry struct {
	state  CardEntryState
	saved  *SavedCard
	fields models.PaymentDetails
}

// NewCardEntry creates an entry form, optionally backed by a saved
// card
func NewCardEntry(saved *SavedCard) *CardEntry {
	return &CardEntry{
		state:  NotUsingSaved,
		saved:  saved,
		fields: models.PaymentDetails{Method: models.PaymentCreditCard},
	}
}

// State returns the current form state
func (e *CardEntry) State() CardEntryState {
	return e.state
}

// Details returns the current field values
func (e *CardEntry) Details() models.PaymentDetails {
	return e.fields
}

// SetMethod changes the payment method. Switching away from a card
// method resets the saved-card state.
func (e *CardEntry) SetMethod(method models.PaymentMethod) {
	e.fields.Method = method
	if !e.fields.RequiresCard() {
		e.state = NotUsingSaved
	}
}

// UseSavedCard applies the saved card to the form. The masked and
// unmasked variants prefill different field sets; the CVV is always
// left for the user.
func (e *CardEntry) UseSavedCard() error {
	if e.saved == nil || e.saved.CardNumber == "" {
		return models.NewValidationError("savedCard", "no saved card on file")
	}

	e.fields.CardholderName = e.saved.CardholderName
	e.fields.ExpiryDate = e.saved.ExpiryDate
	e.fields.CVV = ""

	if e.saved.Masked() {
		e.fields.CardNumber = ""
		e.state = UsingSavedMasked
	} else {
		e.fields.CardNumber = FormatCardNumber(e.saved.CardNumber)
		e.state = UsingSavedUnmasked
	}
	return nil
}

// StopUsingSavedCard clears every field so the user can start fresh
func (e *CardEntry) StopUsingSavedCard() {
	e.fields.CardNumber = ""
	e.fields.ExpiryDate = ""
	e.fields.CVV = ""
	e.fields.CardholderName = ""
	e.state = NotUsingSaved
}

// EditCardNumber normalizes and stores a card number edit. In the
// masked state typing the number is expected and keeps the state; in
// the unmasked state any edit means the user is overriding the saved
// card.
func (e *CardEntry) EditCardNumber(value string) {
	e.fields.CardNumber = FormatCardNumber(value)
	if e.state == UsingSavedUnmasked {
		e.state = ManualEntry
	}
}

// EditCardholderName stores a name edit, upper-cased as entered on
// the embossed card
func (e *CardEntry) EditCardholderName(value string) {
	e.fields.CardholderName = strings.ToUpper(value)
	if e.state == UsingSavedUnmasked {
		e.state = ManualEntry
	}
}

// EditExpiry normalizes and stores an expiry edit in MM/YY form
func (e *CardEntry) EditExpiry(value string) {
	e.fields.ExpiryDate = FormatExpiry(value)
	if e.state == UsingSavedUnmasked {
		e.state = ManualEntry
	}
}

// EditCVV stores a CVV edit. The CVV is always manual input, so it
// never changes the state.
func (e *CardEntry) EditCVV(value string) {
	digits := digitsOnly(value)
	if len(digits) > 4 {
		digits = digits[:4]
	}
	e.fields.CVV = digits
}

// FormatCardNumber strips non-digits, caps at 16 digits, and groups
// by four for display
func FormatCardNumber(value string) string {
	digits := digitsOnly(value)
	if len(digits) > 16 {
		digits = digits[:16]
	}
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatExpiry strips non-digits, caps at 4 digits, and inserts the
// MM/YY slash
func FormatExpiry(value string) string {
	digits := digitsOnly(value)
	if len(digits) > 4 {
		digits = digits[:4]
	}
	if len(digits) > 2 {
		return digits[:2] + "/" + digits[2:]
	}
	return digits
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
