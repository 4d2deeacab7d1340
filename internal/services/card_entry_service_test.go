package services

import (
	"testing"

	"github.com/skyvoyage/booking-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardEntry_UseSavedCard(t *testing.T) {
	t.Run("Masked Card Requires Number Entry", func(t *testing.T) {
		entry := NewCardEntry(&SavedCard{
			CardNumber:     "**** **** **** 4242",
			CardholderName: "JOHN DOE",
			ExpiryDate:     "12/28",
		})

		require.NoError(t, entry.UseSavedCard())
		assert.Equal(t, UsingSavedMasked, entry.State())

		details := entry.Details()
		assert.Empty(t, details.CardNumber)
		assert.Equal(t, "JOHN DOE", details.CardholderName)
		assert.Equal(t, "12/28", details.ExpiryDate)
		assert.Empty(t, details.CVV)
	})

	t.Run("Unmasked Card Prefills Everything But CVV", func(t *testing.T) {
		entry := NewCardEntry(&SavedCard{
			CardNumber:     "4242424242424242",
			CardholderName: "JOHN DOE",
			ExpiryDate:     "12/28",
		})

		require.NoError(t, entry.UseSavedCard())
		assert.Equal(t, UsingSavedUnmasked, entry.State())
		assert.Equal(t, "4242 4242 4242 4242", entry.Details().CardNumber)
		assert.Empty(t, entry.Details().CVV)
	})

	t.Run("No Saved Card", func(t *testing.T) {
		entry := NewCardEntry(nil)
		assert.Error(t, entry.UseSavedCard())
		assert.Equal(t, NotUsingSaved, entry.State())
	})
}

func TestCardEntry_Transitions(t *testing.T) {
	saved := &SavedCard{
		CardNumber:     "4242424242424242",
		CardholderName: "JOHN DOE",
		ExpiryDate:     "12/28",
	}

	t.Run("Editing Prefilled Field Drops To Manual", func(t *testing.T) {
		entry := NewCardEntry(saved)
		require.NoError(t, entry.UseSavedCard())

		entry.EditCardNumber("5105105105105100")
		assert.Equal(t, ManualEntry, entry.State())
	})

	t.Run("Editing Name Drops To Manual", func(t *testing.T) {
		entry := NewCardEntry(saved)
		require.NoError(t, entry.UseSavedCard())

		entry.EditCardholderName("jane smith")
		assert.Equal(t, ManualEntry, entry.State())
		assert.Equal(t, "JANE SMITH", entry.Details().CardholderName)
	})

	t.Run("CVV Entry Never Changes State", func(t *testing.T) {
		entry := NewCardEntry(saved)
		require.NoError(t, entry.UseSavedCard())

		entry.EditCVV("123")
		assert.Equal(t, UsingSavedUnmasked, entry.State())
		assert.Equal(t, "123", entry.Details().CVV)
	})

	t.Run("Typing Number In Masked State Keeps State", func(t *testing.T) {
		entry := NewCardEntry(&SavedCard{
			CardNumber:     "**** **** **** 4242",
			CardholderName: "JOHN DOE",
			ExpiryDate:     "12/28",
		})
		require.NoError(t, entry.UseSavedCard())

		entry.EditCardNumber("4242")
		assert.Equal(t, UsingSavedMasked, entry.State())
	})

	t.Run("Stop Using Saved Card Clears Fields", func(t *testing.T) {
		entry := NewCardEntry(saved)
		require.NoError(t, entry.UseSavedCard())

		entry.StopUsingSavedCard()
		assert.Equal(t, NotUsingSaved, entry.State())
		assert.Empty(t, entry.Details().CardNumber)
		assert.Empty(t, entry.Details().CardholderName)
	})

	t.Run("Switching To PayPal Resets State", func(t *testing.T) {
		entry := NewCardEntry(saved)
		require.NoError(t, entry.UseSavedCard())

		entry.SetMethod(models.PaymentPayPal)
		assert.Equal(t, NotUsingSaved, entry.State())
	})
}

func TestFormatCardNumber(t *testing.T) {
	assert.Equal(t, "4242 4242 4242 4242", FormatCardNumber("4242424242424242"))
	assert.Equal(t, "4242 42", FormatCardNumber("4242-42"))
	// Capped at 16 digits
	assert.Equal(t, "4242 4242 4242 4242", FormatCardNumber("42424242424242429999"))
	assert.Equal(t, "", FormatCardNumber("abc"))
}

func TestFormatExpiry(t *testing.T) {
	assert.Equal(t, "12/28", FormatExpiry("1228"))
	assert.Equal(t, "12/28", FormatExpiry("12/28"))
	assert.Equal(t, "12", FormatExpiry("12"))
	assert.Equal(t, "12/2", FormatExpiry("122"))
	// Capped at 4 digits
	assert.Equal(t, "12/28", FormatExpiry("122899"))
}
