package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var paymentNow = time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC)

func validCard() PaymentDetails {
	return PaymentDetails{
		Method:         PaymentCreditCard,
		CardNumber:     "4242 4242 4242 4242",
		ExpiryDate:     "12/28",
		CVV:            "123",
		CardholderName: "JOHN DOE",
	}
}

func TestPaymentValidate(t *testing.T) {
	t.Run("Valid Card", func(t *testing.T) {
		card := validCard()
		assert.NoError(t, card.Validate(paymentNow))
	})

	t.Run("Non Card Methods Skip Validation", func(t *testing.T) {
		paypal := PaymentDetails{Method: PaymentPayPal}
		assert.NoError(t, paypal.Validate(paymentNow))

		transfer := PaymentDetails{Method: PaymentBankTransfer}
		assert.NoError(t, transfer.Validate(paymentNow))
	})

	t.Run("Short Card Number", func(t *testing.T) {
		card := validCard()
		card.CardNumber = "4242 4242"
		err := card.Validate(paymentNow)
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, "cardNumber", valErr.Field)
	})

	t.Run("Non Numeric Card Number", func(t *testing.T) {
		card := validCard()
		card.CardNumber = "4242 4242 4242 424x"
		assert.Error(t, card.Validate(paymentNow))
	})

	t.Run("Malformed Expiry", func(t *testing.T) {
		for _, expiry := range []string{"1228", "13/28", "00/28", "12-28", ""} {
			card := validCard()
			card.ExpiryDate = expiry
			err := card.Validate(paymentNow)
			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr, "expiry %q", expiry)
			assert.Equal(t, "expiryDate", valErr.Field)
		}
	})

	t.Run("Expired Card", func(t *testing.T) {
		card := validCard()
		card.ExpiryDate = "01/20"
		err := card.Validate(paymentNow)
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, "expiryDate", valErr.Field)
	})

	t.Run("Valid Through End Of Expiry Month", func(t *testing.T) {
		card := validCard()
		card.ExpiryDate = "02/26"
		// Still valid mid-February 2026
		assert.NoError(t, card.Validate(paymentNow))

		// No longer valid in March
		assert.Error(t, card.Validate(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("Bad CVV", func(t *testing.T) {
		for _, cvv := range []string{"", "12", "12345", "12a"} {
			card := validCard()
			card.CVV = cvv
			assert.Error(t, card.Validate(paymentNow), "cvv %q", cvv)
		}
		card := validCard()
		card.CVV = "1234"
		assert.NoError(t, card.Validate(paymentNow))
	})

	t.Run("Missing Cardholder Name", func(t *testing.T) {
		card := validCard()
		card.CardholderName = " "
		err := card.Validate(paymentNow)
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Equal(t, "cardholderName", valErr.Field)
	})
}

func TestPaymentSummary(t *testing.T) {
	t.Run("Card Summary", func(t *testing.T) {
		card := validCard()
		summary := card.Summary()
		require.NotNil(t, summary)
		assert.Equal(t, "4242", summary.CardLast4)
		assert.Equal(t, "Visa", summary.CardType)
		assert.Equal(t, "12/28", summary.ExpiryDate)
		assert.Equal(t, "JOHN DOE", summary.CardholderName)
	})

	t.Run("Nil For Non Card Methods", func(t *testing.T) {
		paypal := PaymentDetails{Method: PaymentPayPal}
		assert.Nil(t, paypal.Summary())
	})
}

func TestCardBrand(t *testing.T) {
	assert.Equal(t, "Visa", CardBrand("4242424242424242"))
	assert.Equal(t, "Mastercard", CardBrand("5105105105105100"))
	assert.Equal(t, "Amex", CardBrand("371449635398431"))
	assert.Equal(t, "Other", CardBrand("6011111111111117"))
}
