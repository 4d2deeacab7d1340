// Package ids generates the short human-facing identifiers used
// across bookings and billing, plus the temporary correlation
// reference that ties a submission's inventory holds together before a
// booking id exists.
package ids

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// ShortID returns prefix plus four random digits, e.g. BKG7826.
// Collisions are possible and resolved server-side on insert.
func ShortID(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, 1000+rand.Intn(9000))
}

// BookingID returns a new booking identifier
func BookingID() string {
	return ShortID("BKG")
}

// BillingID returns a new billing identifier
func BillingID() string {
	return ShortID("BLI")
}

// CorrelationRef returns the temporary reference that labels a
// submission's inventory holds until a booking id replaces it
func CorrelationRef() string {
	return "TMP-" + strings.ToUpper(uuid.NewString()[:8])
}
