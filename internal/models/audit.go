package models

import (
	"time"

	"github.com/google/uuid"
)

// BookingAudit is one append-only row per submission attempt. It is
// operational evidence of what the saga did, not the booking store —
// bookings live in the external booking/billing domain.
type BookingAudit struct {
	ID             uuid.UUID `db:"id"`
	CorrelationRef string    `db:"correlation_ref"`
	UserID         string    `db:"user_id"`
	ItemType       string    `db:"item_type"`
	ItemID         string    `db:"item_id"`
	BookingID      *string   `db:"booking_id"`
	FinalState     string    `db:"final_state"`
	FailedStep     *string   `db:"failed_step"`
	ErrorMessage   *string   `db:"error_message"`
	TotalAmount    float64   `db:"total_amount"`
	DurationMs     int64     `db:"duration_ms"`
	CreatedAt      time.Time `db:"created_at"`
}
