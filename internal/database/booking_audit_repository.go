package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/skyvoyage/booking-backend/internal/models"
)

// BookingAuditRepository persists one row per booking submission
// attempt. Rows are append-only.
type BookingAuditRepository struct {
	db     *sqlx.DB
	logger *logrus.Logger
}

// NewBookingAuditRepository creates a new booking audit repository
func NewBookingAuditRepository(db *sqlx.DB, logger *logrus.Logger) *BookingAuditRepository {
	return &BookingAuditRepository{
		db:     db,
		logger: logger,
	}
}

// Record inserts one audit row. Submission outcomes must be traceable,
// so a failed insert is logged loudly and returned.
func (r *BookingAuditRepository) Record(ctx context.Context, audit *models.BookingAudit) error {
	if audit == nil {
		return fmt.Errorf("audit entry cannot be nil")
	}

	if audit.ID == uuid.Nil {
		audit.ID = uuid.New()
	}
	if audit.CreatedAt.IsZero() {
		audit.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO booking_audits (
			id, correlation_ref, user_id,
			item_type, item_id, booking_id,
			final_state, failed_step, error_message,
			total_amount, duration_ms, created_at
		) VALUES (
			$1, $2, $3,
			$4, $5, $6,
			$7, $8, $9,
			$10, $11, $12
		)`

	_, err := r.db.ExecContext(ctx, query,
		audit.ID, audit.CorrelationRef, audit.UserID,
		audit.ItemType, audit.ItemID, audit.BookingID,
		audit.FinalState, audit.FailedStep, audit.ErrorMessage,
		audit.TotalAmount, audit.DurationMs, audit.CreatedAt,
	)

	if err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"correlation_ref": audit.CorrelationRef,
			"final_state":     audit.FinalState,
		}).Error("Failed to record booking audit")
		return fmt.Errorf("failed to record booking audit: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"audit_id":        audit.ID,
		"correlation_ref": audit.CorrelationRef,
		"final_state":     audit.FinalState,
	}).Debug("Booking audit recorded")

	return nil
}

// GetByCorrelationRef fetches the audit row for one submission attempt
func (r *BookingAuditRepository) GetByCorrelationRef(ctx context.Context, correlationRef string) (*models.BookingAudit, error) {
	var audit models.BookingAudit
	query := `
		SELECT id, correlation_ref, user_id,
		       item_type, item_id, booking_id,
		       final_state, failed_step, error_message,
		       total_amount, duration_ms, created_at
		FROM booking_audits
		WHERE correlation_ref = $1`

	if err := r.db.GetContext(ctx, &audit, query, correlationRef); err != nil {
		return nil, fmt.Errorf("failed to get booking audit: %w", err)
	}
	return &audit, nil
}

// ListByUser returns a user's most recent submission attempts
func (r *BookingAuditRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.BookingAudit, error) {
	if limit <= 0 {
		limit = 50
	}

	var audits []models.BookingAudit
	query := `
		SELECT id, correlation_ref, user_id,
		       item_type, item_id, booking_id,
		       final_state, failed_step, error_message,
		       total_amount, duration_ms, created_at
		FROM booking_audits
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	if err := r.db.SelectContext(ctx, &audits, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to list booking audits: %w", err)
	}
	return audits, nil
}
