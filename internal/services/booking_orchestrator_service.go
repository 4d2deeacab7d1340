package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/skyvoyage/booking-backend/internal/metrics"
	"github.com/skyvoyage/booking-backend/internal/models"
	"github.com/skyvoyage/booking-backend/pkg/ids"
)

// SagaState is the phase of one booking submission
type SagaState string

const (
	SagaValidating         SagaState = "validating"
	SagaReservingInventory SagaState = "reserving_inventory"
	SagaCommitting         SagaState = "committing"
	SagaConfirming         SagaState = "confirming"
	SagaDone               SagaState = "done"
	SagaCompensating       SagaState = "compensating"
	SagaFailed             SagaState = "failed"
)

// SubmitBookingInput carries everything one submission needs. Item
// must already be normalized; Selection and Payment are owned by the
// caller and read-only here.
type SubmitBookingInput struct {
	UserID    string
	Item      *models.ReservableItem
	Selection models.SelectionState
	Payment   models.PaymentDetails
}

// BookingOrchestratorService sequences one submission through
// validation → inventory reservation → booking/billing commit →
// confirmation, and compensates reserved inventory when a later step
// fails. Steps are strictly sequential; there is no automatic retry —
// any failure is terminal for the attempt and reported to the caller.
//
// The orchestrator holds no shared mutable state of its own beyond
// the correlation reference generated per submission; concurrent
// submissions for the same unit are resolved by the inventory
// services' atomic reserve operations.
type BookingOrchestratorService struct {
	flights  FlightInventory
	hotels   HotelInventory
	cars     CarInventory
	bookings BookingBilling
	pricing  *PricingService
	audit    AuditLog
	logger   *logrus.Logger
	now      func() time.Time
}

// NewBookingOrchestratorService creates a new orchestrator. audit may
// be nil when no audit store is configured.
func NewBookingOrchestratorService(
	flights FlightInventory,
	hotels HotelInventory,
	cars CarInventory,
	bookings BookingBilling,
	pricing *PricingService,
	audit AuditLog,
	logger *logrus.Logger,
) *BookingOrchestratorService {
	return &BookingOrchestratorService{
		flights:  flights,
		hotels:   hotels,
		cars:     cars,
		bookings: bookings,
		pricing:  pricing,
		audit:    audit,
		logger:   logger,
		now:      time.Now,
	}
}

// flightHolds tracks which legs were reserved in this attempt so
// compensation releases exactly what was held, once
type flightHolds struct {
	outbound bool
	ret      bool
}

// SubmitBooking runs the whole saga for one submission
func (s *BookingOrchestratorService) SubmitBooking(ctx context.Context, in *SubmitBookingInput) (*models.Booking, error) {
	if in == nil || in.Item == nil {
		return nil, models.NewValidationError("item", "a reservable item is required")
	}

	started := s.now()
	state := SagaValidating
	correlationRef := ids.CorrelationRef()

	log := s.logger.WithFields(logrus.Fields{
		"correlation_ref": correlationRef,
		"user_id":         in.UserID,
		"item_type":       in.Item.Type,
		"item_id":         in.Item.ID,
	})

	var (
		booking  *models.Booking
		total    float64
		sagaErr  error
		failedAt SagaState
	)
	defer func() {
		s.recordAudit(ctx, in, correlationRef, state, failedAt, booking, total, sagaErr, s.now().Sub(started))
		metrics.ObserveSubmission(string(in.Item.Type), string(state), s.now().Sub(started))
	}()

	// 1. Validate (no side effects)
	total, sagaErr = s.validate(in)
	if sagaErr != nil {
		state, failedAt = SagaFailed, SagaValidating
		log.WithError(sagaErr).Warn("Booking submission rejected by validation")
		return nil, sagaErr
	}

	// 2. Reserve inventory under the temporary correlation reference
	state = SagaReservingInventory
	holds, err := s.reserveInventory(ctx, in, correlationRef, log)
	if err != nil {
		state, failedAt = SagaFailed, SagaReservingInventory
		sagaErr = err
		log.WithError(err).Warn("Inventory reservation failed")
		return nil, err
	}
	log.Info("Inventory reserved")

	// 3. Commit: create Booking and BillingRecord as one call
	state = SagaCommitting
	booking, sagaErr = s.commit(ctx, in, total)
	if sagaErr != nil {
		state = SagaCompensating
		s.compensate(ctx, in, correlationRef, holds, log)
		state, failedAt = SagaFailed, SagaCommitting
		log.WithError(sagaErr).Error("Booking commit failed, inventory released")
		return nil, sagaErr
	}

	// 4. Confirm flight seat holds under the final booking id.
	// Failure here is non-fatal: the booking exists and the seats are
	// unavailable to others either way.
	state = SagaConfirming
	if in.Item.Type == models.ItemTypeFlight {
		s.confirmSeats(ctx, in, booking.BookingID, log)
	}

	state = SagaDone
	log.WithFields(logrus.Fields{
		"booking_id":   booking.BookingID,
		"total_amount": total,
	}).Info("Booking confirmed successfully")

	return booking, nil
}

// ComputeTotal is the read-only price preview helper
func (s *BookingOrchestratorService) ComputeTotal(item *models.ReservableItem, sel *models.SelectionState) (float64, error) {
	return s.pricing.ComputeTotal(item, sel)
}

// NightsOrDays is the read-only stay-length preview helper
func (s *BookingOrchestratorService) NightsOrDays(item *models.ReservableItem, sel *models.SelectionState) int {
	return s.pricing.NightsOrDays(item, sel)
}

// ============================================================================
// VALIDATE (Step 1)
// ============================================================================

func (s *BookingOrchestratorService) validate(in *SubmitBookingInput) (float64, error) {
	if in.UserID == "" {
		return 0, models.NewValidationError("userId", "user id is required")
	}
	if in.Item == nil || !in.Item.Type.Valid() {
		return 0, models.NewValidationError("item", "a reservable item is required")
	}

	sel := &in.Selection
	switch in.Item.Type {
	case models.ItemTypeFlight:
		if err := s.validateFlight(in.Item, sel); err != nil {
			return 0, err
		}
	case models.ItemTypeHotel:
		if err := s.validateHotel(in.Item, sel); err != nil {
			return 0, err
		}
	case models.ItemTypeCar:
		if err := s.validateCar(sel); err != nil {
			return 0, err
		}
	}

	if err := in.Payment.Validate(s.now()); err != nil {
		return 0, err
	}

	total, err := s.pricing.ComputeTotal(in.Item, sel)
	if err != nil {
		return 0, err
	}
	if total <= 0 {
		return 0, &models.InvalidTotalError{Amount: total}
	}
	return total, nil
}

func (s *BookingOrchestratorService) validateFlight(item *models.ReservableItem, sel *models.SelectionState) error {
	if sel.Passengers < 1 {
		return models.NewValidationError("passengers", "at least one passenger is required")
	}
	if len(sel.OutboundSeats) != sel.Passengers {
		return models.NewValidationError("outboundSeats",
			fmt.Sprintf("select exactly %d seat(s) for the outbound flight", sel.Passengers))
	}
	if sel.EffectiveTripType(item) == models.TripRoundTrip && len(sel.ReturnSeats) != sel.Passengers {
		return models.NewValidationError("returnSeats",
			fmt.Sprintf("select exactly %d seat(s) for the return flight", sel.Passengers))
	}
	return nil
}

func (s *BookingOrchestratorService) validateHotel(item *models.ReservableItem, sel *models.SelectionState) error {
	if _, ok := models.ParseDate(sel.CheckIn); !ok {
		return models.NewValidationError("checkIn", "check-in date is required")
	}
	if _, ok := models.ParseDate(sel.CheckOut); !ok {
		return models.NewValidationError("checkOut", "check-out date is required")
	}

	// Allocation may never exceed reported availability for any type
	for roomType, count := range sel.Rooms {
		rt, ok := item.RoomTypeByName(roomType)
		if !ok {
			return models.NewValidationError("rooms", fmt.Sprintf("room type %s not found", roomType))
		}
		if count < 0 {
			return models.NewValidationError("rooms", fmt.Sprintf("invalid count for room type %s", roomType))
		}
		if count > rt.Available {
			return models.NewValidationError("rooms",
				fmt.Sprintf("only %d %s room(s) available", rt.Available, roomType))
		}
	}

	// An explicitly supplied guest count is checked against the hotel
	// cap; a count derived from the allocation is already bounded by
	// the per-type availability checks above
	if sel.Passengers > item.MaxGuestCapacity() {
		return models.NewValidationError("guests",
			fmt.Sprintf("maximum %d guest(s) allowed for this hotel", item.MaxGuestCapacity()))
	}
	return nil
}

func (s *BookingOrchestratorService) validateCar(sel *models.SelectionState) error {
	pickup, ok := models.ParseDate(sel.PickupDate)
	if !ok {
		return models.NewValidationError("pickupDate", "pickup date is required")
	}
	ret, ok := models.ParseDate(sel.ReturnDate)
	if !ok {
		return models.NewValidationError("returnDate", "return date is required")
	}
	if !ret.After(pickup) {
		return models.NewValidationError("returnDate", "return date must be after pickup date")
	}
	return nil
}

// ============================================================================
// RESERVE INVENTORY (Step 2)
// ============================================================================

func (s *BookingOrchestratorService) reserveInventory(
	ctx context.Context,
	in *SubmitBookingInput,
	correlationRef string,
	log *logrus.Entry,
) (flightHolds, error) {
	var holds flightHolds
	sel := &in.Selection

	switch in.Item.Type {
	case models.ItemTypeFlight:
		if err := s.flights.ReserveSeats(ctx, in.Item.ID, sel.OutboundSeats, correlationRef, in.UserID, false); err != nil {
			return holds, err
		}
		holds.outbound = true

		if sel.EffectiveTripType(in.Item) == models.TripRoundTrip {
			if err := s.flights.ReserveSeats(ctx, in.Item.ID, sel.ReturnSeats, correlationRef, in.UserID, true); err != nil {
				// Outbound is held but the submission cannot proceed:
				// release it before reporting the error
				s.releaseSeatsQuietly(ctx, in, correlationRef, flightHolds{outbound: true}, log)
				return flightHolds{}, err
			}
			holds.ret = true
		}

	case models.ItemTypeHotel:
		rooms := sel.Rooms.TotalRooms()
		if rooms == 0 {
			rooms = 1 // no per-type selection, book one room against the hotel-level pool
		}
		if err := s.hotels.ReserveRooms(ctx, in.Item.ID, rooms, sel.Rooms); err != nil {
			return holds, err
		}

	case models.ItemTypeCar:
		if err := s.cars.AddBooking(ctx, in.Item.ID, sel.PickupDate, sel.ReturnDate, correlationRef, in.UserID); err != nil {
			return holds, err
		}
	}

	return holds, nil
}

// ============================================================================
// COMMIT (Step 3)
// ============================================================================

func (s *BookingOrchestratorService) commit(ctx context.Context, in *SubmitBookingInput, total float64) (*models.Booking, error) {
	booking := s.buildBooking(in, total)
	billing := s.buildBilling(in, booking, total)

	created, err := s.bookings.CreateBooking(ctx, in.UserID, booking, billing)
	if err != nil {
		return nil, &models.CommitError{Message: "failed to create booking", Err: err}
	}
	if created != nil {
		return created, nil
	}
	return booking, nil
}

func (s *BookingOrchestratorService) buildBooking(in *SubmitBookingInput, total float64) *models.Booking {
	sel := &in.Selection
	details := models.BookingDetails{
		Item:            *in.Item,
		TotalAmountPaid: total,
		BasePrice:       s.pricing.BasePrice(in.Item, sel),
	}

	switch in.Item.Type {
	case models.ItemTypeFlight:
		details.Passengers = sel.Passengers
		details.CabinClass = sel.CabinClass
		details.TripType = sel.EffectiveTripType(in.Item)
		details.OutboundSeats = sel.OutboundSeats
		if details.TripType == models.TripRoundTrip {
			details.ReturnSeats = sel.ReturnSeats
		}
	case models.ItemTypeHotel:
		details.Guests = sel.Guests(in.Item)
		details.SelectedRooms = sel.Rooms
		details.CheckIn = sel.CheckIn
		details.CheckOut = sel.CheckOut
	case models.ItemTypeCar:
		details.PickupDate = sel.PickupDate
		details.ReturnDate = sel.ReturnDate
	}

	return &models.Booking{
		BookingID:   ids.BookingID(),
		Type:        in.Item.Type,
		Status:      models.BookingUpcoming,
		BookingDate: s.now().UTC(),
		Details:     details,
	}
}

func (s *BookingOrchestratorService) buildBilling(in *SubmitBookingInput, booking *models.Booking, total float64) *models.BillingRecord {
	return &models.BillingRecord{
		BillingID:         ids.BillingID(),
		UserID:            in.UserID,
		BookingType:       in.Item.Type,
		ItemID:            in.Item.ID,
		BookingID:         booking.BookingID,
		TotalAmountPaid:   total,
		PaymentMethod:     in.Payment.Method,
		TransactionStatus: "completed",
		PaymentDetails:    in.Payment.Summary(),
		InvoiceDetails:    s.buildInvoice(in, total),
	}
}

func (s *BookingOrchestratorService) buildInvoice(in *SubmitBookingInput, total float64) models.Invoice {
	sel := &in.Selection
	item := in.Item
	var lines []models.InvoiceLine

	if item.Type == models.ItemTypeHotel && len(item.RoomTypes) > 0 && sel.Rooms.TotalRooms() > 0 {
		nights := s.pricing.Nights(sel.CheckIn, sel.CheckOut)
		for _, rt := range item.RoomTypes {
			count := sel.Rooms[rt.Type]
			if count == 0 {
				continue
			}
			lines = append(lines, models.InvoiceLine{
				Description: fmt.Sprintf("%s Room - %s", rt.Type, item.Name),
				Quantity:    count,
				Nights:      nights,
				Price:       rt.PricePerNight,
				Total:       rt.PricePerNight * float64(count) * float64(nights),
			})
		}
	} else {
		lines = append(lines, models.InvoiceLine{
			Description: s.invoiceDescription(item),
			Quantity:    s.invoiceQuantity(item, sel),
			Price:       s.pricing.BasePrice(item, sel),
			Total:       total,
		})
	}

	return models.Invoice{
		Items:    lines,
		Subtotal: total,
		Tax:      0, // tax included in price
		Discount: 0,
		Total:    total,
	}
}

func (s *BookingOrchestratorService) invoiceDescription(item *models.ReservableItem) string {
	switch item.Type {
	case models.ItemTypeFlight:
		return fmt.Sprintf("%s - %s to %s", item.Airline, item.DepartureCity, item.ArrivalCity)
	case models.ItemTypeHotel:
		return fmt.Sprintf("%s - %s", item.Name, item.City)
	default:
		return fmt.Sprintf("%s %s - %s", item.Brand, item.Model, item.PickupLocation)
	}
}

func (s *BookingOrchestratorService) invoiceQuantity(item *models.ReservableItem, sel *models.SelectionState) int {
	switch item.Type {
	case models.ItemTypeHotel:
		if nights := s.pricing.Nights(sel.CheckIn, sel.CheckOut); nights > 0 {
			return nights
		}
		return 1
	case models.ItemTypeCar:
		if days := s.pricing.RentalDays(sel.PickupDate, sel.ReturnDate); days > 0 {
			return days
		}
		return 1
	default:
		return sel.Passengers
	}
}

// ============================================================================
// CONFIRM (Step 4, flights only)
// ============================================================================

func (s *BookingOrchestratorService) confirmSeats(ctx context.Context, in *SubmitBookingInput, bookingID string, log *logrus.Entry) {
	sel := &in.Selection

	if err := s.flights.ConfirmSeats(ctx, in.Item.ID, sel.OutboundSeats, bookingID, false); err != nil {
		warn := &models.ConfirmationWarning{FlightID: in.Item.ID, Seats: sel.OutboundSeats, Err: err}
		log.WithError(warn).Warn("Outbound seat confirmation failed, seats remain reserved")
	}
	if sel.EffectiveTripType(in.Item) == models.TripRoundTrip {
		if err := s.flights.ConfirmSeats(ctx, in.Item.ID, sel.ReturnSeats, bookingID, true); err != nil {
			warn := &models.ConfirmationWarning{FlightID: in.Item.ID, Seats: sel.ReturnSeats, Err: err}
			log.WithError(warn).Warn("Return seat confirmation failed, seats remain reserved")
		}
	}
}

// ============================================================================
// COMPENSATE
// ============================================================================

// compensate releases whatever this attempt reserved. Failures are
// logged, never re-surfaced: the caller already sees the original
// error, and orphaned holds are reclaimed by the inventory services'
// own expiry.
func (s *BookingOrchestratorService) compensate(
	ctx context.Context,
	in *SubmitBookingInput,
	correlationRef string,
	holds flightHolds,
	log *logrus.Entry,
) {
	sel := &in.Selection

	switch in.Item.Type {
	case models.ItemTypeFlight:
		s.releaseSeatsQuietly(ctx, in, correlationRef, holds, log)

	case models.ItemTypeHotel:
		rooms := sel.Rooms.TotalRooms()
		if rooms == 0 {
			rooms = 1
		}
		if err := s.hotels.ReleaseRooms(ctx, in.Item.ID, rooms, sel.Rooms); err != nil {
			log.WithError(err).Error("Failed to restock hotel rooms during compensation")
		}
		metrics.ObserveCompensation("hotel_rooms")

	case models.ItemTypeCar:
		if err := s.cars.RemoveBooking(ctx, in.Item.ID, correlationRef); err != nil {
			log.WithError(err).Error("Failed to remove car date block during compensation")
		}
		metrics.ObserveCompensation("car_dates")
	}
}

func (s *BookingOrchestratorService) releaseSeatsQuietly(
	ctx context.Context,
	in *SubmitBookingInput,
	correlationRef string,
	holds flightHolds,
	log *logrus.Entry,
) {
	sel := &in.Selection

	if holds.outbound {
		if err := s.flights.ReleaseSeats(ctx, in.Item.ID, sel.OutboundSeats, correlationRef, in.UserID, false); err != nil {
			log.WithError(err).Error("Failed to release outbound seat holds")
		}
		metrics.ObserveCompensation("flight_seats")
	}
	if holds.ret {
		if err := s.flights.ReleaseSeats(ctx, in.Item.ID, sel.ReturnSeats, correlationRef, in.UserID, true); err != nil {
			log.WithError(err).Error("Failed to release return seat holds")
		}
		metrics.ObserveCompensation("flight_seats")
	}
}

// ============================================================================
// AUDIT
// ============================================================================

func (s *BookingOrchestratorService) recordAudit(
	ctx context.Context,
	in *SubmitBookingInput,
	correlationRef string,
	state SagaState,
	failedAt SagaState,
	booking *models.Booking,
	total float64,
	sagaErr error,
	elapsed time.Duration,
) {
	if s.audit == nil {
		return
	}

	audit := &models.BookingAudit{
		CorrelationRef: correlationRef,
		UserID:         in.UserID,
		ItemType:       string(in.Item.Type),
		ItemID:         in.Item.ID,
		FinalState:     string(state),
		TotalAmount:    total,
		DurationMs:     elapsed.Milliseconds(),
	}
	if booking != nil {
		audit.BookingID = &booking.BookingID
	}
	if sagaErr != nil {
		msg := sagaErr.Error()
		audit.ErrorMessage = &msg
		step := string(failedAt)
		audit.FailedStep = &step
	}

	if err := s.audit.Record(ctx, audit); err != nil {
		s.logger.WithError(err).WithField("correlation_ref", correlationRef).
			Error("Failed to record booking audit")
	}
}
