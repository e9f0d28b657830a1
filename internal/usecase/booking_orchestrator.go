package usecase

import (
	"context"
	"errors"
	"time"

	"booking-service/internal/domain/entity"
	"booking-service/internal/domain/repository"
	"booking-service/pkg/logger"
	"booking-service/pkg/metrics"
)

// MessageSomethingWentWrong is returned for failures that are not the guest's to fix.
const MessageSomethingWentWrong = "Something went wrong while confirming your booking. Please try again."

// ConfirmationOutcome distinguishes the ways a confirmation can end.
type ConfirmationOutcome string

const (
	OutcomeConfirmed        ConfirmationOutcome = "confirmed"
	OutcomeConfirmedUnsaved ConfirmationOutcome = "confirmed_unsaved"
	OutcomeValidationFailed ConfirmationOutcome = "validation_failed"
	OutcomeInProgress       ConfirmationOutcome = "in_progress"
	OutcomeCancelled        ConfirmationOutcome = "cancelled"
	OutcomeFailed           ConfirmationOutcome = "failed"
)

// ConfirmBookingInput is everything the guest selected.
type ConfirmBookingInput struct {
	PropertyID       string                   `json:"propertyId"`
	Property         *entity.PropertySnapshot `json:"property,omitempty"`
	Dates            entity.BookingDates      `json:"dates"`
	Guests           entity.GuestDetails      `json:"guests"`
	PaymentConfirmed bool                     `json:"paymentConfirmed"`
	GuestEmail       string                   `json:"guestEmail,omitempty"`
}

// ConfirmationResult reports how a confirmation ended. Success is true for both confirmed
// outcomes; Saved is false when the reservation may not have been written.
type ConfirmationResult struct {
	Success          bool                `json:"success"`
	Outcome          ConfirmationOutcome `json:"outcome"`
	ConfirmationCode string              `json:"confirmationCode,omitempty"`
	Error            string              `json:"error,omitempty"`
	Missing          []string            `json:"missing,omitempty"`
	Saved            bool                `json:"saved"`
	Reservation      *entity.Reservation `json:"reservation,omitempty"`
}

// BookingOrchestrator validates, prices, creates and stores reservations.
type BookingOrchestrator struct {
	reservations repository.ReservationRepository
	properties   repository.PropertyRepository
	notifier     repository.ReservationNotifier
	receipts     repository.ReceiptSender
	parser       DateRangeParser
	pricing      PricingCalculator
	factory      *ReservationFactory
	delay        time.Duration
	metrics      *metrics.Metrics
	logger       logger.Logger
}

// NewBookingOrchestrator creates a new booking orchestrator. properties, notifier and
// receipts may be nil.
func NewBookingOrchestrator(
	reservations repository.ReservationRepository,
	properties repository.PropertyRepository,
	notifier repository.ReservationNotifier,
	receipts repository.ReceiptSender,
	parser DateRangeParser,
	factory *ReservationFactory,
	delay time.Duration,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *BookingOrchestrator {
	return &BookingOrchestrator{
		reservations: reservations,
		properties:   properties,
		notifier:     notifier,
		receipts:     receipts,
		parser:       parser,
		pricing:      NewPricingCalculator(),
		factory:      factory,
		delay:        delay,
		metrics:      metrics,
		logger:       logger,
	}
}

// ConfirmBooking runs one confirmation for session. The session's submitting flag is set for
// the whole call and cleared on every return path, including cancellation of ctx.
func (o *BookingOrchestrator) ConfirmBooking(ctx context.Context, session *BookingSession, input ConfirmBookingInput) ConfirmationResult {
	if session == nil {
		session = NewBookingSession("")
	}
	if !session.beginSubmit() {
		return ConfirmationResult{Outcome: OutcomeInProgress, Error: entity.ErrSubmissionInProgress.Error()}
	}
	defer session.endSubmit()

	start := time.Now()
	result := o.confirm(ctx, session, input)
	o.metrics.ConfirmationTime.Observe(time.Since(start).Seconds())
	o.metrics.BookingsConfirmed.WithLabelValues(string(result.Outcome)).Inc()
	return result
}

func (o *BookingOrchestrator) confirm(ctx context.Context, session *BookingSession, input ConfirmBookingInput) ConfirmationResult {
	if err := o.wait(ctx); err != nil {
		o.logger.Warn("Booking confirmation abandoned", "sessionID", session.ID, "error", err)
		session.fail(MessageSomethingWentWrong)
		return ConfirmationResult{Outcome: OutcomeCancelled, Error: MessageSomethingWentWrong}
	}

	override, altRange := session.pending()
	dates := input.Dates
	if altRange != "" {
		if parsed, ok := o.parser.Parse(altRange); ok {
			dates = parsed
		} else {
			o.logger.Warn("Could not determine dates from alternative range", "sessionID", session.ID, "range", altRange)
		}
	}

	if missing := Validate(dates, input.Guests, input.PaymentConfirmed); len(missing) > 0 {
		verr := &entity.ValidationError{Missing: missing}
		for _, field := range missing {
			o.metrics.ValidationFailures.WithLabelValues(field).Inc()
		}
		o.logger.Info("Booking validation failed", "sessionID", session.ID, "missing", missing)
		session.fail(verr.Error())
		return ConfirmationResult{Outcome: OutcomeValidationFailed, Error: verr.Error(), Missing: missing}
	}

	property, err := o.resolveProperty(ctx, input)
	if err != nil {
		o.logger.Error("Failed to load property", "propertyID", input.PropertyID, "error", err)
		session.fail(MessageSomethingWentWrong)
		return ConfirmationResult{Outcome: OutcomeFailed, Error: MessageSomethingWentWrong}
	}

	pricing := o.pricing.Price(property.PricePerNight, override, dates.Nights(), input.Guests.Rooms)
	reservation := o.factory.Create(dates, input.Guests, pricing, *property, input.PropertyID)
	reservation.GuestEmail = input.GuestEmail

	saved := true
	if err := o.reservations.AddBooking(ctx, reservation); err != nil {
		// Not fatal: the guest still sees the confirmation, flagged as unsaved.
		perr := &entity.PersistenceError{ReservationID: reservation.ID, Err: err}
		o.logger.Error("Failed to persist reservation",
			"reservationID", reservation.ID,
			"confirmationCode", reservation.Details.ConfirmationNumber,
			"error", perr)
		o.metrics.PersistenceFailures.Inc()
		saved = false
	}

	session.complete(reservation.Details.ConfirmationNumber)

	if !saved {
		return ConfirmationResult{
			Success:          true,
			Outcome:          OutcomeConfirmedUnsaved,
			ConfirmationCode: reservation.Details.ConfirmationNumber,
			Saved:            false,
			Reservation:      reservation,
		}
	}

	o.logger.Info("Booking confirmed",
		"reservationID", reservation.ID,
		"propertyID", reservation.PropertyID,
		"confirmationCode", reservation.Details.ConfirmationNumber,
		"total", pricing.Total)

	o.notifyCreated(ctx, reservation)
	o.sendReceipt(ctx, reservation)

	return ConfirmationResult{
		Success:          true,
		Outcome:          OutcomeConfirmed,
		ConfirmationCode: reservation.Details.ConfirmationNumber,
		Saved:            true,
		Reservation:      reservation,
	}
}

// wait is the simulated processing latency.
func (o *BookingOrchestrator) wait(ctx context.Context) error {
	if o.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(o.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// resolveProperty loads the listing from the catalogue when one is configured; the request's
// inline snapshot is only used by deployments without a catalogue.
func (o *BookingOrchestrator) resolveProperty(ctx context.Context, input ConfirmBookingInput) (*entity.PropertySnapshot, error) {
	if o.properties == nil {
		if input.Property == nil {
			return nil, entity.ErrPropertyNotFound
		}
		return input.Property, nil
	}
	if input.PropertyID == "" {
		return nil, entity.ErrPropertyNotFound
	}
	property, err := o.properties.GetSnapshot(ctx, input.PropertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, entity.ErrPropertyNotFound
	}
	return property, nil
}

func (o *BookingOrchestrator) notifyCreated(ctx context.Context, reservation *entity.Reservation) {
	if o.notifier == nil {
		return
	}
	event := entity.ReservationChangedEvent{
		ReservationID: reservation.ID,
		PropertyID:    reservation.PropertyID,
		Action:        entity.ActionCreated,
		Status:        reservation.Status,
		Changed:       true,
		OccurredAt:    reservation.CreatedAt,
	}
	if err := o.notifier.NotifyReservationChanged(ctx, event); err != nil {
		o.logger.Error("Failed to publish reservation change", "reservationID", reservation.ID, "error", err)
		o.metrics.NotifyErrors.WithLabelValues("reservation_created").Inc()
	}
}

func (o *BookingOrchestrator) sendReceipt(ctx context.Context, reservation *entity.Reservation) {
	if o.receipts == nil || reservation.GuestEmail == "" {
		return
	}
	if err := o.receipts.SendReceipt(ctx, reservation); err != nil && !errors.Is(err, context.Canceled) {
		o.logger.Error("Failed to send receipt", "reservationID", reservation.ID, "error", err)
		o.metrics.NotifyErrors.WithLabelValues("receipt").Inc()
	}
}
