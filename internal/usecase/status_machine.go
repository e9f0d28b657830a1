package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"booking-service/internal/domain/entity"
	"booking-service/internal/domain/repository"
	"booking-service/pkg/logger"
	"booking-service/pkg/metrics"
)

// TransitionPolicy decides whether an operator may move a reservation from one status to another.
type TransitionPolicy interface {
	Allow(from, to entity.AdminStatus) error
}

// PermissivePolicy lets operators apply any known status.
type PermissivePolicy struct{}

func (PermissivePolicy) Allow(_, _ entity.AdminStatus) error { return nil }

// strictTransitions is PENDING -> CONFIRMED -> COMPLETED, with CANCELLED reachable from any
// non-terminal state. AdminStatusUnknown covers statuses the operator set cannot express.
var strictTransitions = map[entity.AdminStatus][]entity.AdminStatus{
	entity.AdminStatusPending:   {entity.AdminStatusConfirmed, entity.AdminStatusCancelled},
	entity.AdminStatusConfirmed: {entity.AdminStatusCompleted, entity.AdminStatusCancelled},
	entity.AdminStatusUnknown:   {entity.AdminStatusCompleted, entity.AdminStatusCancelled},
	entity.AdminStatusCompleted: {},
	entity.AdminStatusCancelled: {},
}

// StrictPolicy rejects transitions outside the reservation lifecycle.
type StrictPolicy struct{}

func (StrictPolicy) Allow(from, to entity.AdminStatus) error {
	for _, allowed := range strictTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", entity.ErrIllegalTransition, displayAdminStatus(from), to)
}

func displayAdminStatus(s entity.AdminStatus) string {
	if s == entity.AdminStatusUnknown {
		return "UNKNOWN"
	}
	return string(s)
}

// StatusUpdateResult is the operator-facing result of a status update.
type StatusUpdateResult struct {
	Success bool                     `json:"success"`
	Changed bool                     `json:"changed"`
	Status  entity.ReservationStatus `json:"status,omitempty"`
	Error   string                   `json:"error,omitempty"`
	Err     error                    `json:"-"`
}

// ReservationStatusService applies operator status changes to stored reservations.
type ReservationStatusService struct {
	reservations repository.ReservationRepository
	notifier     repository.ReservationNotifier
	policy       TransitionPolicy
	metrics      *metrics.Metrics
	logger       logger.Logger
	now          func() time.Time
}

// NewReservationStatusService creates the service. A nil policy is permissive.
func NewReservationStatusService(
	reservations repository.ReservationRepository,
	notifier repository.ReservationNotifier,
	policy TransitionPolicy,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *ReservationStatusService {
	if policy == nil {
		policy = PermissivePolicy{}
	}
	return &ReservationStatusService{
		reservations: reservations,
		notifier:     notifier,
		policy:       policy,
		metrics:      metrics,
		logger:       logger,
		now:          time.Now,
	}
}

// Transition moves reservationID to target. Applying the current status again succeeds without
// a write. changed reports whether a write happened. Store failures are returned as
// *entity.StatusTransitionError and are not retried.
func (s *ReservationStatusService) Transition(ctx context.Context, reservationID string, target entity.AdminStatus) (changed bool, err error) {
	targetStatus, ok := target.ReservationStatus()
	if !ok {
		return false, fmt.Errorf("%w: %q", entity.ErrInvalidStatus, target)
	}

	reservation, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return false, &entity.StatusTransitionError{ReservationID: reservationID, Target: target, Err: err}
	}

	previous := reservation.Status
	if previous == targetStatus {
		s.notify(ctx, reservation, previous, targetStatus, false)
		return false, nil
	}

	current, _ := previous.AdminStatus()
	if err := s.policy.Allow(current, target); err != nil {
		return false, err
	}

	if err := s.reservations.UpdateStatus(ctx, reservationID, targetStatus); err != nil {
		return false, &entity.StatusTransitionError{ReservationID: reservationID, Target: target, Err: err}
	}

	s.logger.Info("Reservation status updated",
		"reservationID", reservationID,
		"from", previous,
		"to", targetStatus)

	s.notify(ctx, reservation, previous, targetStatus, true)
	return true, nil
}

// UpdateReservationStatus is the operator entry point. It never returns an error; failures are
// logged and reported in the result with a readable reason.
func (s *ReservationStatusService) UpdateReservationStatus(ctx context.Context, reservationID, status string) StatusUpdateResult {
	target, ok := entity.NormalizeAdminStatus(status)
	if !ok {
		s.metrics.StatusTransitions.WithLabelValues("invalid", "rejected").Inc()
		return StatusUpdateResult{
			Error: fmt.Sprintf("%q is not a valid reservation status", status),
			Err:   fmt.Errorf("%w: %q", entity.ErrInvalidStatus, status),
		}
	}

	changed, err := s.Transition(ctx, reservationID, target)
	if err != nil {
		s.logger.Error("Failed to update reservation status",
			"reservationID", reservationID,
			"status", target,
			"error", err)
		s.metrics.StatusTransitions.WithLabelValues(string(target), "failed").Inc()
		return StatusUpdateResult{Error: statusErrorMessage(err), Err: err}
	}

	s.metrics.StatusTransitions.WithLabelValues(string(target), "ok").Inc()
	guest, _ := target.ReservationStatus()
	return StatusUpdateResult{Success: true, Changed: changed, Status: guest}
}

func statusErrorMessage(err error) string {
	switch {
	case errors.Is(err, entity.ErrReservationNotFound):
		return "Reservation not found"
	case errors.Is(err, entity.ErrIllegalTransition):
		return err.Error()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "The request timed out. Please try again."
	default:
		return "Failed to update reservation status. Please try again."
	}
}

func (s *ReservationStatusService) notify(ctx context.Context, reservation *entity.Reservation, previous, status entity.ReservationStatus, changed bool) {
	if s.notifier == nil {
		return
	}
	action := entity.ActionStatusChanged
	if !changed {
		action = entity.ActionUnchanged
	}
	event := entity.ReservationChangedEvent{
		ReservationID:  reservation.ID,
		PropertyID:     reservation.PropertyID,
		Action:         action,
		PreviousStatus: previous,
		Status:         status,
		Changed:        changed,
		OccurredAt:     s.now().UTC(),
	}
	if err := s.notifier.NotifyReservationChanged(ctx, event); err != nil {
		s.logger.Error("Failed to publish reservation change", "reservationID", reservation.ID, "error", err)
		s.metrics.NotifyErrors.WithLabelValues("status_changed").Inc()
	}
}
