package repository

import (
	"context"

	"booking-service/internal/domain/entity"
)

// ReservationNotifier receives "reservation list changed" events for admin read views.
type ReservationNotifier interface {
	NotifyReservationChanged(ctx context.Context, event entity.ReservationChangedEvent) error
}

// ReceiptSender delivers the confirmation receipt to a guest.
type ReceiptSender interface {
	SendReceipt(ctx context.Context, reservation *entity.Reservation) error
}
