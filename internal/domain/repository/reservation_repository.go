package repository

import (
	"context"

	"booking-service/internal/domain/entity"
)

// ReservationRepository defines the interface for reservation storage operations
type ReservationRepository interface {
	AddBooking(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id string) (*entity.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status entity.ReservationStatus) error
	ListByProperty(ctx context.Context, propertyID string, limit int) ([]*entity.Reservation, error)
}
