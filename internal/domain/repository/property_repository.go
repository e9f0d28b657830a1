package repository

import (
	"context"

	"booking-service/internal/domain/entity"
)

// PropertyRepository defines the interface for looking up hotel listings
type PropertyRepository interface {
	GetSnapshot(ctx context.Context, propertyID string) (*entity.PropertySnapshot, error)
}
