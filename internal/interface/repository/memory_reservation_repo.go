package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"booking-service/internal/domain/entity"
	"booking-service/internal/domain/repository"
)

// MemoryReservationRepository keeps reservations in process. Used when MongoDB is not configured.
type MemoryReservationRepository struct {
	mu    sync.RWMutex
	items map[string]entity.Reservation
}

// NewMemoryReservationRepository creates an empty in-memory repository
func NewMemoryReservationRepository() repository.ReservationRepository {
	return &MemoryReservationRepository{items: make(map[string]entity.Reservation)}
}

func (r *MemoryReservationRepository) AddBooking(_ context.Context, reservation *entity.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[reservation.ID] = *reservation
	return nil
}

func (r *MemoryReservationRepository) FindByID(_ context.Context, id string) (*entity.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reservation, ok := r.items[id]
	if !ok {
		return nil, entity.ErrReservationNotFound
	}
	return &reservation, nil
}

func (r *MemoryReservationRepository) UpdateStatus(_ context.Context, id string, status entity.ReservationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	reservation, ok := r.items[id]
	if !ok {
		return entity.ErrReservationNotFound
	}
	reservation.Status = status
	reservation.UpdatedAt = time.Now().UTC()
	r.items[id] = reservation
	return nil
}

func (r *MemoryReservationRepository) ListByProperty(_ context.Context, propertyID string, limit int) ([]*entity.Reservation, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*entity.Reservation{}
	for _, reservation := range r.items {
		if reservation.PropertyID == propertyID {
			copied := reservation
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
