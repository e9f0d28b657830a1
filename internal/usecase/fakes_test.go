package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"booking-service/internal/domain/entity"
	"booking-service/pkg/metrics"
	"booking-service/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
)

type fixedIDs struct {
	code string
	pin  int
	n    int
}

func (f *fixedIDs) BookingID() string {
	f.n++
	return fmt.Sprintf("booking-%d", f.n)
}

func (f *fixedIDs) UpperAlphaNum(n int) string {
	if len(f.code) >= n {
		return f.code[:n]
	}
	return f.code + strings.Repeat("X", n-len(f.code))
}

func (f *fixedIDs) IntBetween(min, max int) int {
	if f.pin < min || f.pin > max {
		return min
	}
	return f.pin
}

type memoryReservations struct {
	mu        sync.Mutex
	items     map[string]*entity.Reservation
	addErr    error
	updateErr error
	findErr   error
	adds      int
	updates   int
}

func newMemoryReservations() *memoryReservations {
	return &memoryReservations{items: make(map[string]*entity.Reservation)}
}

func (m *memoryReservations) AddBooking(_ context.Context, r *entity.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adds++
	if m.addErr != nil {
		return m.addErr
	}
	copied := *r
	m.items[r.ID] = &copied
	return nil
}

func (m *memoryReservations) FindByID(_ context.Context, id string) (*entity.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	r, ok := m.items[id]
	if !ok {
		return nil, entity.ErrReservationNotFound
	}
	copied := *r
	return &copied, nil
}

func (m *memoryReservations) UpdateStatus(_ context.Context, id string, status entity.ReservationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	if m.updateErr != nil {
		return m.updateErr
	}
	r, ok := m.items[id]
	if !ok {
		return entity.ErrReservationNotFound
	}
	r.Status = status
	return nil
}

func (m *memoryReservations) ListByProperty(_ context.Context, propertyID string, _ int) ([]*entity.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Reservation
	for _, r := range m.items {
		if r.PropertyID == propertyID {
			out = append(out, r)
		}
	}
	return out, nil
}

type staticProperties struct {
	snapshot *entity.PropertySnapshot
	err      error
}

func (s staticProperties) GetSnapshot(context.Context, string) (*entity.PropertySnapshot, error) {
	return s.snapshot, s.err
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []entity.ReservationChangedEvent
	err    error
}

func (r *recordingNotifier) NotifyReservationChanged(_ context.Context, e entity.ReservationChangedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

type recordingReceipts struct {
	sent []string
}

func (r *recordingReceipts) SendReceipt(_ context.Context, res *entity.Reservation) error {
	r.sent = append(r.sent, res.GuestEmail)
	return nil
}

var errStoreDown = errors.New("store unavailable")

func testMetrics() *metrics.Metrics {
	return metrics.NewMetrics("test", prometheus.NewRegistry())
}

func testFactory() *ReservationFactory {
	f := NewReservationFactory(&fixedIDs{code: "AB12CD", pin: 4321}, utils.NewShortDateFormatter(), utils.CurrencyFormatter{}, "EUR")
	f.now = func() time.Time { return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

func testNow() time.Time {
	return time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
}

func stay(nights int) entity.BookingDates {
	in := time.Date(2026, time.June, 12, 0, 0, 0, 0, time.UTC)
	return entity.NewBookingDates(in, in.AddDate(0, 0, nights))
}
