package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// BookingSession is the per-guest UI state around a confirmation: the submitting flag,
// a pending price override and an alternative date-range text.
type BookingSession struct {
	ID string

	submitting atomic.Bool

	mu                   sync.Mutex
	priceOverride        *float64
	altDateRange         string
	paymentConfirmed     bool
	lastConfirmationCode string
	lastError            string
	onSubmitting         func(bool)
}

// SessionView is the JSON shape of a session.
type SessionView struct {
	ID                   string   `json:"id"`
	Submitting           bool     `json:"submitting"`
	PriceOverride        *float64 `json:"priceOverride,omitempty"`
	AltDateRange         string   `json:"altDateRange,omitempty"`
	PaymentConfirmed     bool     `json:"paymentConfirmed"`
	LastConfirmationCode string   `json:"lastConfirmationCode,omitempty"`
	LastError            string   `json:"lastError,omitempty"`
}

// NewBookingSession creates an idle session.
func NewBookingSession(id string) *BookingSession {
	return &BookingSession{ID: id}
}

// OnSubmittingChange registers fn to observe the submitting flag. fn must not block.
func (s *BookingSession) OnSubmittingChange(fn func(bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSubmitting = fn
}

// Submitting reports whether a confirmation is in flight.
func (s *BookingSession) Submitting() bool {
	return s.submitting.Load()
}

// SetPriceOverride replaces the nightly price for the next confirmation. nil removes it.
func (s *BookingSession) SetPriceOverride(price *float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if price == nil {
		s.priceOverride = nil
		return
	}
	p := *price
	s.priceOverride = &p
}

// SetAltDateRange stores free-text dates that take precedence over the structured dates.
func (s *BookingSession) SetAltDateRange(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.altDateRange = text
}

// View returns a snapshot of the session.
func (s *BookingSession) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := SessionView{
		ID:                   s.ID,
		Submitting:           s.submitting.Load(),
		AltDateRange:         s.altDateRange,
		PaymentConfirmed:     s.paymentConfirmed,
		LastConfirmationCode: s.lastConfirmationCode,
		LastError:            s.lastError,
	}
	if s.priceOverride != nil {
		p := *s.priceOverride
		view.PriceOverride = &p
	}
	return view
}

func (s *BookingSession) beginSubmit() bool {
	if !s.submitting.CompareAndSwap(false, true) {
		return false
	}
	s.notifySubmitting(true)
	return true
}

func (s *BookingSession) endSubmit() {
	s.submitting.Store(false)
	s.notifySubmitting(false)
}

func (s *BookingSession) notifySubmitting(v bool) {
	s.mu.Lock()
	fn := s.onSubmitting
	s.mu.Unlock()
	if fn != nil {
		fn(v)
	}
}

func (s *BookingSession) pending() (*float64, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.priceOverride, s.altDateRange
}

func (s *BookingSession) fail(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = message
}

// complete clears the pending override and date range and marks the payment confirmed.
func (s *BookingSession) complete(confirmationCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.priceOverride = nil
	s.altDateRange = ""
	s.paymentConfirmed = true
	s.lastConfirmationCode = confirmationCode
	s.lastError = ""
}

type sessionEntry struct {
	session  *BookingSession
	lastUsed time.Time
}

// SessionRegistry keeps one BookingSession per session id. Sessions idle for longer than
// the ttl are dropped by Sweep; a zero ttl keeps them until Delete.
type SessionRegistry struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*sessionEntry
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry(ttl time.Duration) *SessionRegistry {
	return &SessionRegistry{ttl: ttl, now: time.Now, sessions: make(map[string]*sessionEntry)}
}

// WithClock replaces the clock used for idle tracking.
func (r *SessionRegistry) WithClock(now func() time.Time) *SessionRegistry {
	r.now = now
	return r
}

// Get returns the session for id, creating it on first use.
func (r *SessionRegistry) Get(id string) *BookingSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[id]; ok {
		e.lastUsed = r.now()
		return e.session
	}
	s := NewBookingSession(id)
	r.sessions[id] = &sessionEntry{session: s, lastUsed: r.now()}
	return s
}

// Lookup returns an existing session without creating one.
func (r *SessionRegistry) Lookup(id string) (*BookingSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastUsed = r.now()
	return e.session, true
}

// Delete forgets a session.
func (r *SessionRegistry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len reports how many sessions are held.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops idle sessions and returns how many were removed. A session with a
// confirmation in flight is kept.
func (r *SessionRegistry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, e := range r.sessions {
		if e.lastUsed.Before(cutoff) && !e.session.Submitting() {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is cancelled.
func (r *SessionRegistry) Run(ctx context.Context, interval time.Duration) {
	if r.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
