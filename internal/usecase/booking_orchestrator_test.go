package usecase

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"booking-service/internal/domain/entity"
	"booking-service/pkg/idgen"
	"booking-service/pkg/logger"
	"booking-service/pkg/utils"
)

type orchestratorFixture struct {
	orchestrator *BookingOrchestrator
	store        *memoryReservations
	notifier     *recordingNotifier
	receipts     *recordingReceipts
}

func newOrchestratorFixture(delay time.Duration) *orchestratorFixture {
	store := newMemoryReservations()
	notifier := &recordingNotifier{}
	receipts := &recordingReceipts{}
	property := &entity.PropertySnapshot{Name: "Harbor View", Address: "1 Quay St", PricePerNight: 100}
	o := NewBookingOrchestrator(
		store,
		staticProperties{snapshot: property},
		notifier,
		receipts,
		utils.NewDateRangeParser(testNow),
		testFactory(),
		delay,
		testMetrics(),
		logger.NewNop(),
	)
	return &orchestratorFixture{orchestrator: o, store: store, notifier: notifier, receipts: receipts}
}

func validInput() ConfirmBookingInput {
	return ConfirmBookingInput{
		PropertyID:       "prop-1",
		Dates:            stay(2),
		Guests:           entity.GuestDetails{Rooms: 1, Adults: 2},
		PaymentConfirmed: true,
	}
}

func TestConfirmBooking_EndToEnd(t *testing.T) {
	t.Parallel()

	store := newMemoryReservations()
	factory := NewReservationFactory(idgen.NewPseudoRandom(3, 9), utils.NewShortDateFormatter(), utils.CurrencyFormatter{}, "EUR")
	o := NewBookingOrchestrator(store, staticProperties{snapshot: &entity.PropertySnapshot{Name: "Harbor View", PricePerNight: 100}},
		nil, nil, utils.NewDateRangeParser(testNow), factory, 0, testMetrics(), logger.NewNop())

	session := NewBookingSession("s-1")
	result := o.ConfirmBooking(context.Background(), session, validInput())

	if !result.Success || result.Outcome != OutcomeConfirmed || !result.Saved {
		t.Fatalf("expected confirmed result, got %#v", result)
	}
	if !regexp.MustCompile(`^[0-9A-Z]{6}$`).MatchString(result.ConfirmationCode) {
		t.Fatalf("unexpected confirmation code %q", result.ConfirmationCode)
	}
	saved, err := store.FindByID(context.Background(), result.Reservation.ID)
	if err != nil {
		t.Fatalf("expected reservation to be stored: %v", err)
	}
	if saved.Details.TotalPrice != "€224" {
		t.Fatalf("expected €224, got %q", saved.Details.TotalPrice)
	}
	if saved.Pricing.Subtotal != 200 || saved.Pricing.Taxes != 24 {
		t.Fatalf("unexpected pricing %#v", saved.Pricing)
	}
	if session.Submitting() {
		t.Fatal("expected submitting flag to be cleared")
	}
	if view := session.View(); !view.PaymentConfirmed || view.LastConfirmationCode != result.ConfirmationCode {
		t.Fatalf("unexpected session view %#v", view)
	}
}

func TestConfirmBooking_ValidationFailure(t *testing.T) {
	t.Parallel()

	fx := newOrchestratorFixture(0)
	session := NewBookingSession("s-1")
	result := fx.orchestrator.ConfirmBooking(context.Background(), session, ConfirmBookingInput{PropertyID: "prop-1"})

	if result.Success || result.Outcome != OutcomeValidationFailed {
		t.Fatalf("expected validation failure, got %#v", result)
	}
	if result.Error != "Please provide: Dates & Guests & Payment Method" {
		t.Fatalf("unexpected message %q", result.Error)
	}
	if fx.store.adds != 0 {
		t.Fatalf("expected no persistence, got %d writes", fx.store.adds)
	}
	if session.Submitting() {
		t.Fatal("expected submitting flag to be cleared")
	}
	if session.View().LastError != result.Error {
		t.Fatalf("expected session error to be set, got %q", session.View().LastError)
	}
	if len(fx.notifier.events) != 0 {
		t.Fatalf("expected no events, got %d", len(fx.notifier.events))
	}
}

func TestConfirmBooking_PersistenceFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	fx := newOrchestratorFixture(0)
	fx.store.addErr = errStoreDown
	session := NewBookingSession("s-1")
	override := 150.0
	session.SetPriceOverride(&override)

	input := validInput()
	input.GuestEmail = "guest@example.com"
	result := fx.orchestrator.ConfirmBooking(context.Background(), session, input)

	if !result.Success || result.Outcome != OutcomeConfirmedUnsaved || result.Saved {
		t.Fatalf("expected unsaved confirmation, got %#v", result)
	}
	if result.ConfirmationCode != "AB12CD" {
		t.Fatalf("unexpected code %q", result.ConfirmationCode)
	}
	view := session.View()
	if view.Submitting || !view.PaymentConfirmed || view.PriceOverride != nil {
		t.Fatalf("unexpected session state %#v", view)
	}
	if len(fx.notifier.events) != 0 || len(fx.receipts.sent) != 0 {
		t.Fatal("expected no event or receipt for an unsaved reservation")
	}
}

func TestConfirmBooking_UsesOverrideAndAltDates(t *testing.T) {
	t.Parallel()

	fx := newOrchestratorFixture(0)
	session := NewBookingSession("s-1")
	override := 80.0
	session.SetPriceOverride(&override)
	session.SetAltDateRange("12 - 15 Jun")

	input := validInput()
	input.Dates = entity.BookingDates{}
	input.GuestEmail = "guest@example.com"
	result := fx.orchestrator.ConfirmBooking(context.Background(), session, input)

	if result.Outcome != OutcomeConfirmed {
		t.Fatalf("expected confirmed, got %#v", result)
	}
	r := result.Reservation
	if r.Dates != "Jun 12 - Jun 15" {
		t.Fatalf("expected alternative dates to be used, got %q", r.Dates)
	}
	if r.Pricing.PricePerNight != 80 || r.Pricing.Total != 269 {
		t.Fatalf("expected override pricing, got %#v", r.Pricing)
	}
	view := session.View()
	if view.PriceOverride != nil || view.AltDateRange != "" {
		t.Fatalf("expected override and alt range to be cleared, got %#v", view)
	}
	if len(fx.notifier.events) != 1 || fx.notifier.events[0].Action != entity.ActionCreated {
		t.Fatalf("expected one created event, got %#v", fx.notifier.events)
	}
	if len(fx.receipts.sent) != 1 || fx.receipts.sent[0] != "guest@example.com" {
		t.Fatalf("expected receipt to guest, got %#v", fx.receipts.sent)
	}
}

func TestConfirmBooking_PropertyLookupFailure(t *testing.T) {
	t.Parallel()

	fx := newOrchestratorFixture(0)
	fx.orchestrator.properties = staticProperties{err: entity.ErrPropertyNotFound}
	session := NewBookingSession("s-1")

	result := fx.orchestrator.ConfirmBooking(context.Background(), session, validInput())
	if result.Success || result.Outcome != OutcomeFailed || result.Error != MessageSomethingWentWrong {
		t.Fatalf("expected failure, got %#v", result)
	}
	if session.Submitting() {
		t.Fatal("expected submitting flag to be cleared")
	}
}

func TestConfirmBooking_InlinePropertySkipsLookup(t *testing.T) {
	t.Parallel()

	fx := newOrchestratorFixture(0)
	fx.orchestrator.properties = nil
	input := validInput()
	input.Property = &entity.PropertySnapshot{Name: "Inline", PricePerNight: 50}

	result := fx.orchestrator.ConfirmBooking(context.Background(), NewBookingSession("s"), input)
	if result.Outcome != OutcomeConfirmed || result.Reservation.PropertyName != "Inline" {
		t.Fatalf("unexpected result %#v", result)
	}
}

func TestConfirmBooking_CatalogueSnapshotWinsOverInline(t *testing.T) {
	t.Parallel()

	fx := newOrchestratorFixture(0)
	input := validInput()
	input.Property = &entity.PropertySnapshot{Name: "Inline", PricePerNight: 0.01}

	result := fx.orchestrator.ConfirmBooking(context.Background(), NewBookingSession("s"), input)
	if result.Outcome != OutcomeConfirmed {
		t.Fatalf("expected confirmed result, got %#v", result)
	}
	if result.Reservation.PropertyName != "Harbor View" {
		t.Fatalf("expected catalogue property, got %q", result.Reservation.PropertyName)
	}
	if result.Reservation.Pricing.Subtotal != 200 {
		t.Fatalf("expected catalogue price subtotal 200, got %v", result.Reservation.Pricing.Subtotal)
	}
}

func TestConfirmBooking_CancelledDuringDelay(t *testing.T) {
	t.Parallel()

	fx := newOrchestratorFixture(time.Hour)
	session := NewBookingSession("s-1")

	var mu sync.Mutex
	var transitions []bool
	session.OnSubmittingChange(func(v bool) {
		mu.Lock()
		transitions = append(transitions, v)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan ConfirmationResult, 1)
	go func() { done <- fx.orchestrator.ConfirmBooking(ctx, session, validInput()) }()

	deadline := time.After(5 * time.Second)
	for !session.Submitting() {
		select {
		case <-deadline:
			t.Fatal("confirmation never started")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	cancel()

	result := <-done
	if result.Success || result.Outcome != OutcomeCancelled {
		t.Fatalf("expected cancelled result, got %#v", result)
	}
	if session.Submitting() {
		t.Fatal("expected submitting flag to be cleared after cancellation")
	}
	if fx.store.adds != 0 {
		t.Fatal("expected nothing persisted")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(transitions) != 2 || !transitions[0] || transitions[1] {
		t.Fatalf("expected [true false], got %v", transitions)
	}
}

func TestConfirmBooking_RejectsDoubleSubmit(t *testing.T) {
	t.Parallel()

	fx := newOrchestratorFixture(time.Hour)
	session := NewBookingSession("s-1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		fx.orchestrator.ConfirmBooking(ctx, session, validInput())
		close(done)
	}()
	for !session.Submitting() {
		time.Sleep(time.Millisecond)
	}

	second := fx.orchestrator.ConfirmBooking(context.Background(), session, validInput())
	if second.Success || second.Outcome != OutcomeInProgress {
		t.Fatalf("expected in-progress rejection, got %#v", second)
	}
	if !session.Submitting() {
		t.Fatal("second call must not clear the first call's flag")
	}

	cancel()
	<-done
	if session.Submitting() {
		t.Fatal("expected flag cleared once the first call settles")
	}
}

func TestSessionRegistry(t *testing.T) {
	t.Parallel()

	reg := NewSessionRegistry(0)
	a := reg.Get("a")
	if reg.Get("a") != a {
		t.Fatal("expected the same session for the same id")
	}
	reg.Delete("a")
	if reg.Get("a") == a {
		t.Fatal("expected a fresh session after delete")
	}
}

func TestSessionRegistry_LookupDoesNotCreate(t *testing.T) {
	t.Parallel()

	reg := NewSessionRegistry(time.Minute)
	for i := 0; i < 100; i++ {
		if _, ok := reg.Lookup(fmt.Sprintf("one-shot-%d", i)); ok {
			t.Fatal("expected unknown session to be missing")
		}
	}
	if reg.Len() != 0 {
		t.Fatalf("expected no sessions, got %d", reg.Len())
	}
	a := reg.Get("a")
	if got, ok := reg.Lookup("a"); !ok || got != a {
		t.Fatal("expected lookup to return the existing session")
	}
}

func TestSessionRegistry_SweepDropsIdleSessions(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	reg := NewSessionRegistry(30 * time.Minute).WithClock(func() time.Time { return now })

	reg.Get("idle")
	busy := reg.Get("busy")
	if !busy.beginSubmit() {
		t.Fatal("expected submit to start")
	}
	now = now.Add(20 * time.Minute)
	reg.Get("recent")
	now = now.Add(15 * time.Minute)

	if removed := reg.Sweep(); removed != 1 {
		t.Fatalf("expected 1 session removed, got %d", removed)
	}
	if _, ok := reg.Lookup("idle"); ok {
		t.Fatal("expected idle session to be evicted")
	}
	if _, ok := reg.Lookup("busy"); !ok {
		t.Fatal("expected in-flight session to survive the sweep")
	}
	if _, ok := reg.Lookup("recent"); !ok {
		t.Fatal("expected recent session to survive the sweep")
	}
}

func TestSessionRegistry_ZeroTTLNeverSweeps(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	reg := NewSessionRegistry(0).WithClock(func() time.Time { return now })
	reg.Get("a")
	now = now.Add(24 * time.Hour)
	if removed := reg.Sweep(); removed != 0 || reg.Len() != 1 {
		t.Fatalf("expected no eviction, removed %d left %d", removed, reg.Len())
	}
}
