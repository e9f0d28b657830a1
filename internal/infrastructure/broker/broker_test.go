package broker

import (
	"testing"
	"time"

	"booking-service/internal/domain/entity"
	"booking-service/pkg/logger"

	"github.com/segmentio/kafka-go"
)

func TestEncodeDecodeEvent(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, time.June, 12, 10, 0, 0, 0, time.UTC)
	event := entity.ReservationChangedEvent{
		ReservationID:  "r1",
		PropertyID:     "prop-1",
		Action:         entity.ActionStatusChanged,
		PreviousStatus: entity.StatusPending,
		Status:         entity.StatusConfirmed,
		Changed:        true,
		OccurredAt:     at,
	}

	msg, err := encodeEvent(event)
	if err != nil {
		t.Fatalf("encodeEvent() error = %v", err)
	}
	if string(msg.Key) != "r1" {
		t.Fatalf("expected key r1, got %q", msg.Key)
	}
	if len(msg.Headers) != 2 || string(msg.Headers[0].Value) != "status_changed" {
		t.Fatalf("unexpected headers %#v", msg.Headers)
	}

	decoded, err := decodeEvent(msg)
	if err != nil {
		t.Fatalf("decodeEvent() error = %v", err)
	}
	if decoded.Status != entity.StatusConfirmed || !decoded.OccurredAt.Equal(at) {
		t.Fatalf("unexpected decoded event %#v", decoded)
	}
}

func TestDecodeEvent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		msg     kafka.Message
		wantID  string
		wantErr bool
	}{
		{name: "key fallback", msg: kafka.Message{Key: []byte("r9"), Value: []byte(`{"action":"created"}`)}, wantID: "r9"},
		{name: "no id", msg: kafka.Message{Value: []byte(`{"action":"created"}`)}, wantErr: true},
		{name: "not json", msg: kafka.Message{Value: []byte("nope")}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			event, err := decodeEvent(tc.msg)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if event.ReservationID != tc.wantID {
				t.Fatalf("expected %q, got %q", tc.wantID, event.ReservationID)
			}
		})
	}
}

func TestNewReservationEventConsumerReaderConfig(t *testing.T) {
	t.Parallel()

	c := NewReservationEventConsumer([]string{"127.0.0.1:9092"}, "booking-service-pod-1", "reservations.changed", nil, logger.NewNop())
	defer c.reader.Close()

	cfg := c.reader.Config()
	if cfg.GroupID != "booking-service-pod-1" {
		t.Fatalf("expected instance group id, got %q", cfg.GroupID)
	}
	if cfg.StartOffset != kafka.LastOffset {
		t.Fatalf("expected new groups to start at the last offset, got %d", cfg.StartOffset)
	}
}
