package broker

import (
	"context"
	"encoding/json"
	"errors"

	"booking-service/internal/domain/entity"
	"booking-service/internal/domain/repository"
	"booking-service/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// ReservationEventConsumer relays reservation change events from Kafka to a local notifier,
// normally the websocket hub, so every instance refreshes its connected admin views. Each
// instance must use its own groupID; a shared group splits partitions between instances.
type ReservationEventConsumer struct {
	reader *kafka.Reader
	sink   repository.ReservationNotifier
	logger logger.Logger
}

func NewReservationEventConsumer(brokers []string, groupID, topic string, sink repository.ReservationNotifier, logger logger.Logger) *ReservationEventConsumer {
	return &ReservationEventConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:     brokers,
			GroupID:     groupID,
			Topic:       topic,
			StartOffset: kafka.LastOffset,
		}),
		sink:   sink,
		logger: logger,
	}
}

// Consume blocks until ctx is cancelled.
func (c *ReservationEventConsumer) Consume(ctx context.Context) error {
	defer c.reader.Close()
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Warn("kafka read error", "error", err)
			continue
		}
		event, err := decodeEvent(m)
		if err != nil {
			c.logger.Warn("kafka message dropped", "topic", m.Topic, "offset", m.Offset, "error", err)
			continue
		}
		c.logger.Debug("kafka message consumed",
			"topic", m.Topic,
			"partition", m.Partition,
			"offset", m.Offset,
			"reservationID", event.ReservationID,
			"action", event.Action)
		if err := c.sink.NotifyReservationChanged(ctx, event); err != nil {
			c.logger.Warn("reservation event relay failed", "reservationID", event.ReservationID, "error", err)
		}
	}
}

func decodeEvent(m kafka.Message) (entity.ReservationChangedEvent, error) {
	var event entity.ReservationChangedEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		return event, err
	}
	if event.ReservationID == "" {
		event.ReservationID = string(m.Key)
	}
	if event.ReservationID == "" {
		return event, errors.New("event has no reservation id")
	}
	return event, nil
}
