package broker

import (
	"context"
	"encoding/json"
	"time"

	"booking-service/internal/domain/entity"

	"github.com/segmentio/kafka-go"
)

// KafkaNotifier publishes reservation change events keyed by reservation id.
type KafkaNotifier struct {
	writer *kafka.Writer
}

func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			BatchTimeout:           50 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

func (n *KafkaNotifier) NotifyReservationChanged(ctx context.Context, event entity.ReservationChangedEvent) error {
	msg, err := encodeEvent(event)
	if err != nil {
		return err
	}
	return n.writer.WriteMessages(ctx, msg)
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

func encodeEvent(event entity.ReservationChangedEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(event.ReservationID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "action", Value: []byte(event.Action)},
			{Key: "propertyId", Value: []byte(event.PropertyID)},
		},
		Time: event.OccurredAt,
	}, nil
}
