package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "BOOKING_PROCESSING_DELAY_MS", "BOOKING_CURRENCY", "KAFKA_BROKERS", "STRICT_STATUS_TRANSITIONS", "KAFKA_TOPIC"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.ProcessingDelay != 1500*time.Millisecond {
		t.Fatalf("expected 1.5s delay, got %s", cfg.ProcessingDelay)
	}
	if cfg.Currency != "EUR" || cfg.KafkaTopic != "reservations.changed" {
		t.Fatalf("unexpected defaults %#v", cfg)
	}
	if len(cfg.KafkaBrokers) != 0 || cfg.StrictStatusTransitions {
		t.Fatalf("unexpected defaults %#v", cfg)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("expected 30m session ttl, got %s", cfg.SessionTTL)
	}
}

func TestLoadConfigKafkaGroupPerInstance(t *testing.T) {
	t.Setenv("KAFKA_GROUP_ID", "")
	t.Setenv("INSTANCE_ID", "")

	first, _ := LoadConfig()
	if !strings.HasPrefix(first.KafkaGroupID, "booking-service-") || first.KafkaGroupID == "booking-service-" {
		t.Fatalf("expected host suffixed group id, got %q", first.KafkaGroupID)
	}

	t.Setenv("KAFKA_GROUP_ID", "bookings")
	t.Setenv("INSTANCE_ID", "pod-7")
	second, _ := LoadConfig()
	if second.KafkaGroupID != "bookings-pod-7" {
		t.Fatalf("expected bookings-pod-7, got %q", second.KafkaGroupID)
	}

	t.Setenv("INSTANCE_ID", "pod-8")
	third, _ := LoadConfig()
	if third.KafkaGroupID == second.KafkaGroupID {
		t.Fatalf("expected distinct group ids per instance, both %q", third.KafkaGroupID)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("STRICT_STATUS_TRANSITIONS", "true")
	t.Setenv("BOOKING_CURRENCY", "usd")
	t.Setenv("BOOKING_PROCESSING_DELAY_MS", "0")

	cfg, _ := LoadConfig()
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "kafka-2:9092" {
		t.Fatalf("unexpected brokers %v", cfg.KafkaBrokers)
	}
	if !cfg.StrictStatusTransitions || cfg.Currency != "USD" || cfg.ProcessingDelay != 0 {
		t.Fatalf("unexpected overrides %#v", cfg)
	}
}
