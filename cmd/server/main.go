package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"booking-service/internal/domain/repository"
	"booking-service/internal/infrastructure/auth"
	"booking-service/internal/infrastructure/broker"
	"booking-service/internal/infrastructure/config"
	"booking-service/internal/infrastructure/oauth"
	"booking-service/internal/infrastructure/persistence"
	"booking-service/internal/infrastructure/realtime"
	"booking-service/internal/infrastructure/router"
	"booking-service/internal/interface/gmail"
	repo "booking-service/internal/interface/repository"
	"booking-service/internal/interface/transport"
	"booking-service/internal/usecase"
	"booking-service/pkg/idgen"
	"booking-service/pkg/logger"
	"booking-service/pkg/metrics"
	"booking-service/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Fatal("Failed to load config", "error", err)
	}

	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting Booking Service", "version", cfg.AppVersion)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics(cfg.MetricsNamespace, prometheus.DefaultRegisterer)

	// Reservations live in MongoDB; without a reachable server they are kept in memory
	var reservations repository.ReservationRepository
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Warn("MongoDB unavailable, using in-memory reservations", "error", err)
		reservations = repo.NewMemoryReservationRepository()
	} else {
		reservations = repo.NewMongoReservationRepository(db)
	}

	// Property catalogue
	var properties repository.PropertyRepository
	if cfg.PropertyDBDSN != "" {
		gormDB, err := persistence.NewPropertyDB(cfg.PropertyDBDriver, cfg.PropertyDBDSN)
		if err != nil {
			log.Fatal("Failed to connect to property database", "driver", cfg.PropertyDBDriver, "error", err)
		}
		properties = repo.NewGormPropertyRepository(gormDB)
	} else {
		log.Warn("PROPERTY_DB_DSN not set, bookings must carry a property snapshot")
	}

	// Reservation change events: through Kafka when configured, otherwise straight to the hub
	hub := realtime.NewHub(log)
	var notifier repository.ReservationNotifier = hub
	var kafkaNotifier *broker.KafkaNotifier
	if len(cfg.KafkaBrokers) > 0 {
		kafkaNotifier = broker.NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaTopic)
		notifier = kafkaNotifier
		consumer := broker.NewReservationEventConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, cfg.KafkaTopic, hub, log)
		go func() {
			if err := consumer.Consume(ctx); err != nil {
				log.Error("Reservation event consumer stopped", "error", err)
			}
		}()
		log.Info("Kafka configured", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic, "groupID", cfg.KafkaGroupID)
	}

	// Guest receipts
	var receipts repository.ReceiptSender
	if cfg.GmailEnabled() {
		gmailAuth := oauth.NewReceiptAuth(oauth.Credentials{
			ClientID:     cfg.GmailClientID,
			ClientSecret: cfg.GmailClientSecret,
			RefreshToken: cfg.GmailRefreshToken,
		}, log)
		tokenSource, err := gmailAuth.TokenSource(ctx)
		if err != nil {
			log.Fatal("Failed to create Gmail token source", "error", err)
		}
		mailer, err := gmail.NewReceiptMailer(ctx, tokenSource, cfg.GmailSender, log)
		if err != nil {
			log.Error("Failed to create Gmail receipt mailer", "error", err)
		} else {
			receipts = mailer
		}
	}

	// Use cases
	parser := utils.NewDateRangeParser(time.Now)
	dates := utils.NewShortDateFormatter()
	money := utils.CurrencyFormatter{}
	seed := uint64(time.Now().UnixNano())
	factory := usecase.NewReservationFactory(idgen.NewPseudoRandom(seed, seed>>1|1), dates, money, cfg.Currency)
	orchestrator := usecase.NewBookingOrchestrator(reservations, properties, notifier, receipts, parser, factory, cfg.ProcessingDelay, m, log)

	var policy usecase.TransitionPolicy = usecase.PermissivePolicy{}
	if cfg.StrictStatusTransitions {
		policy = usecase.StrictPolicy{}
	}
	statusService := usecase.NewReservationStatusService(reservations, notifier, policy, m, log)
	sessions := usecase.NewSessionRegistry(cfg.SessionTTL)
	go sessions.Run(ctx, time.Minute)

	// HTTP
	if cfg.JWTSecret == "" && cfg.JWTPublicKey == "" {
		log.Warn("JWT_SECRET and JWT_PUBLIC_KEY not set, admin routes will reject every request")
	}
	validator := auth.NewJWTValidator(cfg.JWTSecret, cfg.JWTPublicKey)
	e := router.NewRouter(router.Handlers{
		Bookings:     transport.NewBookingHandler(orchestrator, sessions, log),
		Sessions:     transport.NewSessionHandler(sessions),
		Pricing:      transport.NewPricingHandler(parser, dates, money, cfg.Currency),
		Reservations: transport.NewReservationHandler(reservations, statusService, log),
		Websocket:    transport.NewReservationsWebsocketHandler(hub, validator, log),
		Validator:    validator,
		Gatherer:     prometheus.DefaultGatherer,
	}, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	if kafkaNotifier != nil {
		if err := kafkaNotifier.Close(); err != nil {
			log.Error("Kafka writer close error", "error", err)
		}
	}
	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			log.Error("MongoDB disconnect error", "error", err)
		}
	}

	log.Info("Booking Service stopped")
}
