package main

import (
	"innkeep/internal/reservations/handler"
	"innkeep/internal/reservations/repository"
	"innkeep/internal/reservations/service"
	"innkeep/internal/reservations/validator"
	"innkeep/pkg/app"
	"innkeep/pkg/booking"
	"innkeep/pkg/config"
	"innkeep/pkg/events"
)

const ServiceName = "reservations"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Reservations service")

	producer := initProducer(cfg)
	reservationService := initServices(cfg, producer)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewBookingHandler(reservationService, cfg),
		handler.NewHealthHandler(cfg),
	)
	serverApp.OnShutdown(func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Warn("Failed to close event producer", "error", err)
		}
	})
	serverApp.Run()
}

func initProducer(cfg *config.Config) *events.Producer {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Event publishing disabled")
		return nil
	}

	producer, err := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create event producer", "error", err)
	}
	cfg.Log.Info("Event producer initialized", "topic", cfg.KafkaTopic)
	return producer
}

func initServices(cfg *config.Config, producer *events.Producer) service.ReservationService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	lockRepo := repository.NewBookingLockRepository(cfg)
	roomCatalog := repository.NewMongoRoomCatalog(cfg)

	reservationService := service.NewReservationService(
		bookingRepo,
		lockRepo,
		roomCatalog,
		bookingValidator,
		producer,
		booking.SystemClock(),
		cfg,
	)

	cfg.Log.Info("Reservation service initialized", "database", cfg.MongoDatabaseName)
	return reservationService
}
