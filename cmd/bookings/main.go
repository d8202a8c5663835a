package main

import (
	"pawbook/internal/audit"
	"pawbook/internal/bookings/handler"
	"pawbook/internal/bookings/repository"
	"pawbook/internal/bookings/service"
	"pawbook/internal/bookings/validator"
	employeesrepository "pawbook/internal/employees/repository"
	"pawbook/pkg/app"
	"pawbook/pkg/config"
	kafka_config "pawbook/pkg/kafka/config"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Bookings service")
	bookingService, auditPublisher := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.OnShutdown(func() {
		if err := auditPublisher.Close(); err != nil {
			cfg.Log.Error("Failed to close audit publisher", "error", err)
		}
	})
	serverApp.SetApp(handler.NewBookingHandler(bookingService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) (service.BookingService, audit.Publisher) {
	auditPublisher := initAuditPublisher(cfg)

	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	lockRepo := repository.NewMongoBookingLockRepository(cfg)
	employeeRepo := employeesrepository.NewMongoEmployeeRepository(cfg)

	bookingService := service.NewBookingService(
		bookingRepo,
		lockRepo,
		employeeRepo,
		bookingValidator,
		auditPublisher,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService, auditPublisher
}

func initAuditPublisher(cfg *config.Config) audit.Publisher {
	kafkaCfg := kafka_config.Load()
	if err := kafkaCfg.Validate(); err != nil {
		cfg.Log.Warn("Kafka configuration invalid, audit events will be discarded", "error", err)
		return audit.NopPublisher{}
	}

	publisher, err := audit.NewKafkaPublisher(kafkaCfg, cfg.AuditTopic, cfg.AuditDLQTopic, ServiceName, cfg.Log)
	if err != nil {
		cfg.Log.Warn("Failed to initialize audit publisher, audit events will be discarded", "error", err)
		return audit.NopPublisher{}
	}

	cfg.Log.Info("Audit publisher initialized", "topic", cfg.AuditTopic)
	return publisher
}
