package main

import (
	"log"

	"github.com/campushub/room-booking-service/config"
	"github.com/campushub/room-booking-service/internal/handler"
	"github.com/campushub/room-booking-service/internal/middleware"
	"github.com/campushub/room-booking-service/internal/relay"
	"github.com/campushub/room-booking-service/internal/repository"
	"github.com/campushub/room-booking-service/internal/service"
	"github.com/campushub/room-booking-service/pkg/database"
	"github.com/campushub/room-booking-service/pkg/rabbitmq"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ publisher: downstream consumers deliver the notifications
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	// Repositories
	bookingRepo := repository.NewBookingRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	outboxRepo := repository.NewOutboxRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)

	// Services
	bookingSvc := service.NewBookingService(bookingRepo, roomRepo, auditRepo, outboxRepo, maintenanceRepo)
	maintenanceSvc := service.NewMaintenanceService(maintenanceRepo, roomRepo, db)

	// Outbox relay: drains committed notification records to the broker
	outboxRelay := relay.NewOutboxRelay(outboxRepo, publisher, cfg.RelayInterval, cfg.RelayBatchSize)
	outboxRelay.Start()
	defer outboxRelay.Stop()

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		dbStatus := "up"
		if err := db.WithContext(c.Request().Context()).Exec("SELECT 1").Error; err != nil {
			dbStatus = "down"
		}
		return c.JSON(200, map[string]string{"status": "ok", "db": dbStatus})
	})

	auth := middleware.JWTAuth(cfg.JWTSecret)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e, auth)
	handler.NewMaintenanceHandler(maintenanceSvc).RegisterRoutes(e, auth)
	handler.NewRoomHandler(roomRepo).RegisterRoutes(e, auth)

	log.Printf("Room Booking Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
