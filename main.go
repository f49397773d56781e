package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
	"github.com/villastay/rental-service/config"
	"github.com/villastay/rental-service/internal/handler"
	"github.com/villastay/rental-service/internal/middleware"
	"github.com/villastay/rental-service/internal/repository"
	"github.com/villastay/rental-service/internal/service"
	"github.com/villastay/rental-service/pkg/database"
	"github.com/villastay/rental-service/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// The broker is optional: without it the service still takes bookings,
	// it just stops telling the rest of the platform about them.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		var err error
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Warn("RABBITMQ_URL not set, lifecycle events disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	villaRepo := repository.NewVillaRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// Services
	villaSvc := service.NewVillaService(villaRepo, userRepo, publisher)
	searchSvc := service.NewSearchService(villaRepo)
	availabilitySvc := service.NewAvailabilityService(availabilityRepo, villaRepo)
	bookingSvc := service.NewBookingService(bookingRepo, villaRepo, availabilityRepo, publisher)
	reviewSvc := service.NewReviewService(reviewRepo, bookingRepo, publisher)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.WithFields(log.Fields{
				"method": v.Method,
				"uri":    v.URI,
				"status": v.Status,
			}).Info("request")
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "rental-service"})
	})

	handler.NewVillaHandler(villaSvc, searchSvc).RegisterRoutes(e)
	handler.NewAvailabilityHandler(availabilitySvc).RegisterRoutes(e)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)
	handler.NewReviewHandler(reviewSvc).RegisterRoutes(e)

	log.Infof("rental service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
