package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/corptravel/travel-order-service/config"
	"github.com/corptravel/travel-order-service/internal/consumer"
	"github.com/corptravel/travel-order-service/internal/handler"
	"github.com/corptravel/travel-order-service/internal/middleware"
	"github.com/corptravel/travel-order-service/internal/notifier"
	"github.com/corptravel/travel-order-service/internal/repository"
	"github.com/corptravel/travel-order-service/internal/service"
	"github.com/corptravel/travel-order-service/internal/validation"
	"github.com/corptravel/travel-order-service/pkg/database"
	"github.com/corptravel/travel-order-service/pkg/rabbitmq"
	"github.com/corptravel/travel-order-service/pkg/token"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ: notification delivery runs off the request path
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}
	consumer.NewNotificationConsumer(consumer.LogMailer{}).Start(msgs)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewTravelOrderRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	validate := validation.New()
	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	statusNotifier := notifier.New(userRepo, notificationRepo, publisher, cfg.AppURL)
	orderSvc := service.NewTravelOrderService(orderRepo, validate, statusNotifier)
	authSvc := service.NewAuthService(userRepo, validate)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Infof("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "travel-order-service"})
	})

	authHandler := handler.NewAuthHandler(authSvc, tokens)
	authHandler.RegisterPublicRoutes(e)

	protected := e.Group("", middleware.JWTAuth(tokens))
	authHandler.RegisterProtectedRoutes(protected)
	handler.NewTravelOrderHandler(orderSvc, validate).RegisterRoutes(e.Group("/travel-orders", middleware.JWTAuth(tokens)))
	handler.NewNotificationHandler(notificationRepo).RegisterRoutes(e.Group("/notifications", middleware.JWTAuth(tokens)))

	log.Infof("Travel Order Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
