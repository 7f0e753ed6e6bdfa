package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"itembox/app/item"
	"itembox/infra/postgres"
	"itembox/infra/rabbitmq"
	"itembox/internal/middleware"
	"itembox/pkg/aws"
	"itembox/pkg/config"
	"itembox/pkg/events"
	"itembox/web"
)

func main() {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	zap.L().Info("app starting...")

	appConfig := config.Read()

	app := fiber.New(fiber.Config{
		IdleTimeout:  5 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		BodyLimit:    16 * 1024 * 1024,
		Concurrency:  256 * 1024,
	})

	app.Use(middleware.NewRequestLoggerMiddleware())

	pgRepository := postgres.NewPgRepository(
		appConfig.PostgresHost,
		appConfig.PostgresDatabase,
		appConfig.PostgresUsername,
		appConfig.PostgresPassword,
		appConfig.PostgresPort,
	)
	defer pgRepository.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := pgRepository.Migrate(migrateCtx); err != nil {
		zap.L().Fatal("Failed to migrate schema", zap.Error(err))
	}

	bucket := aws.NewS3Bucket(appConfig)

	// Event publishing is optional: without a broker URL the app runs with
	// publishing disabled.
	var publisher events.Publisher
	if appConfig.RabbitMQURL != "" {
		rmqPublisher, err := rabbitmq.NewRabbitMQPublisher(appConfig.RabbitMQURL, appConfig.ServiceName)
		if err != nil {
			zap.L().Warn("Event publishing disabled", zap.Error(err))
		} else {
			publisher = rmqPublisher
			defer rmqPublisher.Close()
		}
	}

	server := web.NewServer(
		item.NewGetItemsHandler(pgRepository),
		item.NewGetItemHandler(pgRepository),
		item.NewCreateItemHandler(pgRepository, bucket, publisher),
		item.NewUpdateItemHandler(pgRepository, bucket, publisher),
		item.NewDeleteItemHandler(pgRepository, bucket, publisher),
	)
	server.RegisterRoutes(app)

	go func() {
		if err := app.Listen(fmt.Sprintf("0.0.0.0:%s", appConfig.Port)); err != nil {
			zap.L().Error("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	zap.L().Info("Server started on port", zap.String("port", appConfig.Port))

	gracefulShutdown(app)
}

func gracefulShutdown(app *fiber.App) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	zap.L().Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		zap.L().Error("Error during server shutdown", zap.Error(err))
	}

	zap.L().Info("Server gracefully stopped")
}
