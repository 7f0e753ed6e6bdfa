package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"itembox/infra/rabbitmq"
	"itembox/internal/consumers"
	"itembox/pkg/aws"
	"itembox/pkg/config"
	"itembox/pkg/events"
)

func main() {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	zap.L().Info("Itembox Worker starting...")

	appConfig := config.Read()

	if appConfig.RabbitMQURL == "" {
		zap.L().Fatal("RABBITMQ_URL is required for the worker")
	}

	bucket := aws.NewS3Bucket(appConfig)

	orphanHandler := consumers.NewOrphanBlobHandler(bucket, zap.L())

	consumerConfig := rabbitmq.ConsumerConfig{
		Exchange:      events.ItemExchange,
		QueueName:     "itembox.item.blob.orphaned.v1",
		RoutingKeys:   []string{events.ItemBlobOrphanedEvent + "." + events.EventVersionV1},
		ServiceName:   appConfig.ServiceName,
		PrefetchCount: 10,
	}

	consumer, err := rabbitmq.NewConsumer(appConfig.RabbitMQURL, consumerConfig)
	if err != nil {
		zap.L().Fatal("Failed to create orphan consumer", zap.Error(err))
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		zap.L().Info("Starting orphaned blob consumer...")
		if err := consumer.Consume(ctx, orphanHandler.HandleEvent); err != nil && err != context.Canceled {
			zap.L().Error("Consumer stopped", zap.Error(err))
		}
	}()

	<-sigChan
	zap.L().Info("Shutting down worker...")
	cancel()

	zap.L().Info("Worker stopped")
}
