// Command activity-consumer appends frontend activity events from RabbitMQ
// to logs/activity.log.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/limpopo-connect-web/internal/config"
	"github.com/iliyamo/limpopo-connect-web/internal/queue"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	cfg.ConfigureLogging()

	dir := os.Getenv("ACTIVITY_LOG_DIR")
	consumer := queue.NewConsumer(cfg.AMQPURL, dir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{"queue": queue.ActivityQueueName, "dir": consumer.Dir}).Info("activity-consumer: starting")
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("activity-consumer: stopped")
	}
	log.Info("activity-consumer: stopped")
}
