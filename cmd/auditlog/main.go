// Command auditlog consumes complaint audit events and appends them to
// logs/complaints.log.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/quejasboyaca/complaint-service/internal/logger"
	"github.com/quejasboyaca/complaint-service/internal/queue"
)

func main() {
	dir := flag.String("dir", "logs", "directory of complaints.log")
	url := flag.String("url", "", "broker URL (defaults to RABBITMQ_URL)")
	flag.Parse()

	_ = godotenv.Load()
	log := logger.New(os.Getenv("LOG_LEVEL"), os.Getenv("APP_ENV") != "production")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &queue.Consumer{URL: *url, LogDir: *dir, Logger: log}
	log.Info().Str("queue", queue.QueueName).Str("dir", *dir).Msg("audit consumer starting")
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("audit consumer")
	}
}
