package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/oksasatya/user-account-service/config"
	esinfra "github.com/oksasatya/user-account-service/internal/infrastructure/elasticsearch"
	"github.com/oksasatya/user-account-service/internal/infrastructure/projection"
	"github.com/oksasatya/user-account-service/pkg/helpers"
)

// The projector tails the CDC queue and keeps the Elasticsearch read replica
// in sync with the Postgres users table. Messages the projector cannot apply
// are nacked without requeue so a poisoned envelope never wedges the queue.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-projector", cfg.Env)

	esClient, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		log.Fatalf("failed to init elasticsearch client: %v", err)
	}

	ctx := context.Background()
	if err := esinfra.EnsureUsersIndex(ctx, esClient, cfg.ESUsersIndex); err != nil {
		log.Fatalf("ensure users index: %v", err)
	}

	store := esinfra.NewUserDocumentStore(esClient, cfg.ESUsersIndex)
	proj := projection.NewProjector(store, logger)

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// Prefetch 1: envelopes for the same row must apply in order
	if err := ch.Qos(1, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	if _, err := ch.QueueDeclare(cfg.RabbitMQCDCQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQCDCQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			if proj.Process(ctx, msg.Body) {
				_ = msg.Ack(false)
			} else {
				_ = msg.Nack(false, false)
			}
		}
		close(done)
	}()

	logger.Infof("projector listening on queue=%s index=%s", cfg.RabbitMQCDCQueue, cfg.ESUsersIndex)
	<-stop
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
