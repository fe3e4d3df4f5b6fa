package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/example/storefront-core/internal/journal"
)

// journal-tail prints the action journal as records arrive, for inspecting
// what a storefront session dispatched.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	topic := getEnv("KAFKA_TOPIC", "storefront-actions")
	groupID := getEnv("KAFKA_GROUP_ID", "journal-tail")

	log.Printf("[JournalTail] Tailing %s on %v", topic, brokers)

	reader := journal.NewReader(brokers, topic, groupID)
	defer reader.Close()

	err := reader.Consume(ctx, func(ctx context.Context, rec journal.Record) error {
		log.Printf("[JournalTail] %s %s %s", rec.Timestamp.Format("15:04:05.000"), rec.Kind, rec.Payload)
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("[JournalTail] Consume failed: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
