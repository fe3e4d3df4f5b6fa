package journal

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"
)

// RecordHandler processes one journaled action.
type RecordHandler func(ctx context.Context, rec Record) error

// Reader tails the journal topic.
type Reader struct {
	reader *kafka.Reader
}

func NewReader(brokers []string, topic, groupID string) *Reader {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
	return &Reader{reader: reader}
}

func (r *Reader) Consume(ctx context.Context, handler RecordHandler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			msg, err := r.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Printf("[Journal] Error reading record: %v", err)
				continue
			}

			var rec Record
			if err := json.Unmarshal(msg.Value, &rec); err != nil {
				log.Printf("[Journal] Skipping undecodable record: %v", err)
				continue
			}
			if err := handler(ctx, rec); err != nil {
				log.Printf("[Journal] Error handling record %s: %v", rec.ID, err)
			}
		}
	}
}

func (r *Reader) Close() error {
	return r.reader.Close()
}
