// Package journal mirrors every dispatched action onto a Kafka topic as an
// observability tap. It never participates in state: a publish failure is
// logged and dropped, and a full buffer sheds records rather than slowing
// the dispatch path.
package journal

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/example/storefront-core/internal/action"
	"github.com/google/uuid"
)

// Record is one journaled action.
type Record struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// Publisher is the transport the journal writes through.
type Publisher interface {
	Publish(ctx context.Context, key string, value any) error
	Close() error
}

type Journal struct {
	publisher Publisher
	records   chan Record
}

func New(publisher Publisher) *Journal {
	return &Journal{
		publisher: publisher,
		records:   make(chan Record, 256),
	}
}

// Tap returns the store tap. It marshals the action and enqueues it without
// blocking; when the buffer is full the record is dropped.
func (j *Journal) Tap() func(a action.Action) {
	return func(a action.Action) {
		payload, err := json.Marshal(a)
		if err != nil {
			log.Printf("[Journal] Failed to marshal %s: %v", a.Kind(), err)
			return
		}
		rec := Record{
			ID:        uuid.New().String(),
			Kind:      a.Kind(),
			Payload:   payload,
			Timestamp: time.Now(),
		}
		select {
		case j.records <- rec:
		default:
			log.Printf("[Journal] Buffer full, dropping %s", rec.Kind)
		}
	}
}

// Run publishes queued records until ctx is cancelled.
func (j *Journal) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case rec := <-j.records:
			if err := j.publisher.Publish(ctx, rec.Kind, rec); err != nil {
				log.Printf("[Journal] Failed to publish %s: %v", rec.Kind, err)
			}
		}
	}
}
