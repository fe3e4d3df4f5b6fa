package journal

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/storefront-core/internal/action"
)

type fakePublisher struct {
	mu      sync.Mutex
	records []Record
	err     error
}

func (p *fakePublisher) Publish(ctx context.Context, key string, value any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.records = append(p.records, value.(Record))
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) published() []Record {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Record(nil), p.records...)
}

func TestJournal_PublishesTappedActions(t *testing.T) {
	pub := &fakePublisher{}
	j := New(pub)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = j.Run(ctx)
	}()

	tap := j.Tap()
	tap(action.StartSpinner{Label: "add"})
	tap(action.LoadCart{Surface: action.SurfaceMain})

	require.Eventually(t, func() bool {
		return len(pub.published()) == 2
	}, 2*time.Second, 5*time.Millisecond)
	cancel()
	<-done

	recs := pub.published()
	assert.Equal(t, action.KindStartSpinner, recs[0].Kind)
	assert.NotEmpty(t, recs[0].ID)
	assert.False(t, recs[0].Timestamp.IsZero())

	var spinner action.StartSpinner
	require.NoError(t, json.Unmarshal(recs[0].Payload, &spinner))
	assert.Equal(t, "add", spinner.Label)

	assert.Equal(t, action.KindLoadCart, recs[1].Kind)
}

func TestJournal_NeverBlocksTheTap(t *testing.T) {
	// No Run loop draining: the buffer fills, then records are shed.
	j := New(&fakePublisher{})
	tap := j.Tap()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			tap(action.StopSpinner{Label: "add"})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("tap blocked on a full buffer")
	}
}

func TestJournal_RunStopsOnCancel(t *testing.T) {
	j := New(&fakePublisher{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := j.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestJournal_PublishFailureIsDropped(t *testing.T) {
	pub := &fakePublisher{err: assert.AnError}
	j := New(pub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = j.Run(ctx) }()

	tap := j.Tap()
	tap(action.StartSpinner{Label: "add"})
	tap(action.StartSpinner{Label: "add"})

	// Failures are logged and shed; the loop keeps running.
	assert.Never(t, func() bool {
		return len(pub.published()) > 0
	}, 200*time.Millisecond, 20*time.Millisecond)
}
