package viewcount

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu      sync.Mutex
	batches []map[int64]int64
	err     error
}

func (s *recordingSink) AddViewCounts(_ context.Context, counts map[int64]int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.batches = append(s.batches, counts)
	return nil
}

func (s *recordingSink) all() map[int64]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := make(map[int64]int64)
	for _, batch := range s.batches {
		for id, n := range batch {
			total[id] += n
		}
	}
	return total
}

func TestMemoryBufferAccumulatesAndDrains(t *testing.T) {
	buf := &memoryBuffer{counts: make(map[int64]int64)}
	buf.add(1)
	buf.add(2)
	buf.add(1)

	counts, err := buf.drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[int64]int64{1: 2, 2: 1}, counts)

	counts, err = buf.drain(context.Background())
	require.NoError(t, err)
	assert.Empty(t, counts, "drain should reset the buffer")
}

func TestCounterFlushesOnClose(t *testing.T) {
	sink := &recordingSink{}
	counter := NewMemoryCounter(sink, time.Hour, nil)

	counter.RecordView(7)
	counter.RecordView(7)
	counter.RecordView(9)
	counter.Close()

	assert.Equal(t, map[int64]int64{7: 2, 9: 1}, sink.all())
}

func TestCounterFlushesOnInterval(t *testing.T) {
	sink := &recordingSink{}
	flushed := make(chan struct{}, 8)
	counter := NewMemoryCounter(sink, 10*time.Millisecond, func() {
		select {
		case flushed <- struct{}{}:
		default:
		}
	})
	defer counter.Close()

	counter.RecordView(3)

	select {
	case <-flushed:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for periodic flush")
	}
	assert.Equal(t, map[int64]int64{3: 1}, sink.all())
}

func TestCounterSkipsCallbackWhenEmpty(t *testing.T) {
	sink := &recordingSink{}
	var calls int
	counter := NewMemoryCounter(sink, time.Hour, func() { calls++ })

	counter.Close()

	assert.Zero(t, calls, "empty flush should not refresh anything")
	assert.Empty(t, sink.batches)
}

func TestCounterDropsBatchOnSinkFailure(t *testing.T) {
	sink := &recordingSink{err: errors.New("database down")}
	counter := NewMemoryCounter(sink, time.Hour, nil)

	counter.RecordView(5)
	counter.Close()

	assert.Empty(t, sink.all())
}

func TestCounterCloseIsIdempotent(t *testing.T) {
	counter := NewMemoryCounter(&recordingSink{}, time.Hour, nil)
	counter.Close()
	assert.NotPanics(t, func() { counter.Close() })
}
