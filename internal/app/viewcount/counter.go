// Package viewcount turns fire-and-forget view events into periodic batched
// counter updates. Recording a view never blocks a request on the database;
// deltas accumulate in a buffer and a background loop applies them. A small
// loss window on hard failure is accepted, view counts are engagement hints,
// not ledger data.
package viewcount

import (
	"context"
	"strconv"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/notehive/notehive-server/internal/pkg/logger"
)

// redisKey is the hash holding pending view deltas, note ID to count.
const redisKey = "notehive:views:pending"

// flushTimeout bounds one flush round trip.
const flushTimeout = 5 * time.Second

// Sink applies drained view deltas to storage.
type Sink interface {
	AddViewCounts(ctx context.Context, counts map[int64]int64) error
}

// buffer accumulates deltas between flushes.
type buffer interface {
	add(id int64)
	drain(ctx context.Context) (map[int64]int64, error)
}

// Counter buffers view events and flushes them to the sink on an interval.
// Close flushes once more, so a clean shutdown loses nothing.
type Counter struct {
	buf      buffer
	sink     Sink
	interval time.Duration
	onFlush  func()
	log      zerolog.Logger

	closeOnce sync.Once
	stop      chan struct{}
	done      chan struct{}
}

// NewMemoryCounter buffers views in process memory. Used when Redis is not
// configured; buffered deltas die with the process.
func NewMemoryCounter(sink Sink, interval time.Duration, onFlush func()) *Counter {
	return start(&memoryBuffer{counts: make(map[int64]int64)}, sink, interval, onFlush)
}

// NewRedisCounter buffers views in a Redis hash, shared across instances and
// surviving restarts.
func NewRedisCounter(client *goredis.Client, sink Sink, interval time.Duration, onFlush func()) *Counter {
	buf := &redisBuffer{
		client: client,
		log:    logger.With("viewcount"),
	}
	return start(buf, sink, interval, onFlush)
}

func start(buf buffer, sink Sink, interval time.Duration, onFlush func()) *Counter {
	c := &Counter{
		buf:      buf,
		sink:     sink,
		interval: interval,
		onFlush:  onFlush,
		log:      logger.With("viewcount"),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go c.loop()
	return c
}

// RecordView registers one view of a note. It never returns an error; the
// caller has already answered the client.
func (c *Counter) RecordView(noteID int64) {
	c.buf.add(noteID)
}

// Close stops the flush loop after a final flush. Safe to call more than once.
func (c *Counter) Close() {
	c.closeOnce.Do(func() {
		close(c.stop)
		<-c.done
	})
}

func (c *Counter) loop() {
	defer close(c.done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.flush()
		case <-c.stop:
			c.flush()
			return
		}
	}
}

func (c *Counter) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	counts, err := c.buf.drain(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("Draining view buffer failed")
		return
	}
	if len(counts) == 0 {
		return
	}

	if err := c.sink.AddViewCounts(ctx, counts); err != nil {
		c.log.Error().Err(err).Int("notes", len(counts)).Msg("Applying view counts failed, dropping batch")
		return
	}

	c.log.Debug().Int("notes", len(counts)).Msg("Flushed view counts")
	if c.onFlush != nil {
		c.onFlush()
	}
}

// memoryBuffer keeps deltas in a mutex-guarded map.
type memoryBuffer struct {
	mu     sync.Mutex
	counts map[int64]int64
}

func (b *memoryBuffer) add(id int64) {
	b.mu.Lock()
	b.counts[id]++
	b.mu.Unlock()
}

func (b *memoryBuffer) drain(context.Context) (map[int64]int64, error) {
	b.mu.Lock()
	counts := b.counts
	b.counts = make(map[int64]int64)
	b.mu.Unlock()
	return counts, nil
}

// redisBuffer keeps deltas in a Redis hash keyed by note ID.
type redisBuffer struct {
	client *goredis.Client
	log    zerolog.Logger
}

func (b *redisBuffer) add(id int64) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := b.client.HIncrBy(ctx, redisKey, strconv.FormatInt(id, 10), 1).Err(); err != nil {
		// The view is lost, which the endpoint contract allows.
		b.log.Warn().Err(err).Int64("noteId", id).Msg("Buffering view in Redis failed")
	}
}

func (b *redisBuffer) drain(ctx context.Context) (map[int64]int64, error) {
	// Read and clear atomically so concurrent instances never double-apply.
	pipe := b.client.TxPipeline()
	getAll := pipe.HGetAll(ctx, redisKey)
	pipe.Del(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	fields := getAll.Val()
	counts := make(map[int64]int64, len(fields))
	for field, value := range fields {
		id, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			b.log.Warn().Str("field", field).Msg("Skipping malformed view buffer entry")
			continue
		}
		delta, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			b.log.Warn().Str("field", field).Str("value", value).Msg("Skipping malformed view delta")
			continue
		}
		counts[id] = delta
	}
	return counts, nil
}
