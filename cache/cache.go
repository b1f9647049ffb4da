package cache

import (
	"context"
	"sync"
	"time"

	"motor-monitor/entities"
	"motor-monitor/repositories"
)

// LiveCache keeps the last broadcast reading per motor in memory. It is the
// default LiveReadingRepository when no Redis is configured.
type LiveCache struct {
	mu       sync.RWMutex
	latest   map[uint]entities.Reading
	received int
}

func NewLiveCache() *LiveCache {
	return &LiveCache{latest: make(map[uint]entities.Reading)}
}

func (lc *LiveCache) Save(_ context.Context, reading entities.Reading) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	lc.latest[reading.MotorID] = reading
	lc.received++
	return nil
}

func (lc *LiveCache) Get(_ context.Context, motorID uint) (*entities.Reading, error) {
	lc.mu.RLock()
	defer lc.mu.RUnlock()
	reading, ok := lc.latest[motorID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &reading, nil
}

// Stats returns how many motors have a snapshot and how many readings were seen.
func (lc *LiveCache) Stats() (motors, received int) {
	lc.mu.RLock()
	defer lc.mu.RUnlock()
	return len(lc.latest), lc.received
}

// BufferedReading is a reading waiting to be written, with the time it was buffered.
type BufferedReading struct {
	Reading  entities.SensorReading
	BufferAt time.Time
}

// ReadingBuffer collects readings between flushes.
type ReadingBuffer struct {
	mu      sync.Mutex
	pending []BufferedReading
}

func NewReadingBuffer() *ReadingBuffer {
	return &ReadingBuffer{}
}

// Add appends a reading to the buffer.
func (rb *ReadingBuffer) Add(reading entities.SensorReading) {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.pending = append(rb.pending, BufferedReading{Reading: reading, BufferAt: time.Now()})
}

// Drain hands back everything buffered so far and empties the buffer.
func (rb *ReadingBuffer) Drain() []BufferedReading {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	out := rb.pending
	rb.pending = nil
	return out
}

// Len reports how many readings are waiting.
func (rb *ReadingBuffer) Len() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return len(rb.pending)
}
