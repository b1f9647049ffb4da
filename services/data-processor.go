package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"motor-monitor/cache"
	"motor-monitor/entities"
	"motor-monitor/repositories"
)

const finalFlushTimeout = 5 * time.Second

// ReadingRecorder is a Sink that buffers readings and bulk-inserts them on
// an interval. Only Run's goroutine writes to the store.
type ReadingRecorder struct {
	buffer   *cache.ReadingBuffer
	readings repositories.SensorReadingRepository
	interval time.Duration
	logger   *slog.Logger
}

func NewReadingRecorder(readings repositories.SensorReadingRepository, interval time.Duration, logger *slog.Logger) *ReadingRecorder {
	return &ReadingRecorder{
		buffer:   cache.NewReadingBuffer(),
		readings: readings,
		interval: interval,
		logger:   logger.With("component", "recorder"),
	}
}

func (r *ReadingRecorder) Publish(_ context.Context, reading entities.Reading) error {
	row, err := reading.SensorReading()
	if err != nil {
		return err
	}
	r.buffer.Add(row)
	return nil
}

// Run flushes every interval and once more after ctx is cancelled.
func (r *ReadingRecorder) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), finalFlushTimeout)
			if _, err := r.Flush(flushCtx); err != nil {
				r.logger.Error("final flush failed", "error", err)
			}
			cancel()
			return
		case <-ticker.C:
			if _, err := r.Flush(ctx); err != nil {
				r.logger.Error("flush failed", "error", err)
			}
		}
	}
}

// Flush writes everything buffered so far and returns how many rows were
// written. Readings of a failed batch are dropped.
func (r *ReadingRecorder) Flush(ctx context.Context) (int, error) {
	pending := r.buffer.Drain()
	if len(pending) == 0 {
		return 0, nil
	}

	rows := make([]entities.SensorReading, 0, len(pending))
	for _, p := range pending {
		rows = append(rows, p.Reading)
	}
	if err := r.readings.CreateBatch(ctx, rows); err != nil {
		return 0, fmt.Errorf("insert %d readings: %w", len(rows), err)
	}
	r.logger.Info("readings persisted", "count", len(rows), "oldest_buffered_at", pending[0].BufferAt)
	return len(rows), nil
}

// Pending reports how many readings wait for the next flush.
func (r *ReadingRecorder) Pending() int {
	return r.buffer.Len()
}
