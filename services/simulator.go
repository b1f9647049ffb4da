package services

import (
	"context"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"motor-monitor/entities"
	"motor-monitor/repositories"
)

const (
	anomalyRate = 0.1

	sinkQueueSize      = 32
	defaultSinkTimeout = 5 * time.Second
)

// sinkQueue buffers readings for one sink so a stalled sink only loses its
// own readings.
type sinkQueue struct {
	sink     Sink
	readings chan entities.Reading
}

// Simulator fabricates one reading per tick for a random motor and hands
// it to every sink.
type Simulator struct {
	motors      repositories.MotorRepository
	queues      []sinkQueue
	interval    time.Duration
	sinkTimeout time.Duration
	logger      *slog.Logger

	rng *rand.Rand
	now func() time.Time
}

func NewSimulator(motors repositories.MotorRepository, interval time.Duration, logger *slog.Logger, sinks ...Sink) *Simulator {
	seed := uint64(time.Now().UnixNano())
	queues := make([]sinkQueue, len(sinks))
	for i, sink := range sinks {
		queues[i] = sinkQueue{sink: sink, readings: make(chan entities.Reading, sinkQueueSize)}
	}
	return &Simulator{
		motors:      motors,
		queues:      queues,
		interval:    interval,
		sinkTimeout: defaultSinkTimeout,
		logger:      logger.With("component", "simulator"),
		rng:         rand.New(rand.NewPCG(seed, seed>>1|1)),
		now:         time.Now,
	}
}

// Run ticks until ctx is cancelled. Each sink is drained by its own
// goroutine, and Run returns once they have all stopped.
func (s *Simulator) Run(ctx context.Context) {
	var wg sync.WaitGroup
	defer wg.Wait()
	for _, q := range s.queues {
		wg.Add(1)
		go func(q sinkQueue) {
			defer wg.Done()
			s.deliver(ctx, q)
		}(q)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("simulator started", "interval", s.interval.String(), "sinks", len(s.queues))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("simulator stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick emits a single reading onto every sink queue, dropping it for any
// sink whose queue is full. It reports false when nothing was emitted,
// either because there are no motors or because the store failed.
func (s *Simulator) Tick(ctx context.Context) (entities.Reading, bool) {
	ids, err := s.motors.ListIDs(ctx)
	if err != nil {
		s.logger.Warn("skipping tick, could not list motors", "error", err)
		return entities.Reading{}, false
	}
	if len(ids) == 0 {
		return entities.Reading{}, false
	}

	reading := s.Generate(ids[s.rng.IntN(len(ids))])
	for i, q := range s.queues {
		select {
		case q.readings <- reading:
		default:
			s.logger.Warn("sink queue full, reading dropped", "sink", i, "motor_id", reading.MotorID)
		}
	}
	s.logger.Debug("reading emitted", "motor_id", reading.MotorID, "temperature", reading.TemperatureCelsius)
	return reading, true
}

func (s *Simulator) deliver(ctx context.Context, q sinkQueue) {
	for {
		select {
		case <-ctx.Done():
			return
		case reading := <-q.readings:
			if ctx.Err() != nil {
				return
			}
			pubCtx, cancel := context.WithTimeout(ctx, s.sinkTimeout)
			if err := q.sink.Publish(pubCtx, reading); err != nil {
				s.logger.Warn("sink rejected reading", "motor_id", reading.MotorID, "error", err)
			}
			cancel()
		}
	}
}

// Generate draws a reading for the motor: temperature 65-75 °C (85-95 °C on
// an anomaly), vibration 3-5 mm/s, sound 60-70 dB.
func (s *Simulator) Generate(motorID uint) entities.Reading {
	reading := entities.Reading{
		MotorID:            motorID,
		Timestamp:          s.now().Format(entities.TimestampLayout),
		TemperatureCelsius: s.uniform(65, 75),
		VibrationMMS:       s.uniform(3, 5),
		SoundDB:            s.uniform(60, 70),
	}
	if s.rng.Float64() < anomalyRate {
		reading.TemperatureCelsius = s.uniform(85, 95)
	}
	return reading
}

func (s *Simulator) uniform(lo, hi float64) float64 {
	return math.Round((lo+s.rng.Float64()*(hi-lo))*100) / 100
}
