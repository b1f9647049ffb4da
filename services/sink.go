package services

import (
	"context"

	"motor-monitor/entities"
)

// Sink receives every reading the simulator produces.
type Sink interface {
	Publish(ctx context.Context, reading entities.Reading) error
}

// SinkFunc adapts a plain function, such as a LiveReadingRepository's Save, to a Sink.
type SinkFunc func(ctx context.Context, reading entities.Reading) error

func (f SinkFunc) Publish(ctx context.Context, reading entities.Reading) error {
	return f(ctx, reading)
}
