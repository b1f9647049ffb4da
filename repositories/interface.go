package repositories

import (
	"context"
	"errors"

	"motor-monitor/entities"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	GetByID(ctx context.Context, id uint) (*entities.User, error)
}

type ZoneRepository interface {
	GetAll(ctx context.Context) ([]entities.Zone, error)
}

type MotorRepository interface {
	GetAll(ctx context.Context) ([]entities.Motor, error)
	GetByID(ctx context.Context, id uint) (*entities.Motor, error)
	GetByZoneID(ctx context.Context, zoneID uint) ([]entities.Motor, error)
	ListIDs(ctx context.Context) ([]uint, error)
}

type SensorReadingRepository interface {
	// Latest returns ErrNotFound when the motor has no readings.
	Latest(ctx context.Context, motorID uint) (*entities.SensorReading, error)
	// LatestPerMotor returns the newest reading of every motor that has one,
	// keyed by motor id.
	LatestPerMotor(ctx context.Context) (map[uint]entities.SensorReading, error)
	CreateBatch(ctx context.Context, readings []entities.SensorReading) error
}

// LiveReadingRepository keeps the last broadcast reading per motor.
type LiveReadingRepository interface {
	Save(ctx context.Context, reading entities.Reading) error
	Get(ctx context.Context, motorID uint) (*entities.Reading, error)
}
