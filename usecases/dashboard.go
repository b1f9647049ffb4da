package usecases

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"motor-monitor/entities"
	"motor-monitor/repositories"
)

var (
	ErrMotorNotFound       = errors.New("motor not found")
	ErrLiveReadingNotFound = errors.New("no live reading for motor")
)

// HistoryPoints is the number of hourly points SensorHistory returns.
const HistoryPoints = 25

// ZoneSummary is a zone annotated with the health of its motors.
type ZoneSummary struct {
	entities.Zone
	TotalMotors   int          `json:"total_motors"`
	StatusCounts  StatusCounts `json:"status_counts"`
	OverallStatus string       `json:"overall_status"`
}

// MotorView is a motor joined with its latest reading.
type MotorView struct {
	entities.Motor
	LatestReading entities.Reading `json:"latest_reading"`
	HealthStatus  string           `json:"health_status"`
}

// SensorHistory is chart data: parallel slices of "HH:MM" labels and temperatures.
type SensorHistory struct {
	Timestamps  []string  `json:"timestamps"`
	Temperature []float64 `json:"temperature"`
}

// DashboardUseCase serves the read-only dashboard projections.
type DashboardUseCase struct {
	ZoneRepo    repositories.ZoneRepository
	MotorRepo   repositories.MotorRepository
	ReadingRepo repositories.SensorReadingRepository
	LiveRepo    repositories.LiveReadingRepository

	randFloat func() float64
	now       func() time.Time
}

func NewDashboardUseCase(zoneRepo repositories.ZoneRepository, motorRepo repositories.MotorRepository, readingRepo repositories.SensorReadingRepository, liveRepo repositories.LiveReadingRepository) *DashboardUseCase {
	return &DashboardUseCase{
		ZoneRepo:    zoneRepo,
		MotorRepo:   motorRepo,
		ReadingRepo: readingRepo,
		LiveRepo:    liveRepo,
		randFloat:   rand.Float64,
		now:         time.Now,
	}
}

// ListZones returns every zone with its motor count and health breakdown.
// A motor without stored readings counts as Normal.
func (uc *DashboardUseCase) ListZones(ctx context.Context) ([]ZoneSummary, error) {
	zones, err := uc.ZoneRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	motors, err := uc.MotorRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list motors: %w", err)
	}

	latest, err := uc.ReadingRepo.LatestPerMotor(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest readings: %w", err)
	}

	counts := make(map[uint]*StatusCounts, len(zones))
	totals := make(map[uint]int, len(zones))
	for _, motor := range motors {
		status := HealthNormal
		if reading, ok := latest[motor.ID]; ok {
			status = HealthStatus(reading.TemperatureCelsius)
		}
		if counts[motor.ZoneID] == nil {
			counts[motor.ZoneID] = &StatusCounts{}
		}
		counts[motor.ZoneID].Add(status)
		totals[motor.ZoneID]++
	}

	summaries := make([]ZoneSummary, 0, len(zones))
	for _, zone := range zones {
		summary := ZoneSummary{Zone: zone, TotalMotors: totals[zone.ID]}
		if c := counts[zone.ID]; c != nil {
			summary.StatusCounts = *c
		}
		summary.OverallStatus = OverallStatus(summary.StatusCounts)
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// ListMotorsInZone returns the zone's motors with their latest reading and
// health. An unknown zone yields an empty list.
func (uc *DashboardUseCase) ListMotorsInZone(ctx context.Context, zoneID uint) ([]MotorView, error) {
	motors, err := uc.MotorRepo.GetByZoneID(ctx, zoneID)
	if err != nil {
		return nil, fmt.Errorf("list motors in zone %d: %w", zoneID, err)
	}

	views := make([]MotorView, 0, len(motors))
	for _, motor := range motors {
		reading, err := uc.latestOr(ctx, motor.ID, uc.randomPlaceholder)
		if err != nil {
			return nil, err
		}
		views = append(views, MotorView{
			Motor:         motor,
			LatestReading: reading,
			HealthStatus:  HealthStatus(reading.TemperatureCelsius),
		})
	}
	return views, nil
}

// GetMotorDetail returns one motor with its latest reading.
func (uc *DashboardUseCase) GetMotorDetail(ctx context.Context, motorID uint) (*MotorView, error) {
	motor, err := uc.MotorRepo.GetByID(ctx, motorID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrMotorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get motor %d: %w", motorID, err)
	}

	reading, err := uc.latestOr(ctx, motor.ID, uc.fixedPlaceholder)
	if err != nil {
		return nil, err
	}
	return &MotorView{
		Motor:         *motor,
		LatestReading: reading,
		HealthStatus:  HealthStatus(reading.TemperatureCelsius),
	}, nil
}

// SensorHistory fabricates 24 hours of hourly temperatures ending now,
// with a spike over the last five points. It does not depend on the motor.
func (uc *DashboardUseCase) SensorHistory() SensorHistory {
	start := uc.now().Add(-24 * time.Hour)
	history := SensorHistory{
		Timestamps:  make([]string, 0, HistoryPoints),
		Temperature: make([]float64, 0, HistoryPoints),
	}
	for i := 0; i < HistoryPoints; i++ {
		temp := 60 + float64(i)*0.5 + uc.uniform(-3, 3)
		if i >= 20 {
			temp += 15
		}
		history.Timestamps = append(history.Timestamps, start.Add(time.Duration(i)*time.Hour).Format("15:04"))
		history.Temperature = append(history.Temperature, round2(temp))
	}
	return history
}

// LiveReading returns the last broadcast reading for a motor.
func (uc *DashboardUseCase) LiveReading(ctx context.Context, motorID uint) (*entities.Reading, error) {
	reading, err := uc.LiveRepo.Get(ctx, motorID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrLiveReadingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("live reading for motor %d: %w", motorID, err)
	}
	return reading, nil
}

func (uc *DashboardUseCase) latestOr(ctx context.Context, motorID uint, placeholder func(uint) entities.Reading) (entities.Reading, error) {
	latest, err := uc.ReadingRepo.Latest(ctx, motorID)
	if errors.Is(err, repositories.ErrNotFound) {
		return placeholder(motorID), nil
	}
	if err != nil {
		return entities.Reading{}, fmt.Errorf("latest reading for motor %d: %w", motorID, err)
	}
	return latest.Reading(), nil
}

func (uc *DashboardUseCase) randomPlaceholder(motorID uint) entities.Reading {
	return entities.Reading{
		MotorID:            motorID,
		Timestamp:          uc.now().Format(entities.TimestampLayout),
		TemperatureCelsius: round2(65.5 + uc.uniform(-5, 5)),
		VibrationMMS:       round2(3.5 + uc.uniform(-1, 1)),
		SoundDB:            round2(65.0 + uc.uniform(-5, 5)),
	}
}

func (uc *DashboardUseCase) fixedPlaceholder(motorID uint) entities.Reading {
	return entities.Reading{
		MotorID:            motorID,
		Timestamp:          uc.now().Format(entities.TimestampLayout),
		TemperatureCelsius: 68.0,
		VibrationMMS:       3.0,
		SoundDB:            63.0,
	}
}

func (uc *DashboardUseCase) uniform(lo, hi float64) float64 {
	return lo + uc.randFloat()*(hi-lo)
}
