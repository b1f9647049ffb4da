package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"motor-monitor/cache"
	"motor-monitor/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 10, 30, 0, 0, time.Local)

func newTestDashboard(readings map[uint]entities.SensorReading) (*DashboardUseCase, *cache.LiveCache) {
	zones := &fakeZones{zones: []entities.Zone{
		{ID: 1, ZoneName: "Assembly Line 1", Location: "Building A, Floor 1", Status: "active"},
		{ID: 2, ZoneName: "Empty Bay", Location: "Building B", Status: "active"},
	}}
	motors := &fakeMotors{motors: []entities.Motor{
		{ID: 1, MotorName: "Motor A-1", ZoneID: 1, MotorType: "AC Induction", RatedPowerKW: 5.5, Status: "running"},
		{ID: 2, MotorName: "Motor A-2", ZoneID: 1, MotorType: "DC Brushless", RatedPowerKW: 7.5, Status: "running"},
		{ID: 3, MotorName: "Motor A-3", ZoneID: 1, MotorType: "AC Induction", RatedPowerKW: 10, Status: "running"},
	}}
	live := cache.NewLiveCache()
	uc := NewDashboardUseCase(zones, motors, &fakeReadings{latest: readings}, live)
	uc.now = func() time.Time { return fixedNow }
	uc.randFloat = func() float64 { return 0.5 }
	return uc, live
}

func reading(motorID uint, temp float64) entities.SensorReading {
	return entities.SensorReading{MotorID: motorID, Timestamp: fixedNow, TemperatureCelsius: temp, VibrationMMS: 3.1, SoundDB: 64}
}

func TestListZonesCountsFromLatestReadings(t *testing.T) {
	uc, _ := newTestDashboard(map[uint]entities.SensorReading{
		1: reading(1, 72),
		2: reading(2, 85),
	})

	zones, err := uc.ListZones(context.Background())
	require.NoError(t, err)
	require.Len(t, zones, 2)

	assert.Equal(t, "Assembly Line 1", zones[0].ZoneName)
	assert.Equal(t, 3, zones[0].TotalMotors)
	assert.Equal(t, StatusCounts{Normal: 1, Warning: 1, Critical: 1}, zones[0].StatusCounts)
	assert.Equal(t, HealthCritical, zones[0].OverallStatus)

	assert.Equal(t, 0, zones[1].TotalMotors)
	assert.Equal(t, StatusCounts{}, zones[1].StatusCounts)
	assert.Equal(t, HealthNormal, zones[1].OverallStatus)

	// one grouped lookup, no per-motor queries
	store := uc.ReadingRepo.(*fakeReadings)
	assert.Equal(t, 1, store.perMotorCalls)
	assert.Zero(t, store.latestCalls)
}

func TestListZonesPropagatesStoreErrors(t *testing.T) {
	uc, _ := newTestDashboard(nil)
	uc.ReadingRepo = &fakeReadings{err: errors.New("connection reset")}

	_, err := uc.ListZones(context.Background())
	assert.ErrorContains(t, err, "connection reset")
}

func TestListMotorsInZone(t *testing.T) {
	uc, _ := newTestDashboard(map[uint]entities.SensorReading{1: reading(1, 81.25)})

	motors, err := uc.ListMotorsInZone(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, motors, 3)

	assert.Equal(t, 81.25, motors[0].LatestReading.TemperatureCelsius)
	assert.Equal(t, HealthCritical, motors[0].HealthStatus)
	assert.Equal(t, "2025-03-14 10:30:00", motors[0].LatestReading.Timestamp)

	// no stored reading: centred placeholder with randFloat pinned to the midpoint
	assert.Equal(t, entities.Reading{
		MotorID:            2,
		Timestamp:          "2025-03-14 10:30:00",
		TemperatureCelsius: 65.5,
		VibrationMMS:       3.5,
		SoundDB:            65,
	}, motors[1].LatestReading)
	assert.Equal(t, HealthNormal, motors[1].HealthStatus)
}

func TestListMotorsInUnknownZoneIsEmpty(t *testing.T) {
	uc, _ := newTestDashboard(nil)

	motors, err := uc.ListMotorsInZone(context.Background(), 42)
	require.NoError(t, err)
	assert.NotNil(t, motors)
	assert.Empty(t, motors)
}

func TestGetMotorDetail(t *testing.T) {
	uc, _ := newTestDashboard(map[uint]entities.SensorReading{3: reading(3, 74)})

	detail, err := uc.GetMotorDetail(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Motor A-3", detail.MotorName)
	assert.Equal(t, HealthWarning, detail.HealthStatus)

	placeholder, err := uc.GetMotorDetail(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 68.0, placeholder.LatestReading.TemperatureCelsius)
	assert.Equal(t, 3.0, placeholder.LatestReading.VibrationMMS)
	assert.Equal(t, 63.0, placeholder.LatestReading.SoundDB)

	_, err = uc.GetMotorDetail(context.Background(), 99)
	assert.ErrorIs(t, err, ErrMotorNotFound)
}

func TestSensorHistory(t *testing.T) {
	uc, _ := newTestDashboard(nil)

	history := uc.SensorHistory()
	require.Len(t, history.Timestamps, HistoryPoints)
	require.Len(t, history.Temperature, HistoryPoints)

	assert.Equal(t, "10:30", history.Timestamps[0])
	assert.Equal(t, "11:30", history.Timestamps[1])
	assert.Equal(t, "10:30", history.Timestamps[24])

	// noise is zero at the midpoint, so the curve is the bare trend plus spike
	assert.Equal(t, 60.0, history.Temperature[0])
	assert.Equal(t, 69.5, history.Temperature[19])
	assert.Equal(t, 85.0, history.Temperature[20])
	assert.Equal(t, 87.0, history.Temperature[24])
}

func TestSensorHistoryStaysInBand(t *testing.T) {
	uc := NewDashboardUseCase(nil, nil, nil, nil)
	for n := 0; n < 50; n++ {
		history := uc.SensorHistory()
		for i, temp := range history.Temperature {
			base := 60 + float64(i)*0.5
			if i >= 20 {
				base += 15
			}
			assert.InDelta(t, base, temp, 3.01)
		}
	}
}

func TestLiveReading(t *testing.T) {
	uc, live := newTestDashboard(nil)

	_, err := uc.LiveReading(context.Background(), 1)
	assert.ErrorIs(t, err, ErrLiveReadingNotFound)

	want := entities.Reading{MotorID: 1, Timestamp: "2025-03-14 10:30:02", TemperatureCelsius: 88.1, VibrationMMS: 4.2, SoundDB: 66.6}
	require.NoError(t, live.Save(context.Background(), want))

	got, err := uc.LiveReading(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}
