package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadingRoundTripKeepsSecondPrecision(t *testing.T) {
	row := SensorReading{
		MotorID:            3,
		Timestamp:          time.Date(2026, 3, 4, 10, 15, 30, 999, time.Local),
		TemperatureCelsius: 71.25,
		VibrationMMS:       4.1,
		SoundDB:            66.5,
	}

	wire := row.Reading()
	assert.Equal(t, "2026-03-04 10:15:30", wire.Timestamp)
	assert.Equal(t, uint(3), wire.MotorID)

	back, err := wire.SensorReading()
	require.NoError(t, err)
	assert.True(t, back.Timestamp.Equal(row.Timestamp.Truncate(time.Second)))
	assert.Equal(t, row.TemperatureCelsius, back.TemperatureCelsius)
}

func TestReadingRejectsBadTimestamp(t *testing.T) {
	_, err := Reading{Timestamp: "yesterday"}.SensorReading()
	assert.Error(t, err)
}
