package entities

import (
	"fmt"
	"time"
)

// Reading is the wire form of a sensor reading. It is both the
// latest_reading embedded in motor payloads and the new_reading event
// pushed to live viewers.
type Reading struct {
	MotorID            uint    `json:"motor_id"`
	Timestamp          string  `json:"timestamp"`
	TemperatureCelsius float64 `json:"temperature_celsius"`
	VibrationMMS       float64 `json:"vibration_mm_s"`
	SoundDB            float64 `json:"sound_db"`
}

// SensorReading converts the wire form back into a row for persistence.
func (r Reading) SensorReading() (SensorReading, error) {
	ts, err := time.ParseInLocation(TimestampLayout, r.Timestamp, time.Local)
	if err != nil {
		return SensorReading{}, fmt.Errorf("parse reading timestamp %q: %w", r.Timestamp, err)
	}
	return SensorReading{
		MotorID:            r.MotorID,
		Timestamp:          ts,
		TemperatureCelsius: r.TemperatureCelsius,
		VibrationMMS:       r.VibrationMMS,
		SoundDB:            r.SoundDB,
	}, nil
}
