package entities

import "time"

// TimestampLayout is the second-precision format readings are exchanged in.
const TimestampLayout = "2006-01-02 15:04:05"

// SensorReading is an append-only row; the latest one per motor is the one
// with the greatest Timestamp.
type SensorReading struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	MotorID            uint      `gorm:"index:idx_readings_motor_time,priority:1;not null" json:"motor_id"`
	Motor              *Motor    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Timestamp          time.Time `gorm:"index:idx_readings_motor_time,priority:2;not null" json:"timestamp"`
	TemperatureCelsius float64   `gorm:"type:decimal(5,2);not null" json:"temperature_celsius"`
	VibrationMMS       float64   `gorm:"type:decimal(5,2)" json:"vibration_mm_s"`
	SoundDB            float64   `gorm:"type:decimal(5,2)" json:"sound_db"`
}

// Reading converts the stored row into its wire form.
func (r SensorReading) Reading() Reading {
	return Reading{
		MotorID:            r.MotorID,
		Timestamp:          r.Timestamp.Format(TimestampLayout),
		TemperatureCelsius: r.TemperatureCelsius,
		VibrationMMS:       r.VibrationMMS,
		SoundDB:            r.SoundDB,
	}
}
