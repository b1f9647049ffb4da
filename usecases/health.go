package usecases

import "math"

const (
	HealthNormal   = "Normal"
	HealthWarning  = "Warning"
	HealthCritical = "Critical"
)

const (
	warningTemperature  = 70.0
	criticalTemperature = 80.0
)

// HealthStatus classifies a motor by its temperature in °C.
func HealthStatus(temperature float64) string {
	switch {
	case temperature >= criticalTemperature:
		return HealthCritical
	case temperature >= warningTemperature:
		return HealthWarning
	default:
		return HealthNormal
	}
}

// StatusCounts is the number of motors per health status in a zone.
type StatusCounts struct {
	Normal   int `json:"Normal"`
	Warning  int `json:"Warning"`
	Critical int `json:"Critical"`
}

// Add counts one motor with the given health status.
func (c *StatusCounts) Add(status string) {
	switch status {
	case HealthCritical:
		c.Critical++
	case HealthWarning:
		c.Warning++
	default:
		c.Normal++
	}
}

// OverallStatus picks the worst status present, regardless of how many
// motors have it.
func OverallStatus(c StatusCounts) string {
	if c.Critical > 0 {
		return HealthCritical
	}
	if c.Warning > 0 {
		return HealthWarning
	}
	return HealthNormal
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
