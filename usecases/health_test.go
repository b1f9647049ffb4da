package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthStatus(t *testing.T) {
	cases := []struct {
		temp float64
		want string
	}{
		{55, HealthNormal},
		{69.99, HealthNormal},
		{70, HealthWarning},
		{79.99, HealthWarning},
		{80, HealthCritical},
		{92.5, HealthCritical},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HealthStatus(tc.temp), "temp %.2f", tc.temp)
	}
}

func TestOverallStatus(t *testing.T) {
	assert.Equal(t, HealthNormal, OverallStatus(StatusCounts{}))
	assert.Equal(t, HealthNormal, OverallStatus(StatusCounts{Normal: 5}))
	assert.Equal(t, HealthWarning, OverallStatus(StatusCounts{Normal: 4, Warning: 1}))
	assert.Equal(t, HealthCritical, OverallStatus(StatusCounts{Normal: 3, Warning: 1, Critical: 1}))
	assert.Equal(t, HealthCritical, OverallStatus(StatusCounts{Critical: 1}))
}
