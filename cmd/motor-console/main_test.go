package main

import (
	"testing"

	"motor-monitor/entities"
	"motor-monitor/usecases"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedURL(t *testing.T) {
	got, err := feedURL("http://localhost:3536")
	require.NoError(t, err)
	assert.Equal(t, "ws://localhost:3536/ws", got)

	// the token travels in a header, never in the URL
	got, err = feedURL("https://plant.example/monitor/?token=stale")
	require.NoError(t, err)
	assert.Equal(t, "wss://plant.example/monitor/ws", got)

	_, err = feedURL("ftp://plant.example")
	assert.Error(t, err)
}

func TestPromptFlow(t *testing.T) {
	m := tea.Model(initialModel("http://localhost:3536/"))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("quinn")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("pw")})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	state := m.(model)
	assert.Equal(t, "http://localhost:3536", state.server)
	assert.Equal(t, "quinn", state.username)
	assert.Equal(t, stepLoggingIn, state.step)
	assert.NotNil(t, cmd)
}

func TestLoadedMotorsAndLiveReading(t *testing.T) {
	m := tea.Model(initialModel(""))
	m, _ = m.Update(motorsLoadedMsg{
		zones: map[uint]string{1: "Assembly Line 1"},
		motors: []motor{
			{ID: 2, MotorName: "Motor A-2", ZoneID: 1, HealthStatus: usecases.HealthNormal},
			{ID: 1, MotorName: "Motor A-1", ZoneID: 1, HealthStatus: usecases.HealthNormal},
		},
	})
	state := m.(model)
	assert.Equal(t, stepLive, state.step)
	assert.Equal(t, []uint{1, 2}, state.order)

	state.applyReading(readingMsg(entities.Reading{MotorID: 2, Timestamp: "2025-03-14 08:00:00", TemperatureCelsius: 88.4}))
	assert.Equal(t, usecases.HealthCritical, state.rows[2].HealthStatus)
	assert.Equal(t, 1, state.received)
	assert.Contains(t, state.View(), "Motor A-2")

	state.applyReading(readingMsg(entities.Reading{MotorID: 9, TemperatureCelsius: 71}))
	assert.Equal(t, []uint{1, 2, 9}, state.order)
	assert.Equal(t, usecases.HealthWarning, state.rows[9].HealthStatus)
}
