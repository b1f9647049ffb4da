package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"motor-monitor/usecases"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gorilla/websocket"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	statusStyles = map[string]lipgloss.Style{
		usecases.HealthNormal:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		usecases.HealthWarning:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		usecases.HealthCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
)

type step int

const (
	stepEnteringServer step = iota
	stepEnteringUsername
	stepEnteringLoginPassword
	stepLoggingIn
	stepLoading
	stepLive
)

type row struct {
	motor
	zoneName string
	updated  string
	live     bool
}

type model struct {
	step         step
	server       string
	username     string
	token        string
	currentInput string
	message      string
	quitting     bool

	rows     map[uint]*row
	order    []uint
	conn     *websocket.Conn
	received int
}

func initialModel(server string) model {
	return model{
		step:         stepEnteringServer,
		currentInput: server,
		rows:         map[uint]*row{},
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m.quit()

		case "q":
			if m.step >= stepLoggingIn {
				return m.quit()
			}
			m.currentInput += "q"

		case "backspace":
			if len(m.currentInput) > 0 {
				m.currentInput = m.currentInput[:len(m.currentInput)-1]
			}

		case "enter":
			switch m.step {
			case stepEnteringServer:
				if m.currentInput != "" {
					m.server = strings.TrimSuffix(m.currentInput, "/")
					m.currentInput = ""
					m.step = stepEnteringUsername
				}

			case stepEnteringUsername:
				if m.currentInput != "" {
					m.username = m.currentInput
					m.currentInput = ""
					m.step = stepEnteringLoginPassword
				}

			case stepEnteringLoginPassword:
				if m.currentInput != "" {
					password := m.currentInput
					m.currentInput = ""
					m.step = stepLoggingIn
					m.message = "Logging in..."
					return m, loginUser(m.server, m.username, password)
				}
			}

		default:
			if m.step <= stepEnteringLoginPassword && (msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace) {
				m.currentInput += string(msg.Runes)
			}
		}

	case loginSuccessMsg:
		m.token = msg.token
		m.step = stepLoading
		m.message = successStyle.Render("✓ Logged in as " + m.username)
		return m, loadMotors(m.server, m.token)

	case motorsLoadedMsg:
		m.rows = make(map[uint]*row, len(msg.motors))
		m.order = m.order[:0]
		for _, mt := range msg.motors {
			m.rows[mt.ID] = &row{motor: mt, zoneName: msg.zones[mt.ZoneID], updated: mt.LatestReading.Timestamp}
			m.order = append(m.order, mt.ID)
		}
		sort.Slice(m.order, func(i, j int) bool { return m.order[i] < m.order[j] })
		m.step = stepLive
		return m, connectFeed(m.server, m.token)

	case feedConnectedMsg:
		m.conn = msg.conn
		m.message = successStyle.Render("✓ Live feed connected")
		return m, waitForReading(m.conn)

	case readingMsg:
		m.applyReading(msg)
		return m, waitForReading(m.conn)

	case errMsg:
		m.message = errorStyle.Render("✗ " + msg.Error())
		if m.step == stepLoggingIn {
			m.step = stepEnteringUsername
		}
	}

	return m, nil
}

func (m *model) applyReading(msg readingMsg) {
	m.received++
	r, ok := m.rows[msg.MotorID]
	if !ok {
		r = &row{motor: motor{ID: msg.MotorID, MotorName: fmt.Sprintf("Motor %d", msg.MotorID)}}
		m.rows[msg.MotorID] = r
		m.order = append(m.order, msg.MotorID)
		sort.Slice(m.order, func(i, j int) bool { return m.order[i] < m.order[j] })
	}
	r.LatestReading.MotorID = msg.MotorID
	r.LatestReading.Timestamp = msg.Timestamp
	r.LatestReading.TemperatureCelsius = msg.TemperatureCelsius
	r.LatestReading.VibrationMMS = msg.VibrationMMS
	r.LatestReading.SoundDB = msg.SoundDB
	r.HealthStatus = usecases.HealthStatus(msg.TemperatureCelsius)
	r.updated = msg.Timestamp
	r.live = true
}

func (m model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.conn != nil {
		_ = m.conn.Close()
	}
	return m, tea.Quit
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("Motor Monitor Console") + "\n")

	switch m.step {
	case stepEnteringServer:
		s.WriteString(promptStyle.Render("Server URL:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringUsername:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(promptStyle.Render("Enter your username:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringLoginPassword:
		s.WriteString(promptStyle.Render("Enter your password:\n"))
		s.WriteString(inputStyle.Render("> " + strings.Repeat("•", len(m.currentInput))))
		s.WriteString("\n\nPress Enter\n")

	case stepLoggingIn, stepLoading:
		s.WriteString(m.message + "\n")

	case stepLive:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(m.table())
		s.WriteString(fmt.Sprintf("\n%d live readings received. Press q to quit\n", m.received))
	}

	return s.String()
}

func (m model) table() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(fmt.Sprintf("%-4s %-12s %-18s %9s %9s %8s  %-9s %s", "ID", "Motor", "Zone", "Temp °C", "Vib mm/s", "Sound dB", "Status", "Updated")))
	s.WriteString("\n")
	for _, id := range m.order {
		r := m.rows[id]
		status := r.HealthStatus
		if status == "" {
			status = usecases.HealthStatus(r.LatestReading.TemperatureCelsius)
		}
		marker := " "
		if r.live {
			marker = "*"
		}
		style, ok := statusStyles[status]
		if !ok {
			style = lipgloss.NewStyle()
		}
		s.WriteString(fmt.Sprintf("%-4d %-12s %-18s %9.2f %9.2f %8.2f  %s %s%s\n",
			r.ID, r.MotorName, r.zoneName,
			r.LatestReading.TemperatureCelsius, r.LatestReading.VibrationMMS, r.LatestReading.SoundDB,
			style.Render(fmt.Sprintf("%-9s", status)), r.updated, marker))
	}
	return s.String()
}

func main() {
	server := flag.String("server", envOr("MOTOR_SERVER", "http://localhost:3536"), "dashboard base URL")
	flag.Parse()

	p := tea.NewProgram(initialModel(*server))
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
