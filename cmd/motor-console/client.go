package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"motor-monitor/entities"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"
)

type zone struct {
	ID       uint   `json:"id"`
	ZoneName string `json:"zone_name"`
}

type motor struct {
	ID            uint             `json:"id"`
	MotorName     string           `json:"motor_name"`
	ZoneID        uint             `json:"zone_id"`
	LatestReading entities.Reading `json:"latest_reading"`
	HealthStatus  string           `json:"health_status"`
}

type frame struct {
	Event string           `json:"event"`
	Data  entities.Reading `json:"data"`
}

type loginSuccessMsg struct{ token string }
type motorsLoadedMsg struct {
	zones  map[uint]string
	motors []motor
}
type feedConnectedMsg struct{ conn *websocket.Conn }
type readingMsg entities.Reading
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

var httpClient = &http.Client{Timeout: 10 * time.Second}

func loginUser(server, username, password string) tea.Cmd {
	return func() tea.Msg {
		payload, _ := json.Marshal(map[string]string{"username": username, "password": password})
		resp, err := httpClient.Post(server+"/api/auth/login", "application/json", bytes.NewReader(payload))
		if err != nil {
			return errMsg{fmt.Errorf("server not reachable: %w", err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusUnauthorized {
			return errMsg{fmt.Errorf("invalid credentials")}
		}
		if resp.StatusCode != http.StatusOK {
			return errMsg{fmt.Errorf("login failed with status %d", resp.StatusCode)}
		}

		var result struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil || result.Token == "" {
			return errMsg{fmt.Errorf("unexpected login response")}
		}
		return loginSuccessMsg{token: result.Token}
	}
}

func getJSON(server, token, path string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, server+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func loadMotors(server, token string) tea.Cmd {
	return func() tea.Msg {
		var zones []zone
		if err := getJSON(server, token, "/api/zones", &zones); err != nil {
			return errMsg{err}
		}

		msg := motorsLoadedMsg{zones: make(map[uint]string, len(zones))}
		for _, z := range zones {
			msg.zones[z.ID] = z.ZoneName
			var motors []motor
			if err := getJSON(server, token, fmt.Sprintf("/api/motors/%d", z.ID), &motors); err != nil {
				return errMsg{err}
			}
			msg.motors = append(msg.motors, motors...)
		}
		return msg
	}
}

// feedURL turns http(s)://host into ws(s)://host/ws
func feedURL(server string) (string, error) {
	u, err := url.Parse(server)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http", "":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws"
	u.RawQuery = ""
	return u.String(), nil
}

func connectFeed(server, token string) tea.Cmd {
	return func() tea.Msg {
		target, err := feedURL(server)
		if err != nil {
			return errMsg{err}
		}
		conn, _, err := websocket.DefaultDialer.Dial(target, http.Header{"Authorization": {"Bearer " + token}})
		if err != nil {
			return errMsg{fmt.Errorf("live feed: %w", err)}
		}
		return feedConnectedMsg{conn: conn}
	}
}

func waitForReading(conn *websocket.Conn) tea.Cmd {
	return func() tea.Msg {
		for {
			var f frame
			if err := conn.ReadJSON(&f); err != nil {
				return errMsg{fmt.Errorf("live feed closed: %w", err)}
			}
			if f.Event == "new_reading" {
				return readingMsg(f.Data)
			}
		}
	}
}
