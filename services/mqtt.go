package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"motor-monitor/entities"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const mqttConnectTimeout = 10 * time.Second

// MQTTPublisher mirrors readings to <prefix>/<motor_id> at QoS 0.
type MQTTPublisher struct {
	client mqtt.Client
	prefix string
	logger *slog.Logger
}

func NewMQTTPublisher(broker, clientID, prefix string, logger *slog.Logger) (*MQTTPublisher, error) {
	logger = logger.With("component", "mqtt")

	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Warn("mqtt connection lost", "error", err)
	})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(mqttConnectTimeout) {
		return nil, fmt.Errorf("connect to mqtt broker %s: timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to mqtt broker %s: %w", broker, err)
	}
	logger.Info("mqtt connected", "broker", broker, "prefix", prefix)
	return &MQTTPublisher{client: client, prefix: prefix, logger: logger}, nil
}

func (p *MQTTPublisher) Topic(motorID uint) string {
	return fmt.Sprintf("%s/%d", p.prefix, motorID)
}

func (p *MQTTPublisher) Publish(ctx context.Context, reading entities.Reading) error {
	payload, err := json.Marshal(reading)
	if err != nil {
		return err
	}
	token := p.client.Publish(p.Topic(reading.MotorID), 0, false, payload)
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
