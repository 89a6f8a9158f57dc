package util

import (
	"go.uber.org/zap"

	"smartlife2mqtt/internal/config"
)

func LoadTestConfig() config.Config {
	return config.Config{
		LogLevel: zap.DebugLevel,
		SmartLife: config.SmartLifeConfig{
			AccessID:  "test_access_id",
			AccessKey: "test_access_key",
			UserID:    "test_user",
			Region:    "eu",
		},
		MQTT: config.MQTTConfig{
			Host:             "localhost",
			Port:             1883,
			BaseTopic:        "smartlife2mqtt",
			HADiscoveryTopic: "homeassistant",
		},
		MonitorConfig: config.MonitorConfig{
			PollIntervalMillis: 5000,
		},
		Port: 8080,
	}
}
