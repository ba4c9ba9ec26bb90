package config

import "time"

type Config struct {
	FusionCfg   *FusionConfig
	HubCfg      *HubConfig
	PushCfg     *PushConfig
	MqttCfg     *MqttConfig
	DatabaseURL string
	Schedule    string
	LogLevel    string
}

// FusionConfig points the telemetry client at the vendor platform.
type FusionConfig struct {
	BaseURL     string
	CookiesFile string
	InverterDn  string
	MeterDn     string
}

// HubConfig addresses the Domoticz instance readings are forwarded to.
type HubConfig struct {
	Host           string
	Username       string
	Password       string
	ActivePowerIdx int
	MeterIdx       int
	Timeout        time.Duration
}

// PushConfig addresses the push-notification service. An empty Token
// disables notifications.
type PushConfig struct {
	URL   string
	Token string
}

type MqttConfig struct {
	Host     string
	Username string
	Password string
}
