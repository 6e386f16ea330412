package model

import "time"

type APIConfig struct {
	URL            string        `mapstructure:"url"`
	Authorization  string        `mapstructure:"authorization"`
	DeviceType     string        `mapstructure:"device_type"`
	ReloadInterval time.Duration `mapstructure:"reload_interval"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type DiscoveryConfig struct {
	Manufacturer string `mapstructure:"manufacturer"`
	NamesFile    string `mapstructure:"names_file"`
	Scenes       bool   `mapstructure:"scenes"` // advertise <id>@AutoJudge scene endpoints
}

type ThermostatConfig struct {
	// Expression over x (the requested setpoint) yielding the air flow level.
	AirFlowFormula string `mapstructure:"airflow_formula"`
}

type MQTTConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Broker      string `mapstructure:"broker"`
	ClientID    string `mapstructure:"client_id"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	TopicPrefix string `mapstructure:"topic_prefix"`
	QoS         byte   `mapstructure:"qos"`
}

type InfluxDBConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	Token   string `mapstructure:"token"`
	Org     string `mapstructure:"org"`
	Bucket  string `mapstructure:"bucket"`
}

type Config struct {
	API        APIConfig        `mapstructure:"api"`
	Timezone   string           `mapstructure:"timezone"`
	Log        LogConfig        `mapstructure:"log"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	Discovery  DiscoveryConfig  `mapstructure:"discovery"`
	Thermostat ThermostatConfig `mapstructure:"thermostat"`
	MQTT       MQTTConfig       `mapstructure:"mqtt"`
	InfluxDB   InfluxDBConfig   `mapstructure:"influxdb"`
}

// EndpointName is the optional display data of a discovered device.
type EndpointName struct {
	FriendlyName string `json:"friendly_name"`
	Description  string `json:"description,omitempty"`
}

// EndpointNames maps device ids to display data.
type EndpointNames map[DeviceID]EndpointName
