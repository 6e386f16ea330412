package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"

	"echonet-alexa-bridge/internal/domain/model"
)

const DefaultTimezone = "Asia/Tokyo"

var defaults = map[string]any{
	"api.url":                    "",
	"api.authorization":          "",
	"api.device_type":            "homeAirConditioner",
	"api.reload_interval":        time.Second,
	"timezone":                   DefaultTimezone,
	"log.level":                  "info",
	"log.format":                 "json",
	"http.addr":                  ":8080",
	"discovery.manufacturer":     "ECHONET Lite Client",
	"discovery.names_file":       "",
	"discovery.scenes":           false,
	"thermostat.airflow_formula": "x - 49",
	"mqtt.enabled":               false,
	"mqtt.broker":                "",
	"mqtt.client_id":             "echonet-alexa-bridge",
	"mqtt.username":              "",
	"mqtt.password":              "",
	"mqtt.topic_prefix":          "echonet",
	"mqtt.qos":                   0,
	"influxdb.enabled":           false,
	"influxdb.url":               "",
	"influxdb.token":             "",
	"influxdb.org":               "",
	"influxdb.bucket":            "",
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing priority. Environment keys are the upper-case
// key with dots replaced by underscores, e.g. API_URL.
func Load(path string) (*model.Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg model.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Validate(cfg *model.Config) error {
	var errs []error
	if cfg.API.URL == "" {
		errs = append(errs, errors.New("api.url (API_URL) is required"))
	}
	if cfg.API.Authorization == "" {
		errs = append(errs, errors.New("api.authorization (API_AUTHORIZATION) is required"))
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	switch cfg.Log.Format {
	case "", "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or console, got %q", cfg.Log.Format))
	}
	if cfg.MQTT.Enabled {
		if cfg.MQTT.Broker == "" {
			errs = append(errs, errors.New("mqtt.broker is required when mqtt is enabled"))
		}
		if cfg.MQTT.QoS > 2 {
			errs = append(errs, fmt.Errorf("mqtt.qos must be 0, 1 or 2, got %d", cfg.MQTT.QoS))
		}
	}
	if cfg.InfluxDB.Enabled && (cfg.InfluxDB.URL == "" || cfg.InfluxDB.Bucket == "") {
		errs = append(errs, errors.New("influxdb.url and influxdb.bucket are required when influxdb is enabled"))
	}
	return errors.Join(errs...)
}

// Location returns the time zone used for report timestamps and scene decisions.
func Location(cfg *model.Config) (*time.Location, error) {
	if cfg.Timezone == "" {
		return time.LoadLocation(DefaultTimezone)
	}
	return time.LoadLocation(cfg.Timezone)
}
