// Package config loads the client configuration from an optional YAML file
// with environment variable overrides. Defaults cover every field, including
// the ordered endpoint strategy lists, so the binary runs with no file at
// all.
package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tahasaad555/pfe2-sub001/internal/remote"
)

// Duration is a time.Duration that unmarshals from YAML strings such as
// "10s" or "1m30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q", value.Value)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config captures every tunable of the client.
type Config struct {
	BaseURL        string   `yaml:"base_url"`
	Token          string   `yaml:"token"`
	AttemptTimeout Duration `yaml:"attempt_timeout"`
	SQLiteDSN      string   `yaml:"sqlite_dsn"`
	LogLevel       string   `yaml:"log_level"`
	Domain         string   `yaml:"domain"`

	// GridStartHour/GridEndHour bound the timetable grid's hourly slots.
	GridStartHour int `yaml:"grid_start_hour"`
	GridEndHour   int `yaml:"grid_end_hour"`

	// RefreshCron, when set, schedules periodic re-synchronization.
	RefreshCron string `yaml:"refresh_cron"`

	Strategies StrategyConfig `yaml:"strategies"`
}

// StrategyConfig holds the ordered endpoint strategy lists per logical
// operation. Order is significant: earlier entries are tried first.
type StrategyConfig struct {
	ReservationsFetch []remote.Strategy `yaml:"reservations_fetch"`
	ReservationCancel []remote.Strategy `yaml:"reservation_cancel"`
	ReservationEdit   []remote.Strategy `yaml:"reservation_edit"`
	TimetableFetch    []remote.Strategy `yaml:"timetable_fetch"`
	TimetableExport   []remote.Strategy `yaml:"timetable_export"`
}

// Default returns the configuration used when no file or overrides are
// present. The strategy lists mirror the backend's known route shapes, most
// specific first.
func Default() Config {
	return Config{
		BaseURL:        "http://localhost:8080",
		AttemptTimeout: Duration(10 * time.Second),
		SQLiteDSN:      "file:campusroom.db?_foreign_keys=on",
		LogLevel:       "info",
		Domain:         "campusroom.edu",
		GridStartHour:  8,
		GridEndHour:    18,
		Strategies: StrategyConfig{
			ReservationsFetch: []remote.Strategy{
				{Name: "professor", Method: http.MethodGet, Path: "/api/professor/reservations"},
				{Name: "professor-alt", Method: http.MethodGet, Path: "/api/professor/my-reservations"},
				{Name: "direct", Method: http.MethodGet, Path: "/api/reservations"},
			},
			ReservationCancel: []remote.Strategy{
				{Name: "professor", Method: http.MethodPut, Path: "/api/professor/reservations/{id}/cancel"},
				{Name: "generic", Method: http.MethodPut, Path: "/api/reservations/{id}/cancel"},
				{Name: "student", Method: http.MethodPut, Path: "/api/student/reservations/{id}/cancel"},
			},
			ReservationEdit: []remote.Strategy{
				{Name: "professor", Method: http.MethodPut, Path: "/api/professor/reservations/{id}"},
				{Name: "generic", Method: http.MethodPut, Path: "/api/reservations/{id}"},
			},
			TimetableFetch: []remote.Strategy{
				{Name: "me", Method: http.MethodGet, Path: "/api/timetable/me"},
				{Name: "student", Method: http.MethodGet, Path: "/api/student/timetable"},
			},
			TimetableExport: []remote.Strategy{
				{Name: "user-scoped", Method: http.MethodGet, Path: "/api/timetable/export/{userId}?format={format}"},
				{Name: "generic", Method: http.MethodGet, Path: "/api/timetable/export?format={format}"},
			},
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (when
// path is non-empty and the file exists), and environment overrides, in that
// order of precedence.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	invalid := make([]string, 0, 2)

	if base := strings.TrimSpace(os.Getenv("CAMPUSROOM_BASE_URL")); base != "" {
		cfg.BaseURL = base
	}
	if token := strings.TrimSpace(os.Getenv("CAMPUSROOM_TOKEN")); token != "" {
		cfg.Token = token
	}
	if dsn := strings.TrimSpace(os.Getenv("CAMPUSROOM_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}
	if level := strings.TrimSpace(os.Getenv("CAMPUSROOM_LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}
	if timeoutValue := strings.TrimSpace(os.Getenv("CAMPUSROOM_ATTEMPT_TIMEOUT")); timeoutValue != "" {
		timeout, err := time.ParseDuration(timeoutValue)
		if err != nil || timeout <= 0 {
			invalid = append(invalid, "CAMPUSROOM_ATTEMPT_TIMEOUT")
		} else {
			cfg.AttemptTimeout = Duration(timeout)
		}
	}
	for _, env := range []struct {
		name string
		dest *int
	}{
		{"CAMPUSROOM_GRID_START_HOUR", &cfg.GridStartHour},
		{"CAMPUSROOM_GRID_END_HOUR", &cfg.GridEndHour},
	} {
		value := strings.TrimSpace(os.Getenv(env.name))
		if value == "" {
			continue
		}
		hour, err := strconv.Atoi(value)
		if err != nil || hour < 0 || hour > 24 {
			invalid = append(invalid, env.name)
		} else {
			*env.dest = hour
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("config: invalid environment values: %s", strings.Join(invalid, ", "))
	}
	if cfg.GridEndHour <= cfg.GridStartHour {
		return Config{}, fmt.Errorf("config: grid_end_hour must be greater than grid_start_hour")
	}

	return cfg, nil
}
