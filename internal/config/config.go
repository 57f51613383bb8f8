package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Workout   WorkoutConfig   `yaml:"workout"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

type CatalogConfig struct {
	// Path optionally names a YAML file with extra workout templates.
	Path string `yaml:"path"`
}

type WorkoutConfig struct {
	WeeklyGoal int    `yaml:"weekly_goal"`
	WeekStart  string `yaml:"week_start"`
}

type AuthConfig struct {
	// APIKey guards mutating endpoints; empty disables the check.
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// WeekStartDay maps the configured week_start name to a weekday.
func (w WorkoutConfig) WeekStartDay() time.Weekday {
	switch strings.ToLower(w.WeekStart) {
	case "sunday":
		return time.Sunday
	case "saturday":
		return time.Saturday
	default:
		return time.Monday
	}
}

// Load reads config from a YAML file, fills in defaults, then applies
// environment variable overrides. Env vars use the prefix REPCYCLE_ and
// underscore-separated paths:
//
//	REPCYCLE_SERVER_HOST, REPCYCLE_SERVER_PORT,
//	REPCYCLE_STORAGE_PATH, REPCYCLE_CATALOG_PATH,
//	REPCYCLE_WORKOUT_WEEKLY_GOAL, REPCYCLE_WORKOUT_WEEK_START,
//	REPCYCLE_AUTH_API_KEY
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = "repcycle.db"
	}
	if cfg.Workout.WeeklyGoal == 0 {
		cfg.Workout.WeeklyGoal = 5
	}
	if cfg.Workout.WeekStart == "" {
		cfg.Workout.WeekStart = "monday"
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("REPCYCLE_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("REPCYCLE_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("REPCYCLE_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("REPCYCLE_CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("REPCYCLE_WORKOUT_WEEKLY_GOAL"); v != "" {
		if goal, err := strconv.Atoi(v); err == nil {
			cfg.Workout.WeeklyGoal = goal
		}
	}
	if v := os.Getenv("REPCYCLE_WORKOUT_WEEK_START"); v != "" {
		cfg.Workout.WeekStart = v
	}
	if v := os.Getenv("REPCYCLE_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch strings.ToLower(c.Workout.WeekStart) {
	case "monday", "sunday", "saturday":
	default:
		return fmt.Errorf("workout.week_start %q must be monday, sunday, or saturday", c.Workout.WeekStart)
	}
	if c.Workout.WeeklyGoal < 1 || c.Workout.WeeklyGoal > 7 {
		return fmt.Errorf("workout.weekly_goal %d must be between 1 and 7", c.Workout.WeeklyGoal)
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	return nil
}
