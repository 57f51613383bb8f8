package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validYAML = `
server:
  host: "0.0.0.0"
  port: 8080
storage:
  path: "/var/lib/repcycle/state.db"
workout:
  weekly_goal: 4
  week_start: sunday
auth:
  api_key: "test-key-123"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Storage.Path != "/var/lib/repcycle/state.db" {
		t.Errorf("storage.path = %q, want %q", cfg.Storage.Path, "/var/lib/repcycle/state.db")
	}
	if cfg.Workout.WeeklyGoal != 4 {
		t.Errorf("workout.weekly_goal = %d, want 4", cfg.Workout.WeeklyGoal)
	}
	if cfg.Workout.WeekStartDay() != time.Sunday {
		t.Errorf("week start = %v, want Sunday", cfg.Workout.WeekStartDay())
	}
	if cfg.Auth.APIKey != "test-key-123" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "test-key-123")
	}
}

// TestDefaults verifies that an almost-empty config is filled with usable
// defaults instead of failing validation.
func TestDefaults(t *testing.T) {
	cfg, err := Load(writeTemp(t, "server:\n  host: localhost\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want default 8080", cfg.Server.Port)
	}
	if cfg.Storage.Path != "repcycle.db" {
		t.Errorf("storage.path = %q, want default repcycle.db", cfg.Storage.Path)
	}
	if cfg.Workout.WeeklyGoal != 5 {
		t.Errorf("workout.weekly_goal = %d, want default 5", cfg.Workout.WeeklyGoal)
	}
	if cfg.Workout.WeekStartDay() != time.Monday {
		t.Errorf("week start = %v, want default Monday", cfg.Workout.WeekStartDay())
	}
}

// TestEnvOverride verifies that REPCYCLE_ env vars take precedence over YAML values.
// This ensures deployments can override config via environment.
func TestEnvOverride(t *testing.T) {
	t.Setenv("REPCYCLE_STORAGE_PATH", "/tmp/override.db")
	t.Setenv("REPCYCLE_SERVER_PORT", "9999")
	t.Setenv("REPCYCLE_WORKOUT_WEEKLY_GOAL", "3")
	t.Setenv("REPCYCLE_AUTH_API_KEY", "env-key")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Path != "/tmp/override.db" {
		t.Errorf("storage.path = %q, want %q", cfg.Storage.Path, "/tmp/override.db")
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("server.port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Workout.WeeklyGoal != 3 {
		t.Errorf("workout.weekly_goal = %d, want 3", cfg.Workout.WeeklyGoal)
	}
	if cfg.Auth.APIKey != "env-key" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "env-key")
	}
	// Unchanged fields should keep YAML values.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
}

// TestValidateRejectsBadWeekStart verifies validation catches an unsupported
// week_start value.
func TestValidateRejectsBadWeekStart(t *testing.T) {
	if _, err := Load(writeTemp(t, "workout:\n  week_start: thursday\n")); err == nil {
		t.Fatal("expected error for week_start thursday")
	}
}

// TestValidateRejectsBadWeeklyGoal verifies the weekly goal bounds.
func TestValidateRejectsBadWeeklyGoal(t *testing.T) {
	if _, err := Load(writeTemp(t, "workout:\n  weekly_goal: 9\n")); err == nil {
		t.Fatal("expected error for weekly_goal 9")
	}
}

// TestLoadMissingFile verifies a missing config path surfaces an error.
func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
