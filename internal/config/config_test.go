package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"VIGIL_ADDR", "VIGIL_ALLOWED_ORIGINS", "VIGIL_STORAGE", "VIGIL_DATA_DIR", "VIGIL_POLL_REFRESH", "VIGIL_ASSIST_DELAY"} {
		t.Setenv(k, "")
	}

	c := FromEnv()
	if c.Addr != "127.0.0.1:8080" || c.Storage != StorageFile || c.DataDir != ".vigil" {
		t.Errorf("config = %+v", c)
	}
	if len(c.AllowedOrigins) != 1 || c.AllowedOrigins[0] != "http://localhost:8081" {
		t.Errorf("origins = %v", c.AllowedOrigins)
	}
	if c.PollRefresh != time.Minute || c.AssistDelay != 2*time.Second {
		t.Errorf("durations = %s %s", c.PollRefresh, c.AssistDelay)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("VIGIL_STORAGE", "Postgres")
	t.Setenv("VIGIL_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("VIGIL_ASSIST_DELAY", "250ms")
	t.Setenv("VIGIL_POLL_REFRESH", "soon")

	c := FromEnv()
	if c.Storage != StoragePostgres {
		t.Errorf("Storage = %s", c.Storage)
	}
	if len(c.AllowedOrigins) != 2 || c.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("origins = %v", c.AllowedOrigins)
	}
	if c.AssistDelay != 250*time.Millisecond {
		t.Errorf("AssistDelay = %s", c.AssistDelay)
	}
	if c.PollRefresh != time.Minute {
		t.Errorf("bad duration should fall back, got %s", c.PollRefresh)
	}
}
