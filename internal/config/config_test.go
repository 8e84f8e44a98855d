package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
)

// These tests share viper's global instance and must not run in parallel.

func TestLoadSources(t *testing.T) {
	defaults := Config{
		EphemerisFile:    "ephemeris.toml",
		GazetteerFile:    "gazetteer.toml",
		EphemerisTimeout: 10 * time.Second,
		AspectWorkers:    4,
	}

	tests := []struct {
		name  string
		setup func(t *testing.T)
		want  func(c *Config)
	}{
		{
			name:  "built-in defaults",
			setup: func(*testing.T) {},
			want:  func(*Config) {},
		},
		{
			name: "environment",
			setup: func(t *testing.T) {
				t.Setenv("ASTROLABE_EPHEMERIS_FILE", "/data/sky.toml")
				t.Setenv("ASTROLABE_EPHEMERIS_TIMEOUT", "250ms")
				t.Setenv("ASTROLABE_ASPECT_WORKERS", "12")
				t.Setenv("ASTROLABE_VERBOSE", "true")
				viper.SetEnvPrefix("ASTROLABE")
				viper.AutomaticEnv()
			},
			want: func(c *Config) {
				c.EphemerisFile = "/data/sky.toml"
				c.EphemerisTimeout = 250 * time.Millisecond
				c.AspectWorkers = 12
				c.Verbose = true
			},
		},
		{
			name: "config file",
			setup: func(t *testing.T) {
				path := filepath.Join(t.TempDir(), ".astrolabe.yaml")
				doc := "gazetteer_file: places.toml\ntelemetry_file: trail.jsonl\njson: true\naspect_workers: 2\n"
				if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
					t.Fatal(err)
				}
				viper.SetConfigFile(path)
				if err := viper.ReadInConfig(); err != nil {
					t.Fatalf("ReadInConfig: %v", err)
				}
			},
			want: func(c *Config) {
				c.GazetteerFile = "places.toml"
				c.TelemetryFile = "trail.jsonl"
				c.JSON = true
				c.AspectWorkers = 2
			},
		},
		{
			name: "explicit set beats the environment",
			setup: func(t *testing.T) {
				t.Setenv("ASTROLABE_ASPECT_WORKERS", "12")
				viper.SetEnvPrefix("ASTROLABE")
				viper.AutomaticEnv()
				viper.Set("aspect_workers", 6)
			},
			want: func(c *Config) { c.AspectWorkers = 6 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)
			tt.setup(t)

			got, err := Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			want := defaults
			tt.want(&want)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		key string
		val any
	}{
		{"aspect_workers", 0},
		{"aspect_workers", -3},
		{"ephemeris_timeout", -time.Second},
		{"ephemeris_file", ""},
		{"gazetteer_file", ""},
	}
	for _, tt := range tests {
		viper.Reset()
		viper.Set(tt.key, tt.val)
		if _, err := Load(); err == nil || !strings.Contains(err.Error(), tt.key) {
			t.Errorf("Load with %s=%v: error %v, want one naming %s", tt.key, tt.val, err, tt.key)
		}
	}
	viper.Reset()
}

func TestValidateZeroTimeoutAllowed(t *testing.T) {
	c := Config{EphemerisFile: "a", GazetteerFile: "b", AspectWorkers: 1}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate with no timeout: %v", err)
	}
}
