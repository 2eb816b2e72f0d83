package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/devicelab-dev/detox-adapter/pkg/core"
)

const sampleConfig = `
defaultProfile: ios.sim
relaunchBeforeEach: true
reuseSession: false
logLevel: debug
profiles:
  ios.sim:
    server: ws://localhost:8099
    sessionId: smoke
    platform: ios
    app: build/Example.app
    device: iPhone 15 Pro
  android.emu:
    server: ws://localhost:8099
    sessionId: smoke
    platform: android
    app: build/example.apk
    device: Pixel_8
`

func writeConfig(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(sampleConfig), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "detox-adapter.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultProfile != "ios.sim" {
		t.Errorf("DefaultProfile = %q", cfg.DefaultProfile)
	}
	if !cfg.RelaunchBeforeEach {
		t.Error("RelaunchBeforeEach not set")
	}
	if len(cfg.Profiles) != 2 {
		t.Fatalf("got %d profiles", len(cfg.Profiles))
	}
	if p := cfg.Profiles["android.emu"]; p.Platform != "android" || p.Device != "Pixel_8" {
		t.Errorf("android profile = %+v", p)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "detox-adapter.yaml")
	if err := os.WriteFile(path, []byte("profiles: [not: a: mapping"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("got %v, want ErrInvalidConfig", err)
	}
}

func TestLoadFromDir(t *testing.T) {
	t.Run("yaml extension", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "detox-adapter.yaml")
		cfg, err := LoadFromDir(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.DefaultProfile != "ios.sim" {
			t.Errorf("DefaultProfile = %q", cfg.DefaultProfile)
		}
	})

	t.Run("yml extension", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "detox-adapter.yml")
		cfg, err := LoadFromDir(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.Profiles) != 2 {
			t.Errorf("got %d profiles", len(cfg.Profiles))
		}
	})

	t.Run("missing config returns empty", func(t *testing.T) {
		cfg, err := LoadFromDir(t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.Profiles) != 0 || cfg.DefaultProfile != "" {
			t.Errorf("expected empty config, got %+v", cfg)
		}
	})
}

func TestConfig_Profile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "detox-adapter.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("by name", func(t *testing.T) {
		p, err := cfg.Profile("android.emu")
		if err != nil {
			t.Fatal(err)
		}
		if p.Platform != "android" {
			t.Errorf("got %+v", p)
		}
	})

	t.Run("empty falls back to default", func(t *testing.T) {
		p, err := cfg.Profile("")
		if err != nil {
			t.Fatal(err)
		}
		if p.Platform != "ios" {
			t.Errorf("got %+v", p)
		}
	})

	t.Run("unknown name errors", func(t *testing.T) {
		_, err := cfg.Profile("nope")
		if !errors.Is(err, core.ErrUnknownProfile) {
			t.Errorf("got %v, want ErrUnknownProfile", err)
		}
	})

	t.Run("single profile is implicit default", func(t *testing.T) {
		single := &Config{Profiles: map[string]Profile{
			"only": {Platform: "android"},
		}}
		p, err := single.Profile("")
		if err != nil {
			t.Fatal(err)
		}
		if p.Platform != "android" {
			t.Errorf("got %+v", p)
		}
	})
}
