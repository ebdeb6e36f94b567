package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"launchpad/internal/config"
	"launchpad/internal/content"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ContentMode() != content.ModePackaged {
		t.Fatalf("mode = %v", cfg.ContentMode())
	}
	if cfg.WindowWidth != 800 || cfg.WindowHeight != 600 {
		t.Fatalf("size = %dx%d", cfg.WindowWidth, cfg.WindowHeight)
	}
	if !cfg.IsHardwareAccelerationDisabled() || !cfg.IsNodeIntegration() || cfg.ContextIsolation {
		t.Fatalf("web defaults: %+v", cfg)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"mode":"development","windowWidth":0,"windowHeight":900,"quitOnAllClosed":false,"disableHardwareAcceleration":false}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ContentMode() != content.ModeDevelopment {
		t.Fatalf("mode = %v", cfg.ContentMode())
	}
	if cfg.WindowWidth != 800 || cfg.WindowHeight != 900 {
		t.Fatalf("size = %dx%d", cfg.WindowWidth, cfg.WindowHeight)
	}
	if cfg.ShouldQuitOnAllClosed("linux") {
		t.Fatal("explicit quitOnAllClosed=false ignored")
	}
	if cfg.IsHardwareAccelerationDisabled() {
		t.Fatal("explicit disableHardwareAcceleration=false ignored")
	}
}

func TestLoad_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg == nil || cfg.Title != "Launchpad" {
		t.Fatalf("defaults not returned on error: %+v", cfg)
	}
}

func TestQuitPolicy_PlatformDefault(t *testing.T) {
	cfg := config.Default()
	for goos, want := range map[string]bool{"linux": true, "windows": true, "darwin": false} {
		if got := cfg.ShouldQuitOnAllClosed(goos); got != want {
			t.Errorf("%s: got %v, want %v", goos, got, want)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want content.Mode
		url  string
	}{
		{"none", nil, content.ModePackaged, content.DevServerURL},
		{"node env", map[string]string{"NODE_ENV": "development"}, content.ModeDevelopment, content.DevServerURL},
		{"own env wins", map[string]string{"NODE_ENV": "development", "LAUNCHPAD_ENV": "production"}, content.ModePackaged, content.DevServerURL},
		{"dev url", map[string]string{"LAUNCHPAD_ENV": "development", "LAUNCHPAD_DEV_URL": "http://localhost:3000"}, content.ModeDevelopment, "http://localhost:3000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.ApplyEnv(func(k string) string { return tc.env[k] })
			if cfg.ContentMode() != tc.want {
				t.Fatalf("mode = %v, want %v", cfg.ContentMode(), tc.want)
			}
			if cfg.DevServerURL != tc.url {
				t.Fatalf("dev url = %q", cfg.DevServerURL)
			}
		})
	}
}
