package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rupor-github/gencfg"

	"twstyle/device"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if cfg.Theme.Path != "" {
		t.Errorf("Default theme path = %q, want empty", cfg.Theme.Path)
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("Default console level = %q, want normal", cfg.Logging.ConsoleLogger.Level)
	}

	d, err := cfg.Device.Device()
	if err != nil {
		t.Fatalf("Device() error = %v", err)
	}
	if d.Width != nil || d.Height != nil || d.ColorScheme != device.SchemeNone {
		t.Errorf("Default device = %+v, want unknown context", d)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
device:
  width: 800
  height: 600
  color_scheme: dark
  platform: ios
  pixel_density: 2
plugins:
  stylesheets: ["` + filepath.ToSlash(filepath.Join(tmpDir, "extra.css")) + `"]
  utilities:
    btn: "px-4 py-2 rounded"
logging:
  console:
    level: debug
  file:
    level: debug
    destination: ` + filepath.ToSlash(filepath.Join(tmpDir, "logs", "test.log")) + `
    mode: append
reporting:
  destination: ` + filepath.ToSlash(filepath.Join(tmpDir, "report.zip")) + `
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if got := cfg.Plugins.Utilities["btn"]; got != "px-4 py-2 rounded" {
		t.Errorf("Utilities[btn] = %q, want %q", got, "px-4 py-2 rounded")
	}
	if len(cfg.Plugins.Stylesheets) != 1 {
		t.Errorf("Stylesheets = %v, want one entry", cfg.Plugins.Stylesheets)
	}
	if cfg.Logging.FileLogger.Mode != "append" {
		t.Errorf("File log mode = %q, want append", cfg.Logging.FileLogger.Mode)
	}

	d, err := cfg.Device.Device()
	if err != nil {
		t.Fatalf("Device() error = %v", err)
	}
	if d.Width == nil || *d.Width != 800 || d.Height == nil || *d.Height != 600 {
		t.Errorf("Device dimensions = %v x %v, want 800 x 600", d.Width, d.Height)
	}
	if d.ColorScheme != device.SchemeDark || d.Platform != "ios" || d.PixelDensity != 2 {
		t.Errorf("Device = %+v", d)
	}
}

func TestLoadConfiguration_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "version: 1\ndevice:\n  width: 1\n  invalid indent\n"},
		{"unknown field", "version: 1\nunknown_field: true\n"},
		{"wrong version", "version: 2\n"},
		{"bad color scheme", "version: 1\ndevice:\n  color_scheme: sepia\n"},
		{"bad platform", "version: 1\ndevice:\n  platform: tvos\n"},
		{"bad density", "version: 1\ndevice:\n  pixel_density: 3\n"},
		{"negative width", "version: 1\ndevice:\n  width: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write config file: %v", err)
			}
			if _, err := LoadConfiguration(configPath); err == nil {
				t.Error("LoadConfiguration() expected error")
			}
		})
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	if _, err := LoadConfiguration("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if _, err := unmarshalConfig(data, &Config{}, true); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg := &Config{
		Version: 1,
		Device:  DeviceConfig{Width: 375, Height: 812, ColorScheme: "light"},
		Plugins: PluginsConfig{Utilities: map[string]string{"card": "p-4 rounded-lg"}},
	}

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	cfg2, err := unmarshalConfig(data, &Config{}, false)
	if err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}
	if cfg2.Device != cfg.Device {
		t.Errorf("Device after dump/load = %+v, want %+v", cfg2.Device, cfg.Device)
	}
	if cfg2.Plugins.Utilities["card"] != "p-4 rounded-lg" {
		t.Errorf("Utilities after dump/load = %v", cfg2.Plugins.Utilities)
	}
}

func TestDeviceConfig_Device(t *testing.T) {
	t.Run("one dimension leaves viewport unknown", func(t *testing.T) {
		d, err := (&DeviceConfig{Width: 500}).Device()
		if err != nil {
			t.Fatalf("Device() error = %v", err)
		}
		if d.Viewport() != nil {
			t.Errorf("Viewport() = %v, want nil", d.Viewport())
		}
	})
	t.Run("unknown scheme", func(t *testing.T) {
		if _, err := (&DeviceConfig{ColorScheme: "sepia"}).Device(); err == nil {
			t.Error("Device() expected error")
		}
	})
}
