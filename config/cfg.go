package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"slices"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"twstyle/device"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	ThemeConfig struct {
		Path string `yaml:"path,omitempty" validate:"omitempty,filepath"`
	}

	DeviceConfig struct {
		Width        float64 `yaml:"width" validate:"gte=0"`
		Height       float64 `yaml:"height" validate:"gte=0"`
		ColorScheme  string  `yaml:"color_scheme" validate:"omitempty,oneof=light dark"`
		Platform     string  `yaml:"platform" validate:"omitempty,oneof=ios android windows macos web"`
		PixelDensity int     `yaml:"pixel_density" validate:"oneof=0 1 2"`
		FontScale    float64 `yaml:"font_scale" validate:"gte=0"`
	}

	PluginsConfig struct {
		Stylesheets []string          `yaml:"stylesheets" validate:"dive,required,filepath"`
		Utilities   map[string]string `yaml:"utilities" validate:"dive,keys,required,endkeys,required"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Theme     ThemeConfig    `yaml:"theme"`
		Device    DeviceConfig   `yaml:"device"`
		Plugins   PluginsConfig  `yaml:"plugins"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// Device converts the configured device context. Zero width or height
// leaves the dimensions unknown.
func (conf *DeviceConfig) Device() (device.Device, error) {
	scheme, err := device.ParseColorScheme(conf.ColorScheme)
	if err != nil {
		return device.Device{}, err
	}
	if conf.Platform != "" && !slices.Contains(device.Platforms, conf.Platform) {
		return device.Device{}, fmt.Errorf("unknown platform %q", conf.Platform)
	}
	d := device.Device{
		ColorScheme:  scheme,
		Platform:     conf.Platform,
		PixelDensity: conf.PixelDensity,
		FontScale:    conf.FontScale,
	}
	if conf.Width > 0 && conf.Height > 0 {
		d = d.WithDimensions(conf.Width, conf.Height)
	}
	return d, nil
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of the expanded configuration template and
// validates the result. An empty path yields the defaults.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare expands the configuration template.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
