package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/tickets/pkg/util"
	"gopkg.in/yaml.v3"
)

const environmentPrefix = "TICKETS_"

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Remote struct {
	Endpoint         string        `yaml:"endpoint" validate:"required,url"`
	StationsEndpoint string        `yaml:"stations_endpoint" validate:"required,url"`
	PurposeCode      string        `yaml:"purpose_code" validate:"required,alphanum"`
	UserAgent        string        `yaml:"user_agent"`
	Timeout          time.Duration `yaml:"timeout" validate:"gt=0"`
}

type Config struct {
	Remote        Remote `yaml:"remote"`
	Color         string `yaml:"color" validate:"oneof=auto always never"`
	InputEncoding string `yaml:"input_encoding"`
	// Stations is a station table to use instead of the downloaded or bundled one.
	Stations string `yaml:"stations"`
}

func Default() Config {
	return Config{
		Remote: Remote{
			Endpoint:         "https://kyfw.12306.cn/otn/lcxxcx/query",
			StationsEndpoint: "https://kyfw.12306.cn/otn/resources/js/framework/station_name.js",
			PurposeCode:      "ADULT",
			UserAgent:        "tickets/1.0",
			Timeout:          10 * time.Second,
		},
		Color: ColorAuto,
	}
}

// DefaultPath is $XDG_CONFIG_HOME/tickets/config.yml or its platform equivalent.
func DefaultPath() string {
	directory, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(directory, "tickets", "config.yml")
}

// Load builds the configuration from defaults, then the YAML file at path,
// then TICKETS_* environment variables. An empty path means DefaultPath, which
// is allowed to be missing.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
			log.Debug().Str("path", path).Msg("Loaded config file")
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvironment(util.GetPrefixedEnvironmentVariables(environmentPrefix)); err != nil {
		return cfg, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnvironment(env map[string]string) error {
	if value, exists := env["ENDPOINT"]; exists {
		c.Remote.Endpoint = value
	}
	if value, exists := env["STATIONS_ENDPOINT"]; exists {
		c.Remote.StationsEndpoint = value
	}
	if value, exists := env["PURPOSE_CODE"]; exists {
		c.Remote.PurposeCode = value
	}
	if value, exists := env["USER_AGENT"]; exists {
		c.Remote.UserAgent = value
	}
	if value, exists := env["TIMEOUT"]; exists {
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %sTIMEOUT: %w", environmentPrefix, err)
		}
		c.Remote.Timeout = timeout
	}
	if value, exists := env["COLOR"]; exists {
		c.Color = value
	}
	if value, exists := env["INPUT_ENCODING"]; exists {
		c.InputEncoding = value
	}
	if value, exists := env["STATIONS"]; exists {
		c.Stations = value
	}

	return nil
}

// ColorEnabled resolves the color mode for output written to out.
func (c Config) ColorEnabled(out *os.File) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if _, noColor := os.LookupEnv("NO_COLOR"); noColor || out == nil {
		return false
	}

	return isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())
}
