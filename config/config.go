// Package config loads the application configuration: YAML file with
// environment overrides. A missing file or .env is not an error; defaults
// cover everything.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/studymesh/kgraph/physics"
	"github.com/studymesh/kgraph/render"
)

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig   `yaml:"server"`
	Service ServiceConfig  `yaml:"service"`
	Physics physics.Config `yaml:"physics"`
	Render  render.Options `yaml:"render"`
}

// ServerConfig configures the HTTP server hosting the viewer.
type ServerConfig struct {
	Port  int  `yaml:"port"`
	Debug bool `yaml:"debug"`
}

// ServiceConfig points at the external knowledge-graph service.
type ServiceConfig struct {
	BaseURL string `yaml:"base_url"`
	// Timeout is set from the "timeout" key as a duration string ("10s");
	// see UnmarshalYAML.
	Timeout time.Duration `yaml:"-"`
}

// UnmarshalYAML decodes the service config, accepting "10s"-style duration
// strings for timeout, which yaml cannot decode into time.Duration directly.
func (sc *ServiceConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain ServiceConfig
	if err := value.Decode((*plain)(sc)); err != nil {
		return err
	}
	var raw struct {
		Timeout string `yaml:"timeout"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("parsing service timeout: %w", err)
		}
		sc.Timeout = d
	}
	return nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Service: ServiceConfig{
			BaseURL: "http://localhost:9090",
			Timeout: 10 * time.Second,
		},
		Physics: physics.DefaultConfig(),
		Render:  render.DefaultOptions(),
	}
}

// Load reads the YAML file at path (if it exists) over the defaults, then
// applies environment overrides. Environment variables win.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("KGRAPH_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("KGRAPH_DEBUG"); v != "" {
		cfg.Server.Debug = v == "1" || v == "true"
	}
	if v := os.Getenv("KGRAPH_SERVICE_URL"); v != "" {
		cfg.Service.BaseURL = v
	}
	if v := os.Getenv("KGRAPH_SERVICE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Service.Timeout = d
		}
	}
}
