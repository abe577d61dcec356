package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultEndpoint = "http://localhost:8080/upload"
	DefaultLogFile  = "debug.log"
	defaultPath     = "./daemonsend.yaml"
)

// Config holds the client's runtime settings.
type Config struct {
	// Endpoint is the daemon's upload URL.
	Endpoint string `yaml:"endpoint"`
	// Timeout bounds a single upload. Zero means no limit.
	Timeout time.Duration `yaml:"timeout"`
	// Exclusive refuses a new submission while one is in flight.
	Exclusive bool   `yaml:"exclusive"`
	LogFile   string `yaml:"log_file"`
}

func Default() *Config {
	return &Config{
		Endpoint: DefaultEndpoint,
		LogFile:  DefaultLogFile,
	}
}

// Load applies defaults, then the YAML file at path, then environment
// overrides. An empty path falls back to DAEMONSEND_CONFIG or
// ./daemonsend.yaml, either of which may be absent.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = getenv("DAEMONSEND_CONFIG", defaultPath)
		explicit = os.Getenv("DAEMONSEND_CONFIG") != ""
	}

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// ENV override
	if v := os.Getenv("DAEMON_URL"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("DAEMONSEND_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}

	return cfg, nil
}

// Validate checks that the endpoint is an absolute http(s) URL.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", c.Endpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid endpoint %q: want an absolute http(s) URL", c.Endpoint)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout %s", c.Timeout)
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}

	return def
}
