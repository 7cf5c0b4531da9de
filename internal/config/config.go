package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the gridpathd configuration.
type Config struct {
	Server struct {
		Addr                string `yaml:"addr"`
		ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
		WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
		IdleTimeoutSeconds  int    `yaml:"idle_timeout_seconds"`
	} `yaml:"server"`
	Logging struct {
		Level string `yaml:"level"`
		JSON  bool   `yaml:"json"`
	} `yaml:"logging"`
	Grid struct {
		Rows int `yaml:"rows"`
		Cols int `yaml:"cols"`
	} `yaml:"grid"`
	Search struct {
		Workers       int `yaml:"workers"`
		MaxExpansions int `yaml:"max_expansions"`
	} `yaml:"search"`
}

func defaultConfig() Config {
	var c Config
	c.Server.Addr = ":8080"
	c.Server.ReadTimeoutSeconds = 5
	c.Server.WriteTimeoutSeconds = 10
	c.Server.IdleTimeoutSeconds = 60
	c.Logging.Level = "info"
	c.Logging.JSON = false
	c.Grid.Rows = 6
	c.Grid.Cols = 6
	c.Search.Workers = 1
	c.Search.MaxExpansions = 0
	return c
}

// Load returns the defaults overlaid with the YAML file named by GRIDPATH_CONFIG
// and then with individual GRIDPATH_* environment variables.
func Load() (Config, error) {
	c := defaultConfig()
	if path := os.Getenv("GRIDPATH_CONFIG"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return c, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if v := os.Getenv("GRIDPATH_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("GRIDPATH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("GRIDPATH_LOG_JSON"); v == "1" || v == "true" {
		c.Logging.JSON = true
	}
	for name, dst := range map[string]*int{
		"GRIDPATH_ROWS":           &c.Grid.Rows,
		"GRIDPATH_COLS":           &c.Grid.Cols,
		"GRIDPATH_WORKERS":        &c.Search.Workers,
		"GRIDPATH_MAX_EXPANSIONS": &c.Search.MaxExpansions,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("%s: %w", name, err)
		}
		*dst = n
	}
	return c, c.Validate()
}

// Validate rejects settings the service cannot run with.
func (c Config) Validate() error {
	if c.Grid.Rows <= 0 || c.Grid.Cols <= 0 {
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", c.Grid.Rows, c.Grid.Cols)
	}
	if c.Search.MaxExpansions < 0 {
		return fmt.Errorf("max_expansions must not be negative, got %d", c.Search.MaxExpansions)
	}
	return nil
}
