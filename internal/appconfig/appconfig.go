// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/mwiater/codsim/internal/simulation"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the path checked when the default path does not exist.
	legacyConfigPath = "config.json"
	// defaultLogFile is used when the config omits logFile.
	defaultLogFile = "codsim.log"
	// defaultChartFile is used when the config omits chartPath.
	defaultChartFile = "simulation_chart.png"
	// defaultHost is the interface the HTTP dashboard binds to.
	defaultHost = "127.0.0.1"
	// defaultPort is the HTTP dashboard port.
	defaultPort = 8501
)

// Config represents the top-level application configuration.
type Config struct {
	Strategy     string   `json:"strategy" mapstructure:"strategy"`
	TaskType     string   `json:"taskType" mapstructure:"taskType"`
	Model        string   `json:"model" mapstructure:"model"`
	TokenLimit   *int     `json:"tokenLimit,omitempty" mapstructure:"tokenLimit"`
	Seed         uint64   `json:"seed,omitempty" mapstructure:"seed"`
	Debug        bool     `json:"debug" mapstructure:"debug"`
	JSONMode     bool     `json:"jsonMode" mapstructure:"jsonMode"`
	ExportPath   string   `json:"export,omitempty" mapstructure:"export"`
	ChartPath    string   `json:"chart,omitempty" mapstructure:"chart"`
	HTMLPath     string   `json:"html,omitempty" mapstructure:"html"`
	LogFile      string   `json:"logFile,omitempty" mapstructure:"logFile"`
	Host         string   `json:"host,omitempty" mapstructure:"host"`
	Port         int      `json:"port,omitempty" mapstructure:"port"`
	AllowOrigins []string `json:"allowOrigins,omitempty" mapstructure:"allowOrigins"`
	ConfigPath   string   `json:"-" mapstructure:"-"`
}

// DefaultRequest returns the form selections the config starts with,
// falling back to the first option of every field and, when tokenLimit is
// absent, the default token limit. An explicit out-of-range limit, 0
// included, is an error.
func (c Config) DefaultRequest() (simulation.Request, error) {
	strategy := c.Strategy
	if strings.TrimSpace(strategy) == "" {
		strategy = string(simulation.Strategies[0])
	}
	taskType := c.TaskType
	if strings.TrimSpace(taskType) == "" {
		taskType = string(simulation.TaskTypes[0])
	}
	model := c.Model
	if strings.TrimSpace(model) == "" {
		model = string(simulation.Models[0])
	}
	limit := simulation.DefaultTokenLimit
	if c.TokenLimit != nil {
		limit = *c.TokenLimit
	}
	req, err := simulation.NewRequest(strategy, taskType, model, limit)
	if err != nil {
		return simulation.Request{}, fmt.Errorf("config defaults: %w", err)
	}
	return req, nil
}

// ExportFilePath returns where CSV exports are written.
func (c Config) ExportFilePath() string {
	if path := strings.TrimSpace(c.ExportPath); path != "" {
		return path
	}
	return "simulation_results.csv"
}

// ChartFilePath returns where PNG charts are written.
func (c Config) ChartFilePath() string {
	if path := strings.TrimSpace(c.ChartPath); path != "" {
		return path
	}
	return defaultChartFile
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return defaultLogFile
}

// ListenAddr returns the host:port the HTTP dashboard listens on.
func (c Config) ListenAddr() string {
	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = defaultHost
	}
	port := c.Port
	if port <= 0 {
		port = defaultPort
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// CORSOrigins returns the origins allowed to call the HTTP API.
func (c Config) CORSOrigins() []string {
	if len(c.AllowOrigins) > 0 {
		return c.AllowOrigins
	}
	addr := c.ListenAddr()
	return []string{"http://" + addr, "http://localhost:" + strconv.Itoa(c.portOrDefault())}
}

func (c Config) portOrDefault() int {
	if c.Port <= 0 {
		return defaultPort
	}
	return c.Port
}

// Load reads the application configuration from the specified path, with fallback to a legacy path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		if _, err := config.DefaultRequest(); err != nil {
			return Config{}, err
		}
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			config, legacyErr := loadFromPath(legacyConfigPath)
			if legacyErr == nil {
				if _, err := config.DefaultRequest(); err != nil {
					return Config{}, err
				}
				config.ConfigPath = legacyConfigPath
				return config, nil
			}
			if errors.Is(legacyErr, os.ErrNotExist) {
				return Config{}, fmt.Errorf("no configuration file found (searched %q and %q)", DefaultConfigPath, legacyConfigPath)
			}
			return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
		}
		return Config{}, fmt.Errorf("no configuration file found at %q", path)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}
