package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/uiprobe/modules/s3_report"
)

// DefaultDriver is used when Config.Driver is empty.
const DefaultDriver = "playwright"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Paths are .hcl files or directories holding the run configuration and
	// scenario scripts.
	Paths []string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	Workers         int

	// Driver names the registered browser driver.
	Driver string
	// Projects restricts the run to the named projects. Empty runs all.
	Projects        []string
	Headed          bool
	InstallBrowsers bool

	// ReportPath, when set, receives the JSON report.
	ReportPath string
	// S3 uploads the JSON report when S3.Bucket is set.
	S3 s3_report.Config
	// SocketIOURL streams results to a socket.io endpoint when set.
	SocketIOURL string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Paths) == 0 {
		return nil, errors.New("at least one configuration path is required")
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("healthcheck port out of range: %d", cfg.HealthcheckPort)
	}
	if cfg.Driver == "" {
		cfg.Driver = DefaultDriver
	}
	return &cfg, nil
}
