// Package config provides a centralized entrypoint for the application parameters.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"go.yaml.in/yaml/v3"
)

const (
	// ModeDashboard renders an auto-refreshing dashboard on the terminal.
	ModeDashboard = "dashboard"
	// ModeService serves the latest dashboard snapshot over HTTP.
	ModeService = "service"
	// ModeLambda runs as an AWS Lambda triggered by scheduled events.
	ModeLambda = "lambda"
)

const (
	// AuthModeNone sends unauthenticated requests.
	AuthModeNone = "none"
	// AuthModeToken sends the API_TOKEN environment variable as a bearer token.
	AuthModeToken = "token"
	// AuthModeSSM fetches the bearer token from an SSM parameter.
	AuthModeSSM = "ssm"
)

var (
	// Global is a struct that contains the global configuration.
	Global global
	// API is a struct that contains the configuration of the webhook API client.
	API api
	// Refresh is a struct that contains the auto-refresh intervals.
	Refresh refresh
	// UI is a struct that contains the rendering limits.
	UI ui
	// Features is a struct that contains the feature toggles.
	Features features
	// Service is a struct that contains the configuration for the service mode.
	Service service
	// Archive is a struct that contains the snapshot archive configuration.
	Archive archive
)

type global struct {
	// Mode is the runtime mode of the application.
	Mode string `yaml:"mode,omitempty" default:"dashboard"`
	// Logging is a struct that contains the logging configuration.
	Logging struct {
		// Verbosity is the verbosity level of the application. It represents slog levels.
		Verbosity int `yaml:"verbosity,omitempty"`
		// CallerTrace is a flag that enables the caller trace in the logger.
		CallerTrace bool `yaml:"callerTrace,omitempty"`
	} `yaml:"logging,omitempty"`
}

type api struct {
	// BaseURL is prefixed to every endpoint path.
	BaseURL string `yaml:"baseURL,omitempty" default:"https://neuralstar.ru/webhook"`
	// SiteURL is the public website hosting token detail pages.
	SiteURL string `yaml:"siteURL,omitempty" default:"https://hocoton.ru"`
	// Timeout bounds every single attempt.
	Timeout time.Duration `yaml:"timeout,omitempty" default:"30s"`
	// RetryAttempts is the total number of attempts, including the first one.
	RetryAttempts int `yaml:"retryAttempts,omitempty" default:"3"`
	// RetryDelay is multiplied by the attempt number to obtain the wait before the next attempt.
	RetryDelay time.Duration `yaml:"retryDelay,omitempty" default:"1s"`
	// RateLimit caps outgoing attempts per second. Zero disables the limiter.
	RateLimit float64 `yaml:"rateLimit,omitempty"`
	// AuthMode selects the credentials provider. Supported values are 'none', 'token' and 'ssm'.
	AuthMode string `yaml:"authMode,omitempty" default:"none"`
	// SSMKey is the SSM parameter holding the bearer token when AuthMode is 'ssm'.
	SSMKey string `yaml:"ssmKey,omitempty"`
}

type refresh struct {
	Dashboard time.Duration `yaml:"dashboard,omitempty" default:"30s"`
	Tokens    time.Duration `yaml:"tokens,omitempty" default:"15s"`
	Workflows time.Duration `yaml:"workflows,omitempty" default:"1m"`
	Stats     time.Duration `yaml:"stats,omitempty" default:"30s"`
}

type ui struct {
	ItemsPerPage     int `yaml:"itemsPerPage,omitempty" default:"50"`
	MaxTokensDisplay int `yaml:"maxTokensDisplay,omitempty" default:"1000"`
}

// features are expressed as opt-outs so that a false value in the file is not overridden by defaults.
type features struct {
	DisableAutoRefresh   bool `yaml:"disableAutoRefresh,omitempty"`
	DisableNotifications bool `yaml:"disableNotifications,omitempty"`
}

type service struct {
	Path    string        `yaml:"path,omitempty" default:"/"`
	Addr    string        `yaml:"addr,omitempty"`
	Port    string        `yaml:"port,omitempty" default:"8080"`
	Timeout time.Duration `yaml:"timeout,omitempty" default:"5s"`
}

type archive struct {
	S3 struct {
		Enabled    bool   `yaml:"enabled,omitempty"`
		BucketName string `yaml:"bucketName,omitempty"`
		Prefix     string `yaml:"prefix,omitempty" default:"snapshots/"`
	} `yaml:"s3,omitempty"`
}

// Reset clears every configuration section.
func Reset() {
	Global = global{}
	API = api{}
	Refresh = refresh{}
	UI = ui{}
	Features = features{}
	Service = service{}
	Archive = archive{}
}

// SetDefaults sets the default values for the configuration.
func SetDefaults() error {
	return errors.Join(
		defaults.Set(&Global),
		defaults.Set(&API),
		defaults.Set(&Refresh),
		defaults.Set(&UI),
		defaults.Set(&Features),
		defaults.Set(&Service),
		defaults.Set(&Archive),
	)
}

// LoadFromFile loads the configuration from a file.
func LoadFromFile(path string) error {
	if len(path) == 0 {
		return nil
	}
	fstat, err := os.Stat(path)
	if err != nil {
		return nil //nolint:nilerr // If the file does not exist, we ignore it.
	}
	if fstat.IsDir() {
		return fmt.Errorf("configuration file %s is a directory", path)
	}
	if !fstat.Mode().IsRegular() {
		return fmt.Errorf("configuration file %s is not a regular file", path)
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}
	type all struct {
		Global   global   `yaml:"global,omitempty"`
		API      api      `yaml:"api,omitempty"`
		Refresh  refresh  `yaml:"refresh,omitempty"`
		UI       ui       `yaml:"ui,omitempty"`
		Features features `yaml:"features,omitempty"`
		Service  service  `yaml:"service,omitempty"`
		Archive  archive  `yaml:"archive,omitempty"`
	}
	var a all
	if err = yaml.Unmarshal(content, &a); err != nil {
		return fmt.Errorf("failed to unmarshal configuration file %s: %w", path, err)
	}
	Global = a.Global
	API = a.API
	Refresh = a.Refresh
	UI = a.UI
	Features = a.Features
	Service = a.Service
	Archive = a.Archive

	return nil
}
