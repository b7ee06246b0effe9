package cmd

import (
	"context"
	"os"

	"github.com/isometry/token-monitor/internal/api"
	"github.com/isometry/token-monitor/internal/config"
	"github.com/isometry/token-monitor/internal/controllers/aws"
	"github.com/isometry/token-monitor/internal/credentials"
	"github.com/isometry/token-monitor/internal/dashboard"
	"github.com/isometry/token-monitor/internal/helpers"
	"github.com/isometry/token-monitor/internal/metrics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// app holds the components shared by the commands. It is built once per command execution.
type app struct {
	client    *api.Client
	registry  *prometheus.Registry
	metrics   *metrics.Collector
	awsClient *aws.Controller
}

// apiConfig returns the immutable client configuration derived from the loaded configuration.
func apiConfig() api.Config {
	return api.Config{
		BaseURL:       config.API.BaseURL,
		Timeout:       config.API.Timeout,
		RetryAttempts: config.API.RetryAttempts,
		RetryDelay:    config.API.RetryDelay,
	}
}

func needsAWS() bool {
	return config.API.AuthMode == config.AuthModeSSM || config.Archive.S3.Enabled
}

func newApp(ctx context.Context) (*app, error) {
	a := &app{registry: prometheus.NewRegistry()}
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.metrics = metrics.NewCollector(a.registry)

	if needsAWS() {
		logger.Debug("creating AWS controller...")
		awsClient, err := aws.NewController(ctx, aws.WithLogger(logger.With("component", "aws")))
		if err != nil {
			return nil, errors.Wrap(err, "failed to create AWS controller")
		}
		a.awsClient = awsClient
	}

	logger.Debug("resolving API credentials...")
	opts := []credentials.Option{
		credentials.WithLogger(logger.With("component", "credentials")),
		credentials.WithToken(os.Getenv(credentials.TokenEnv)),
		credentials.WithSSMKey(config.API.SSMKey),
	}
	if a.awsClient != nil {
		opts = append(opts, credentials.WithSecrets(a.awsClient))
	}
	provider, err := credentials.NewProvider(config.API.AuthMode, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create credentials provider")
	}
	httpClient, err := provider.HTTPClient(ctx)
	if err != nil {
		return nil, err
	}

	logger.Debug("creating API client...")
	clientOpts := []api.Option{
		api.WithLogger(logger.With("component", "api")),
		api.WithHTTPClient(httpClient),
		api.WithMetrics(a.metrics),
	}
	if limiter := helpers.NewLimiter(config.API.RateLimit); limiter != nil {
		clientOpts = append(clientOpts, api.WithRateLimiter(limiter))
	}
	a.client, err = api.NewClient(apiConfig(), clientOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create API client")
	}
	return a, nil
}

// archiver returns the snapshot archiver, or nil when archiving is disabled.
func (a *app) archiver() (dashboard.Archiver, error) {
	if !config.Archive.S3.Enabled {
		return nil, nil
	}
	if config.Archive.S3.BucketName == "" {
		return nil, errors.New("snapshot archiving is enabled but no S3 bucket is configured")
	}
	return dashboard.NewS3Archiver(a.awsClient, config.Archive.S3.BucketName, config.Archive.S3.Prefix), nil
}

func (a *app) loader(opts ...dashboard.Option) *dashboard.Loader {
	opts = append([]dashboard.Option{
		dashboard.WithLogger(logger.With("component", "dashboard")),
		dashboard.WithMetrics(a.metrics),
	}, opts...)
	return dashboard.NewLoader(a.client, opts...)
}

func renderer() dashboard.Renderer {
	return dashboard.Renderer{
		SiteURL:   config.API.SiteURL,
		MaxTokens: config.UI.MaxTokensDisplay,
	}
}
