package cmd

import (
	"time"

	"github.com/isometry/token-monitor/internal/config"
	"github.com/isometry/token-monitor/internal/helpers"
)

var envMapString = map[*string]boundEnvVar[string]{
	&config.Global.Mode: {
		Name:        "mode",
		Description: "The application runtime mode. Possible values are 'dashboard', 'service' and 'lambda'",
		Short:       helpers.Ptr("m"),
	},
	&config.API.BaseURL: {
		Name:        "api-base-url",
		Description: "The base URL of the webhook API, prefixed to every endpoint",
		Short:       helpers.Ptr("u"),
	},
	&config.API.SiteURL: {
		Name:        "api-site-url",
		Description: "The public website linked from token cards",
	},
	&config.API.AuthMode: {
		Name:        "api-auth-mode",
		Description: "Authentication credentials provider. Supported values are 'none', 'token' and 'ssm'",
		Short:       helpers.Ptr("A"),
	},
	&config.API.SSMKey: {
		Name:        "api-ssm-key",
		Description: "The SSM parameter key to use when fetching the API token",
	},
	&config.Archive.S3.BucketName: {
		Name:        "archive-s3-bucket",
		Description: "The S3 bucket to use when archiving dashboard snapshots",
		Env:         helpers.Ptr("SNAPSHOT_S3_BUCKET"),
	},
	&config.Archive.S3.Prefix: {
		Name:        "archive-s3-prefix",
		Description: "The key prefix of archived dashboard snapshots",
	},
}

var envMapBool = map[*bool]boundEnvVar[bool]{
	&config.Global.Logging.CallerTrace: {
		Name:        "verbosity-caller-trace",
		Description: "Enable caller trace in logs",
		Short:       helpers.Ptr("V"),
	},
	&config.Features.DisableAutoRefresh: {
		Name:        "disable-auto-refresh",
		Description: "Load the dashboard once instead of refreshing it periodically",
	},
	&config.Features.DisableNotifications: {
		Name:        "disable-notifications",
		Description: "Do not print notifications on stderr",
	},
	&config.Archive.S3.Enabled: {
		Name:        "archive-s3",
		Description: "Enable S3 archiving of dashboard snapshots",
		Env:         helpers.Ptr("SNAPSHOT_S3_UPLOAD"),
	},
}

var envMapInt = map[*int]boundEnvVar[int]{
	&config.Global.Logging.Verbosity: {
		Name:        "verbosity",
		Description: "Increase logger verbosity (default WarnLevel)",
		Short:       helpers.Ptr("v"),
		Count:       true,
	},
	&config.API.RetryAttempts: {
		Name:        "api-retry-attempts",
		Description: "The maximum number of attempts per API request",
		Short:       helpers.Ptr("r"),
	},
	&config.UI.ItemsPerPage: {
		Name:        "ui-items-per-page",
		Description: "The page size of token listings",
	},
	&config.UI.MaxTokensDisplay: {
		Name:        "ui-max-tokens-display",
		Description: "The maximum number of token cards rendered on the dashboard",
	},
}

var envMapFloat = map[*float64]boundEnvVar[float64]{
	&config.API.RateLimit: {
		Name:        "api-rate-limit",
		Description: "The maximum number of API attempts per second (0 disables the limiter)",
	},
}

var envMapDuration = map[*time.Duration]boundEnvVar[time.Duration]{
	&config.API.Timeout: {
		Name:        "api-timeout",
		Description: "The timeout of a single API attempt",
	},
	&config.API.RetryDelay: {
		Name:        "api-retry-delay",
		Description: "The base delay between attempts, multiplied by the attempt number",
	},
	&config.Refresh.Dashboard: {
		Name:        "refresh-dashboard",
		Description: "The auto-refresh interval of the dashboard and the snapshot cache TTL of the service",
	},
	&config.Refresh.Tokens: {
		Name:        "refresh-tokens",
		Description: "The refresh interval of 'tokens --watch'",
	},
	&config.Refresh.Workflows: {
		Name:        "refresh-workflows",
		Description: "The refresh interval of 'status workflows --watch'",
	},
	&config.Refresh.Stats: {
		Name:        "refresh-stats",
		Description: "The refresh interval of 'stats --watch'",
	},
}
