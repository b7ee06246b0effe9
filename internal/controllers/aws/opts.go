package aws

import (
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// WithLogger sets a custom slog.Logger instance for the Controller struct to use for logging operations.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Controller) {
		a.logger = logger
	}
}

// WithConfig uses cfg instead of the default AWS configuration chain.
func WithConfig(cfg aws.Config) Option {
	return func(a *Controller) {
		a.config = &cfg
	}
}

// WithS3Client replaces the S3 client.
func WithS3Client(client ObjectPutter) Option {
	return func(a *Controller) {
		a.s3Client = client
	}
}

// WithSSMClient replaces the SSM client.
func WithSSMClient(client ParameterGetter) Option {
	return func(a *Controller) {
		a.ssmClient = client
	}
}
