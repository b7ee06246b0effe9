package credentials

import (
	"log/slog"
	"net/http"
)

// WithToken sets the bearer token used in token mode.
func WithToken(token string) Option {
	return func(p *Provider) {
		p.token = token
	}
}

// WithSSMKey sets the SSM parameter holding the bearer token in ssm mode.
func WithSSMKey(key string) Option {
	return func(p *Provider) {
		p.ssmKey = key
	}
}

// WithSecrets sets the secrets store queried in ssm mode.
func WithSecrets(secrets SecretGetter) Option {
	return func(p *Provider) {
		p.secrets = secrets
	}
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(p *Provider) {
		p.base = rt
	}
}

// WithLogger sets a custom logger for the Provider.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}
