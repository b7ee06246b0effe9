// Package credentials builds the HTTP client used to reach the API for the configured authentication mode.
package credentials

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/isometry/token-monitor/internal/config"
	"github.com/isometry/token-monitor/internal/helpers"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// TokenEnv is the environment variable holding the bearer token in token mode.
const TokenEnv = "API_TOKEN"

// SecretGetter fetches a secret by key, e.g. from SSM Parameter Store.
type SecretGetter interface {
	GetSecret(ctx context.Context, key string, encrypted bool) (string, error)
}

// Provider resolves credentials and wraps them into an *http.Client.
type Provider struct {
	authMode string
	token    string
	ssmKey   string
	secrets  SecretGetter
	base     http.RoundTripper
	logger   *slog.Logger
}

// Option defines a function type used to configure an instance of the Provider struct.
type Option func(*Provider)

// NewProvider initializes a Provider for authMode. Supported modes are none, token and ssm.
func NewProvider(authMode string, opts ...Option) (*Provider, error) {
	_inst := &Provider{authMode: strings.TrimSpace(strings.ToLower(authMode))}
	if _inst.authMode == "" {
		_inst.authMode = config.AuthModeNone
	}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	if _inst.base == nil {
		_inst.base = http.DefaultTransport
	}

	switch _inst.authMode {
	case config.AuthModeNone:
	case config.AuthModeToken:
		if _inst.token == "" {
			return nil, errors.Errorf("missing [%s]", TokenEnv)
		}
	case config.AuthModeSSM:
		if _inst.ssmKey == "" {
			return nil, errors.New("missing SSM parameter key")
		}
		if _inst.secrets == nil {
			return nil, errors.New("missing secrets store for ssm auth mode")
		}
	default:
		return nil, errors.Errorf("unsupported auth mode: %s", authMode)
	}
	return _inst, nil
}

// HTTPClient returns a client attaching the resolved bearer token, if any, to every request.
func (p *Provider) HTTPClient(ctx context.Context) (*http.Client, error) {
	transport := &loggingRoundTripper{logger: p.logger, next: p.base}
	token, err := p.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return &http.Client{Transport: transport}, nil
	}

	p.logger.Debug("attaching bearer token to API requests...", slog.String("authMode", p.authMode))
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Transport: transport})
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return oauth2.NewClient(ctx, src), nil
}

// Token returns the bearer token for the configured mode. It is empty in none mode.
func (p *Provider) Token(ctx context.Context) (string, error) {
	switch p.authMode {
	case config.AuthModeToken:
		return p.token, nil
	case config.AuthModeSSM:
		p.logger.Debug("retrieving credentials from SSM...")
		secret, err := p.secrets.GetSecret(ctx, p.ssmKey, true)
		if err != nil {
			return "", errors.Wrap(err, "failed to fetch credentials from SSM")
		}
		return parseSecret(secret)
	default:
		return "", nil
	}
}

// parseSecret accepts either the raw token or a JSON document carrying it under "token".
func parseSecret(secret string) (string, error) {
	secret = strings.TrimSpace(secret)
	if !strings.HasPrefix(secret, "{") {
		if secret == "" {
			return "", errors.New("empty credentials")
		}
		return secret, nil
	}
	var doc struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal([]byte(secret), &doc); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal credentials")
	}
	if doc.Token == "" {
		return "", errors.New("credentials document has no token")
	}
	return doc.Token, nil
}

type loggingRoundTripper struct {
	logger *slog.Logger
	next   http.RoundTripper
}

// RoundTrip logs the request and response. The caller's request is never modified.
func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	var container any
	if req.Body != nil && req.Body != http.NoBody {
		body, err := l.peekBody(req)
		if err != nil {
			return nil, err
		}
		if req.GetBody == nil {
			req = req.Clone(req.Context())
			req.Body = io.NopCloser(bytes.NewReader(body))
		}
		_ = json.Unmarshal(body, &container)
	}
	l.logger.Log(req.Context(), slog.Level(-8), "sending request", slog.String("method", req.Method), slog.String("url", req.URL.String()), slog.Any("body", container))
	resp, err := l.next.RoundTrip(req)
	if err != nil {
		l.logger.Log(req.Context(), slog.Level(-8), "failed to send request", slog.Any("error", err))
		return nil, err
	}
	l.logger.Log(req.Context(), slog.Level(-8), "received response", slog.String("status", resp.Status))
	return resp, nil
}

// peekBody reads a copy of the request body through GetBody when available, and drains req.Body otherwise.
func (l *loggingRoundTripper) peekBody(req *http.Request) ([]byte, error) {
	rc := req.Body
	if req.GetBody != nil {
		copied, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		rc = copied
	}
	defer func() {
		_ = rc.Close()
	}()
	return io.ReadAll(rc)
}
