// Package aws provides the Controller struct that wraps the AWS services used by the monitor:
// SSM Parameter Store for API credentials and S3 for archived dashboard snapshots.
package aws

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/smithy-go/logging"
	"github.com/isometry/token-monitor/internal/helpers"
	"github.com/pkg/errors"
)

// ObjectPutter is the subset of the S3 client used by the Controller.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ParameterGetter is the subset of the SSM client used by the Controller.
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Controller represents a wrapper for AWS services providing S3 and SSM functionality with logging support.
type Controller struct {
	logger *slog.Logger

	config    *aws.Config
	s3Client  ObjectPutter
	ssmClient ParameterGetter
}

// Option defines a function type used to configure an instance of the Controller struct.
type Option func(*Controller)

// NewController initializes a Controller with customizable options and default configurations if unspecified.
// The default AWS configuration is only loaded when a client was not supplied through the options.
func NewController(ctx context.Context, opts ...Option) (*Controller, error) {
	_inst := &Controller{}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	_inst.logger = _inst.logger.With("controller", "aws")
	if _inst.s3Client != nil && _inst.ssmClient != nil {
		return _inst, nil
	}
	if _inst.config == nil {
		_inst.logger.Debug("loading default AWS configuration...")
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load AWS configuration")
		}
		cfg.Logger = newAWSLogger(_inst.logger)
		_inst.config = &cfg
	}

	if _inst.s3Client == nil {
		_inst.s3Client = s3.NewFromConfig(*_inst.config)
	}
	if _inst.ssmClient == nil {
		_inst.ssmClient = ssm.NewFromConfig(*_inst.config)
	}
	return _inst, nil
}

// GetSecret retrieves a secret value from SSM Parameter Store using the provided key.
// If encrypted is true, the secret is returned decrypted.
func (a *Controller) GetSecret(ctx context.Context, key string, encrypted bool) (string, error) {
	if key == "" {
		return "", errors.New("missing SSM parameter key")
	}
	a.logger.With("key", key).Debug("fetching SSM secret...")
	ssmResponse, err := a.ssmClient.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(key),
		WithDecryption: aws.Bool(encrypted),
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to load SSM parameters")
	}
	if ssmResponse.Parameter == nil || ssmResponse.Parameter.Value == nil {
		return "", errors.Errorf("SSM parameter %s has no value", key)
	}
	return *ssmResponse.Parameter.Value, nil
}

// PutSnapshot uploads a JSON document to bucket under key.
func (a *Controller) PutSnapshot(ctx context.Context, bucket, key string, body []byte) error {
	if bucket == "" {
		return errors.New("missing S3 bucket name")
	}
	a.logger.Debug("uploading snapshot...", slog.String("bucket", bucket), slog.String("key", key), slog.Int("bytes", len(body)))
	_, err := a.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return errors.Wrap(err, "failed to put object to S3")
	}
	return nil
}

// SnapshotKey builds the object key of a snapshot taken at the given time: <prefix>YYYY/MM/DD/<RFC3339Nano>.<id>.json.
func SnapshotKey(prefix string, at time.Time, id string) string {
	at = at.UTC()
	name := fmt.Sprintf("%s.%s.json", at.Format(time.RFC3339Nano), id)
	key := path.Join(at.Format("2006/01/02"), name)
	if prefix == "" {
		return key
	}
	return strings.TrimSuffix(prefix, "/") + "/" + key
}

type awsLogger struct {
	logger *slog.Logger
}

func newAWSLogger(logger *slog.Logger) *awsLogger {
	return &awsLogger{logger}
}

func (a *awsLogger) Logf(classification logging.Classification, format string, args ...any) {
	a.logger.Debug(fmt.Sprintf("[%v] %s", classification, fmt.Sprintf(format, args...)))
}
