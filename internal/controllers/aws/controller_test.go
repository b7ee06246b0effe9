package aws_test

import (
	"context"
	"io"
	"testing"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/isometry/token-monitor/internal/controllers/aws"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	f.body, _ = io.ReadAll(params.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

type fakeSSM struct {
	values map[string]string
	input  *ssm.GetParameterInput
}

func (f *fakeSSM) GetParameter(_ context.Context, params *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.input = params
	v, ok := f.values[sdkaws.ToString(params.Name)]
	if !ok {
		return nil, errors.New("ParameterNotFound")
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: sdkaws.String(v)}}, nil
}

func newController(t *testing.T, s3Client *fakeS3, ssmClient *fakeSSM) *aws.Controller {
	t.Helper()
	c, err := aws.NewController(context.Background(), aws.WithS3Client(s3Client), aws.WithSSMClient(ssmClient))
	require.NoError(t, err)
	return c
}

func TestGetSecret(t *testing.T) {
	testCases := []struct {
		Name     string
		Key      string
		Expected string
		Error    bool
	}{
		{Name: "found", Key: "/token-monitor/api-token", Expected: "s3cr3t"},
		{Name: "missing", Key: "/token-monitor/unknown", Error: true},
		{Name: "empty_key", Key: "", Error: true},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			ssmClient := &fakeSSM{values: map[string]string{"/token-monitor/api-token": "s3cr3t"}}
			c := newController(t, &fakeS3{}, ssmClient)

			v, err := c.GetSecret(context.Background(), tc.Key, true)
			if tc.Error {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.Expected, v)
			assert.True(t, sdkaws.ToBool(ssmClient.input.WithDecryption))
		})
	}
}

func TestPutSnapshot(t *testing.T) {
	s3Client := &fakeS3{}
	c := newController(t, s3Client, &fakeSSM{})

	err := c.PutSnapshot(context.Background(), "snapshots-bucket", "snapshots/a.json", []byte(`{"stats":{}}`))
	require.NoError(t, err)
	assert.Equal(t, "snapshots-bucket", sdkaws.ToString(s3Client.input.Bucket))
	assert.Equal(t, "snapshots/a.json", sdkaws.ToString(s3Client.input.Key))
	assert.Equal(t, "application/json", sdkaws.ToString(s3Client.input.ContentType))
	assert.JSONEq(t, `{"stats":{}}`, string(s3Client.body))

	assert.Error(t, c.PutSnapshot(context.Background(), "", "k", nil))

	s3Client.err = errors.New("AccessDenied")
	err = c.PutSnapshot(context.Background(), "snapshots-bucket", "k", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to put object to S3")
}

func TestSnapshotKey(t *testing.T) {
	at := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	testCases := []struct {
		Name     string
		Prefix   string
		Expected string
	}{
		{Name: "no_prefix", Prefix: "", Expected: "2024/01/15/2024-01-15T10:30:00Z.abc.json"},
		{Name: "prefix", Prefix: "snapshots/", Expected: "snapshots/2024/01/15/2024-01-15T10:30:00Z.abc.json"},
		{Name: "prefix_without_slash", Prefix: "snapshots", Expected: "snapshots/2024/01/15/2024-01-15T10:30:00Z.abc.json"},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, aws.SnapshotKey(tc.Prefix, at, "abc"))
		})
	}
}
