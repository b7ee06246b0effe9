package dashboard_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/isometry/token-monitor/internal/dashboard"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	bucket, key string
	body        []byte
	err         error
}

func (f *fakeStore) PutSnapshot(_ context.Context, bucket, key string, body []byte) error {
	f.bucket, f.key, f.body = bucket, key, body
	return f.err
}

func TestS3Archiver(t *testing.T) {
	store := &fakeStore{}
	archiver := dashboard.NewS3Archiver(store, "token-monitor-snapshots", "snapshots/")

	key, err := archiver.Archive(context.Background(), sampleSnapshot())
	require.NoError(t, err)
	assert.Equal(t, key, store.key)
	assert.Equal(t, "token-monitor-snapshots", store.bucket)
	assert.True(t, strings.HasPrefix(key, "snapshots/2024/01/15/2024-01-15T10:30:00Z."))
	assert.True(t, strings.HasSuffix(key, ".json"))

	var decoded dashboard.Snapshot
	require.NoError(t, json.Unmarshal(store.body, &decoded))
	assert.Equal(t, int64(1234567), decoded.Stats.ActiveTokens)
	assert.Len(t, decoded.Tokens, 2)
	assert.False(t, decoded.Tokens[1].LiquidityUSD.Valid)
}

func TestS3ArchiverFailure(t *testing.T) {
	archiver := dashboard.NewS3Archiver(&fakeStore{err: errors.New("AccessDenied")}, "b", "")
	_, err := archiver.Archive(context.Background(), sampleSnapshot())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to archive snapshot: AccessDenied")

	_, err = archiver.Archive(context.Background(), nil)
	assert.Error(t, err)
}
