package dashboard

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/isometry/token-monitor/internal/controllers/aws"
	"github.com/pkg/errors"
)

// Archiver persists snapshots and returns the location they were written to.
type Archiver interface {
	Archive(ctx context.Context, snapshot *Snapshot) (string, error)
}

// ObjectStore stores JSON documents. *aws.Controller implements it.
type ObjectStore interface {
	PutSnapshot(ctx context.Context, bucket, key string, body []byte) error
}

// S3Archiver writes snapshots to an S3 bucket, one object per snapshot.
type S3Archiver struct {
	store  ObjectStore
	bucket string
	prefix string
}

// NewS3Archiver returns an archiver writing to bucket under prefix.
func NewS3Archiver(store ObjectStore, bucket, prefix string) *S3Archiver {
	return &S3Archiver{store: store, bucket: bucket, prefix: prefix}
}

// Archive uploads snapshot as JSON and returns its object key.
func (a *S3Archiver) Archive(ctx context.Context, snapshot *Snapshot) (string, error) {
	if snapshot == nil {
		return "", errors.New("nil snapshot")
	}
	body, err := json.Marshal(snapshot)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode snapshot")
	}
	key := aws.SnapshotKey(a.prefix, snapshot.TakenAt, uuid.NewString())
	if err = a.store.PutSnapshot(ctx, a.bucket, key, body); err != nil {
		return "", errors.Wrap(err, "failed to archive snapshot")
	}
	return key, nil
}
