package api

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

// Decode unmarshals the data field of an envelope into T. Empty or null data yields the zero value.
func Decode[T any](raw json.RawMessage) (T, error) {
	var v T
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return v, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, errors.Wrapf(err, "failed to decode %T", v)
	}
	return v, nil
}

func requestAs[T any](ctx context.Context, c *Client, endpoint string, opts RequestOptions) (*T, error) {
	raw, err := c.Request(ctx, endpoint, opts)
	if err != nil {
		return nil, err
	}
	v, err := Decode[T](raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
