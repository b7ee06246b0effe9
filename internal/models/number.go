package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Number is a nullable decimal. The API sends amounts either as JSON numbers or as numeric strings.
type Number struct {
	Value float64
	Valid bool
}

// NewNumber returns a valid Number holding v.
func NewNumber(v float64) Number {
	return Number{Value: v, Valid: true}
}

// UnmarshalJSON accepts a JSON number, a numeric string or null.
// Non-finite strings such as "NaN" or "Inf" decode as null; hexadecimal floats are rejected.
func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = Number{}
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return errors.Wrap(err, "invalid numeric string")
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*n = Number{}
			return nil
		}
	}
	if strings.ContainsAny(raw, "xX") {
		return errors.Errorf("invalid number %q", raw)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid number %q", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		*n = Number{}
		return nil
	}
	*n = Number{Value: v, Valid: true}
	return nil
}

// MarshalJSON encodes an invalid Number as null.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}
