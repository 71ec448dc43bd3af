package cjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrMissingField is returned by UnmarshalStrict for absent or null keys.
var ErrMissingField = errors.New("missing field")

// UnmarshalStrict decodes the JSON object in data into v, rejecting keys v
// has no field for. Every key in required must be present and non-null, so
// a misspelled or forgotten field is an error rather than a zero value.
//
// v must not itself implement json.Unmarshaler with a call back into
// UnmarshalStrict; decode into a plain alias type instead.
func UnmarshalStrict(data []byte, v interface{}, required ...string) error {
	if len(required) > 0 {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return err
		}
		for _, key := range required {
			raw, ok := fields[key]
			if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
				return fmt.Errorf("%w %q", ErrMissingField, key)
			}
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("cjson: trailing data after JSON value")
	}
	return nil
}
