// Package cjson produces canonical JSON: the deterministic byte encoding that
// Cosmos SDK chains recompute when verifying legacy amino JSON signatures.
//
// Values are first marshalled with encoding/json, so types control their wire
// shape through MarshalJSON/MarshalText as usual. The result is then decoded
// into a generic tree and re-emitted with object keys sorted, no insignificant
// whitespace and numbers in plain (non-exponential) notation. All determinism
// rules live in this one pass.
package cjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/apd"
)

// EncodeError is returned when a value has no canonical JSON representation.
type EncodeError struct {
	Reason string
	Err    error
}

func (e *EncodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cjson: %s: %v", e.Reason, e.Err)
	}
	return "cjson: " + e.Reason
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// IsEncodeError checks whether err is an EncodeError and returns it.
func IsEncodeError(err error) (*EncodeError, bool) {
	var e *EncodeError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Marshal returns the canonical JSON encoding of v.
func Marshal(v interface{}) ([]byte, error) {
	// encoding/json silently replaces invalid UTF-8 with U+FFFD, so check first.
	if err := checkStrings(v); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, &EncodeError{Reason: "marshal", Err: err}
	}
	return Canonicalize(raw)
}

// Canonicalize re-encodes a JSON document in canonical form.
func Canonicalize(raw []byte) ([]byte, error) {
	if !utf8.Valid(raw) {
		return nil, &EncodeError{Reason: "invalid UTF-8 in JSON text"}
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree interface{}
	if err := dec.Decode(&tree); err != nil {
		return nil, &EncodeError{Reason: "parse", Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &EncodeError{Reason: "trailing data after JSON value"}
	}

	var buf bytes.Buffer
	if err := encode(&buf, tree); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encode(buf *bytes.Buffer, v interface{}) error {
	switch v := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if v {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case json.Number:
		n, err := plainNumber(v)
		if err != nil {
			return err
		}
		buf.WriteString(n)
	case string:
		return encodeString(buf, v)
	case []interface{}:
		buf.WriteByte('[')
		for i, elem := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encode(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encode(buf, v[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return &EncodeError{Reason: fmt.Sprintf("unexpected tree node %T", v)}
	}
	return nil
}

// encodeString escapes s exactly like encoding/json, which is what the chain
// uses when it recomputes sign bytes.
func encodeString(buf *bytes.Buffer, s string) error {
	if !utf8.ValidString(s) {
		return &EncodeError{Reason: fmt.Sprintf("invalid UTF-8 in string %q", s)}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return &EncodeError{Reason: "string", Err: err}
	}
	buf.Write(b)
	return nil
}

// plainNumber rewrites a JSON number without an exponent.
func plainNumber(n json.Number) (string, error) {
	s := n.String()
	if !strings.ContainsAny(s, "eE") {
		return s, nil
	}
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return "", &EncodeError{Reason: fmt.Sprintf("number %q", s), Err: err}
	}
	return d.Text('f'), nil
}
