package address

import (
	"errors"
	"fmt"
)

// DecodeError is returned when an address cannot be parsed.
type DecodeError struct {
	Input  string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("address: decode %q: %s: %v", e.Input, e.Reason, e.Err)
	}
	return fmt.Sprintf("address: decode %q: %s", e.Input, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsDecodeError checks whether err is a DecodeError and returns it.
func IsDecodeError(err error) (*DecodeError, bool) {
	var d *DecodeError
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}
