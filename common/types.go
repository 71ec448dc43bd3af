// Package common holds the amount and decimal types shared by messages and fees.
package common

import (
	"fmt"

	"github.com/cockroachdb/apd"
	"github.com/holiman/uint256"
)

// Unsigned 256-bit integer, emitted as a quoted decimal string in JSON.
type Uint256 struct {
	i uint256.Int
}

func NewUint256(v uint64) Uint256 {
	var u Uint256
	u.i.SetUint64(v)
	return u
}

// ParseUint256 parses a base-10 unsigned integer.
func ParseUint256(s string) (Uint256, error) {
	i, err := uint256.FromDecimal(s)
	if err != nil {
		return Uint256{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Uint256{i: *i}, nil
}

func (u Uint256) String() string {
	return u.i.Dec()
}

func (u Uint256) IsZero() bool {
	return u.i.IsZero()
}

func (u Uint256) Cmp(o Uint256) int {
	return u.i.Cmp(&o.i)
}

func (u Uint256) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *Uint256) UnmarshalText(text []byte) error {
	v, err := ParseUint256(string(text))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

func (u Uint256) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s"`, u.String())), nil
}

// UnmarshalJSON accepts both quoted and bare decimal integers.
func (u *Uint256) UnmarshalJSON(text []byte) error {
	return u.UnmarshalText(Unquote(text))
}

// Unquote strips one pair of surrounding double quotes. Anything else,
// including an unbalanced quote, is returned unchanged for the caller's
// parser to reject.
func Unquote(text []byte) []byte {
	if n := len(text); n >= 2 && text[0] == '"' && text[n-1] == '"' {
		return text[1 : n-1]
	}
	return text
}

// Fixed-point decimal that keeps its scale, so 1.50 stays "1.50". The text
// form never uses an exponent.
type Dec struct {
	d apd.Decimal
}

// NewDec returns coeff * 10^exp.
func NewDec(coeff int64, exp int32) Dec {
	return Dec{d: *apd.New(coeff, exp)}
}

// ParseDec parses a finite decimal such as "-1.25" or "0.000001".
func ParseDec(s string) (Dec, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Dec{}, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	if d.Form != apd.Finite {
		return Dec{}, fmt.Errorf("invalid decimal %q: not finite", s)
	}
	return Dec{d: *d}, nil
}

// SDKPrecision is the number of fractional digits of the Cosmos SDK's sdk.Dec.
const SDKPrecision = 18

// WithPrecision rescales d to exactly places fractional digits, failing if
// that would drop non-zero digits.
func (d Dec) WithPrecision(places uint32) (Dec, error) {
	var res apd.Decimal
	ctx := apd.BaseContext.WithPrecision(1000)
	cond, err := ctx.Quantize(&res, &d.d, -int32(places))
	if err != nil {
		return Dec{}, fmt.Errorf("rescale %s: %w", d, err)
	}
	if cond.Inexact() {
		return Dec{}, fmt.Errorf("rescale %s to %d places loses precision", d, places)
	}
	return Dec{d: res}, nil
}

func (d Dec) String() string {
	return d.d.Text('f')
}

func (d Dec) IsNegative() bool {
	return d.d.Negative && !d.d.IsZero()
}

func (d Dec) Cmp(o Dec) int {
	return d.d.Cmp(&o.d)
}

func (d Dec) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Dec) UnmarshalText(text []byte) error {
	v, err := ParseDec(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Dec) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s"`, d.String())), nil
}

func (d *Dec) UnmarshalJSON(text []byte) error {
	return d.UnmarshalText(Unquote(text))
}
