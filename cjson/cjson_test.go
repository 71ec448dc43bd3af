package cjson

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

type inner struct {
	Zeta  string `json:"zeta"`
	Alpha string `json:"alpha"`
}

type outer struct {
	Memo   string          `json:"memo"`
	Inner  inner           `json:"inner"`
	Opt    *inner          `json:"opt,omitempty"`
	Nil    []string        `json:"nil"`
	Blob   json.RawMessage `json:"blob"`
	Amount json.Number     `json:"amount"`
}

func TestSortedKeysNoWhitespace(t *testing.T) {
	out, err := Marshal(outer{
		Memo:   "hi",
		Inner:  inner{Zeta: "z", Alpha: "a"},
		Blob:   json.RawMessage(`{ "b": 1, "a": [ 2, 3 ] }`),
		Amount: "10",
	})
	require.NoError(t, err)
	require.Equal(t, `{"amount":10,"blob":{"a":[2,3],"b":1},"inner":{"alpha":"a","zeta":"z"},"memo":"hi","nil":null}`, string(out))
}

func TestConstructionOrderIndependent(t *testing.T) {
	var a, b inner
	a.Zeta = "1"
	a.Alpha = "2"
	b.Alpha = "2"
	b.Zeta = "1"

	outA, err := Marshal(a)
	require.NoError(t, err)
	outB, err := Marshal(b)
	require.NoError(t, err)
	require.Equal(t, outA, outB)

	m1 := map[string]interface{}{"b": 1, "a": 2, "c": map[string]interface{}{"y": true, "x": nil}}
	m2 := map[string]interface{}{"c": map[string]interface{}{"x": nil, "y": true}, "a": 2, "b": 1}
	out1, err := Marshal(m1)
	require.NoError(t, err)
	out2, err := Marshal(m2)
	require.NoError(t, err)
	require.Equal(t, `{"a":2,"b":1,"c":{"x":null,"y":true}}`, string(out1))
	require.Equal(t, out1, out2)
}

func TestBlobSplicedVerbatim(t *testing.T) {
	blob, err := Marshal(map[string]string{"type": "deep_space/Test", "value": "TestMsg1"})
	require.NoError(t, err)

	out, err := Marshal(struct {
		Msgs []json.RawMessage `json:"msgs"`
	}{Msgs: []json.RawMessage{blob, blob}})
	require.NoError(t, err)
	require.Equal(t, `{"msgs":[`+string(blob)+`,`+string(blob)+`]}`, string(out))
}

func TestStringEscaping(t *testing.T) {
	out, err := Marshal(map[string]string{"memo": "a<b>&\"c\"\n\u2028\u00e9"})
	require.NoError(t, err)
	// HTML-sensitive characters and line separators are escaped, as encoding/json does on chain.
	require.Equal(t, `{"memo":"a\u003cb\u003e\u0026\"c\"\n\u2028é"}`, string(out))
}

func TestPlainNumbers(t *testing.T) {
	out, err := Canonicalize([]byte(`[1e3, 1.5E-2, -0, 12345678901234567890123]`))
	require.NoError(t, err)
	require.Equal(t, `[1000,0.015,-0,12345678901234567890123]`, string(out))
}

func TestInvalidUTF8(t *testing.T) {
	_, err := Marshal(inner{Zeta: "ok", Alpha: "bad\xff"})
	require.Error(t, err)
	_, ok := IsEncodeError(err)
	require.True(t, ok)

	_, err = Marshal(map[string]string{"bad\xfe": "v"})
	require.Error(t, err)

	_, err = Marshal([]*inner{{Zeta: "\xc3\x28"}})
	require.Error(t, err)

	_, err = Canonicalize([]byte("\"\xff\""))
	require.Error(t, err)
}

func TestCanonicalizeRejectsGarbage(t *testing.T) {
	_, err := Canonicalize([]byte(`{"a":1} x`))
	require.Error(t, err)
	_, err = Canonicalize([]byte(`{"a":`))
	require.Error(t, err)
}

func TestIdempotent(t *testing.T) {
	first, err := Canonicalize([]byte(`{"z": {"b": "x", "a": [true, false, null]}, "a": "y"}`))
	require.NoError(t, err)
	second, err := Canonicalize(first)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

type wrapper struct {
	Inner inner
}

func (w wrapper) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Inner)
}

func TestInvalidUTF8BehindMarshaler(t *testing.T) {
	_, err := Marshal(wrapper{Inner: inner{Alpha: "\xff"}})
	require.Error(t, err)
}

func TestUnmarshalStrict(t *testing.T) {
	type pair struct {
		A string `json:"a"`
		B int    `json:"b"`
	}

	var p pair
	require.NoError(t, UnmarshalStrict([]byte(`{"a":"x","b":2}`), &p, "a", "b"))
	require.Equal(t, pair{A: "x", B: 2}, p)

	// Optional keys may be left out.
	p = pair{}
	require.NoError(t, UnmarshalStrict([]byte(`{"a":"x"}`), &p, "a"))
	require.Equal(t, pair{A: "x"}, p)

	for _, bad := range []string{
		`{"a":"x"}`,
		`{"a":"x","b":null}`,
		`{"a":"x","b":2,"c":3}`,
		`{"a":"x","bb":2}`,
		`{"A":"x","b":2}`,
		`{"a":"x","b":2} {}`,
		`["a"]`,
		`null`,
	} {
		err := UnmarshalStrict([]byte(bad), &pair{}, "a", "b")
		require.Error(t, err, "input %s", bad)
	}
	err := UnmarshalStrict([]byte(`{"a":"x"}`), &pair{}, "a", "b")
	require.ErrorIs(t, err, ErrMissingField)
}
