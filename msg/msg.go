// Package msg defines the closed set of transaction messages and their tagged
// amino JSON form.
package msg

import (
	"encoding/json"
	"fmt"

	"github.com/oasisprotocol/deepspace/address"
	"github.com/oasisprotocol/deepspace/cjson"
	"github.com/oasisprotocol/deepspace/common"
)

// Wire tags. These are part of the chain's signing format and must never change.
const (
	TypeSend                = "cosmos-sdk/MsgSend"
	TypeExchangeRateVote    = "oracle/MsgExchangeRateVote"
	TypeExchangeRatePrevote = "oracle/MsgExchangeRatePrevote"
	TypeDelegateFeedConsent = "oracle/MsgDelegateFeedConsent"
	TypeTest                = "deep_space/Test"
)

// Msg is one of Send, ExchangeRateVote, ExchangeRatePrevote,
// DelegateFeedConsent or Test. The set is closed.
type Msg interface {
	// Type returns the wire tag of the message.
	Type() string

	isMsg()
}

// Send transfers coins between two accounts.
type Send struct {
	FromAddress address.AccAddress `json:"from_address"`
	ToAddress   address.AccAddress `json:"to_address"`
	Amount      []common.Coin      `json:"amount"`
}

// ExchangeRateVote reveals an oracle exchange rate committed to by an
// earlier prevote. A negative rate is an abstain vote.
type ExchangeRateVote struct {
	ExchangeRate common.Dec              `json:"exchange_rate"`
	Salt         string                  `json:"salt"`
	Denom        string                  `json:"denom"`
	Feeder       address.TerraAddress    `json:"feeder"`
	Validator    address.TerraValAddress `json:"validator"`
}

// ExchangeRatePrevote commits to a future ExchangeRateVote.
type ExchangeRatePrevote struct {
	Hash      VoteHash                `json:"hash"`
	Denom     string                  `json:"denom"`
	Feeder    address.TerraAddress    `json:"feeder"`
	Validator address.TerraValAddress `json:"validator"`
}

// DelegateFeedConsent delegates a validator's oracle voting rights to a feeder account.
type DelegateFeedConsent struct {
	Operator address.TerraValAddress `json:"operator"`
	Feeder   address.TerraAddress    `json:"feeder"`
}

// Test is a placeholder message for exercising the encoding pipeline. It is
// not accepted by any production chain.
type Test string

func (Send) Type() string                { return TypeSend }
func (ExchangeRateVote) Type() string    { return TypeExchangeRateVote }
func (ExchangeRatePrevote) Type() string { return TypeExchangeRatePrevote }
func (DelegateFeedConsent) Type() string { return TypeDelegateFeedConsent }
func (Test) Type() string                { return TypeTest }

func (Send) isMsg()                {}
func (ExchangeRateVote) isMsg()    {}
func (ExchangeRatePrevote) isMsg() {}
func (DelegateFeedConsent) isMsg() {}
func (Test) isMsg()                {}

// Message values are decoded strictly: unknown keys and absent fields are
// errors, never zero values that would end up signed.

func (m *Send) UnmarshalJSON(data []byte) error {
	type plain Send
	return cjson.UnmarshalStrict(data, (*plain)(m), "from_address", "to_address", "amount")
}

func (m *ExchangeRateVote) UnmarshalJSON(data []byte) error {
	type plain ExchangeRateVote
	return cjson.UnmarshalStrict(data, (*plain)(m), "exchange_rate", "salt", "denom", "feeder", "validator")
}

func (m *ExchangeRatePrevote) UnmarshalJSON(data []byte) error {
	type plain ExchangeRatePrevote
	return cjson.UnmarshalStrict(data, (*plain)(m), "hash", "denom", "feeder", "validator")
}

func (m *DelegateFeedConsent) UnmarshalJSON(data []byte) error {
	type plain DelegateFeedConsent
	return cjson.UnmarshalStrict(data, (*plain)(m), "operator", "feeder")
}

// Envelope wraps a message in its {"type": ..., "value": ...} wire form.
type Envelope struct {
	Msg Msg
}

type taggedJSON struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

func (e Envelope) MarshalJSON() ([]byte, error) {
	if e.Msg == nil {
		return nil, fmt.Errorf("msg: nil message")
	}
	value, err := json.Marshal(e.Msg)
	if err != nil {
		return nil, fmt.Errorf("msg: marshal %s: %w", e.Msg.Type(), err)
	}
	return json.Marshal(taggedJSON{Type: e.Msg.Type(), Value: value})
}

func (e *Envelope) UnmarshalJSON(data []byte) error {
	m, err := Decode(data)
	if err != nil {
		return err
	}
	e.Msg = m
	return nil
}

// Decode parses a message from its tagged wire form. Address fields are
// checked against their expected prefixes.
func Decode(data []byte) (Msg, error) {
	var tagged taggedJSON
	if err := json.Unmarshal(data, &tagged); err != nil {
		return nil, fmt.Errorf("msg: decode envelope: %w", err)
	}
	if len(tagged.Value) == 0 {
		return nil, fmt.Errorf("msg: %q has no value", tagged.Type)
	}

	var (
		m   Msg
		err error
	)
	switch tagged.Type {
	case TypeSend:
		var v Send
		err = json.Unmarshal(tagged.Value, &v)
		m = v
	case TypeExchangeRateVote:
		var v ExchangeRateVote
		err = json.Unmarshal(tagged.Value, &v)
		m = v
	case TypeExchangeRatePrevote:
		var v ExchangeRatePrevote
		err = json.Unmarshal(tagged.Value, &v)
		m = v
	case TypeDelegateFeedConsent:
		var v DelegateFeedConsent
		err = json.Unmarshal(tagged.Value, &v)
		m = v
	case TypeTest:
		var v Test
		err = json.Unmarshal(tagged.Value, &v)
		m = v
	default:
		return nil, fmt.Errorf("msg: unknown message type %q", tagged.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("msg: decode %s: %w", tagged.Type, err)
	}
	return m, nil
}

// SignBytes returns the canonical JSON of the tagged message.
func SignBytes(m Msg) ([]byte, error) {
	return cjson.Marshal(Envelope{Msg: m})
}

// Wrap tags every message in msgs.
func Wrap(msgs []Msg) []Envelope {
	envs := make([]Envelope, len(msgs))
	for i, m := range msgs {
		envs[i] = Envelope{Msg: m}
	}
	return envs
}

// Unwrap is the inverse of Wrap.
func Unwrap(envs []Envelope) []Msg {
	msgs := make([]Msg, len(envs))
	for i, e := range envs {
		msgs[i] = e.Msg
	}
	return msgs
}
