package tx

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/oasisprotocol/deepspace/cjson"
	"github.com/oasisprotocol/deepspace/common"
	"github.com/oasisprotocol/deepspace/msg"
)

// Family selects the outer tag of the envelope. Chains that renamed the auth
// module expect a different tag around an otherwise identical StdTx.
type Family uint

const (
	// FamilyCosmos is the upstream Cosmos SDK.
	FamilyCosmos Family = iota
	// FamilyTerra is Terra, which registers StdTx under its core module.
	FamilyTerra
)

// String returns the string representation of a Family.
func (f *Family) String() string {
	switch *f {
	case FamilyCosmos:
		return "cosmos"
	case FamilyTerra:
		return "terra"
	default:
		return fmt.Sprintf("Family(%d)", uint(*f))
	}
}

// Set sets the Family to the value specified by the provided string.
func (f *Family) Set(s string) error {
	switch strings.ToLower(s) {
	case "cosmos":
		*f = FamilyCosmos
	case "terra":
		*f = FamilyTerra
	default:
		return fmt.Errorf("tx: invalid family: '%s'", s)
	}
	return nil
}

// Type returns the list of supported Families.
func (f *Family) Type() string {
	return "[cosmos,terra]"
}

// Tag returns the amino name of StdTx for the family, or "" for an unknown
// family.
func (f Family) Tag() string {
	switch f {
	case FamilyCosmos:
		return "cosmos-sdk/StdTx"
	case FamilyTerra:
		return "core/StdTx"
	default:
		return ""
	}
}

// StdTx bundles messages, fee and memo with the collected signatures.
type StdTx struct {
	Msgs       []msg.Msg
	Fee        common.Fee
	Memo       string
	Signatures []Signature
}

type stdTxJSON struct {
	Msg        []msg.Envelope `json:"msg"`
	Fee        common.Fee     `json:"fee"`
	Memo       string         `json:"memo"`
	Signatures []Signature    `json:"signatures"`
}

// NewStdTx returns an unsigned StdTx. The message slice is copied.
func NewStdTx(msgs []msg.Msg, fee common.Fee, memo string) *StdTx {
	return &StdTx{
		Msgs: append([]msg.Msg{}, msgs...),
		Fee:  fee,
		Memo: memo,
	}
}

// AddSignature appends sig. Signatures keep the order they were added in,
// which must match the order of the signers.
func (t *StdTx) AddSignature(sig Signature) {
	t.Signatures = append(t.Signatures, sig)
}

func (t StdTx) MarshalJSON() ([]byte, error) {
	sigs := t.Signatures
	if sigs == nil {
		sigs = []Signature{}
	}
	return json.Marshal(stdTxJSON{
		Msg:        msg.Wrap(t.Msgs),
		Fee:        t.Fee,
		Memo:       t.Memo,
		Signatures: sigs,
	})
}

func (t *StdTx) UnmarshalJSON(data []byte) error {
	var v stdTxJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*t = StdTx{
		Msgs:       msg.Unwrap(v.Msg),
		Fee:        v.Fee,
		Memo:       v.Memo,
		Signatures: v.Signatures,
	}
	return nil
}

// Tx is a StdTx tagged with its chain family, ready to broadcast.
type Tx struct {
	Family Family
	StdTx  *StdTx
}

type txJSON struct {
	Type  string `json:"type"`
	Value *StdTx `json:"value"`
}

func (t Tx) MarshalJSON() ([]byte, error) {
	if t.StdTx == nil {
		return nil, fmt.Errorf("tx: missing StdTx")
	}
	tag := t.Family.Tag()
	if tag == "" {
		return nil, fmt.Errorf("tx: unknown family %s", &t.Family)
	}
	return json.Marshal(txJSON{Type: tag, Value: t.StdTx})
}

func (t *Tx) UnmarshalJSON(data []byte) error {
	var v txJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v.Type {
	case FamilyCosmos.Tag():
		t.Family = FamilyCosmos
	case FamilyTerra.Tag():
		t.Family = FamilyTerra
	default:
		return fmt.Errorf("tx: unknown transaction type %q", v.Type)
	}
	if v.Value == nil {
		return fmt.Errorf("tx: missing value")
	}
	t.StdTx = v.Value
	return nil
}

// Bytes returns the canonical JSON of the tagged transaction.
func (t Tx) Bytes() ([]byte, error) {
	return cjson.Marshal(t)
}

// Submit encodes the transaction and hands it to b.
func (t Tx) Submit(ctx context.Context, b Broadcaster) ([]byte, error) {
	txBytes, err := t.Bytes()
	if err != nil {
		return nil, fmt.Errorf("tx: %w", err)
	}
	return b.Broadcast(ctx, txBytes)
}
