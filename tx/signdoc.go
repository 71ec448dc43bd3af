// Package tx builds the legacy Cosmos SDK sign document and the StdTx
// envelope that carries the collected signatures.
package tx

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/oasisprotocol/deepspace/cjson"
	"github.com/oasisprotocol/deepspace/common"
	"github.com/oasisprotocol/deepspace/msg"
)

// SignDoc is the document whose canonical JSON is signed. Account number and
// sequence are decimal strings on the wire.
type SignDoc struct {
	ChainID       string            `json:"chain_id"`
	AccountNumber string            `json:"account_number"`
	Sequence      string            `json:"sequence"`
	Fee           common.Fee        `json:"fee"`
	Msgs          []json.RawMessage `json:"msgs"`
	Memo          string            `json:"memo"`
}

// BuildSignDoc validates its inputs and assembles a SignDoc. Every message is
// canonicalized on its own before being embedded.
func BuildSignDoc(chainID string, accountNumber, sequence uint64, fee common.Fee, msgs []msg.Msg, memo string) (*SignDoc, error) {
	if err := fee.Validate(); err != nil {
		return nil, err
	}
	blobs := make([]json.RawMessage, 0, len(msgs))
	for i, m := range msgs {
		if err := msg.Validate(m); err != nil {
			return nil, fmt.Errorf("msgs[%d]: %w", i, err)
		}
		blob, err := msg.SignBytes(m)
		if err != nil {
			return nil, fmt.Errorf("msgs[%d]: %w", i, err)
		}
		blobs = append(blobs, blob)
	}
	return &SignDoc{
		ChainID:       chainID,
		AccountNumber: strconv.FormatUint(accountNumber, 10),
		Sequence:      strconv.FormatUint(sequence, 10),
		Fee:           fee,
		Msgs:          blobs,
		Memo:          memo,
	}, nil
}

func (d SignDoc) MarshalJSON() ([]byte, error) {
	type signDoc SignDoc
	if d.Msgs == nil {
		d.Msgs = []json.RawMessage{}
	}
	return json.Marshal(signDoc(d))
}

// Bytes returns the exact payload to sign.
func (d *SignDoc) Bytes() ([]byte, error) {
	return cjson.Marshal(d)
}

// Sign encodes the document and passes it to s. Nothing reaches the signer
// if encoding fails.
func (d *SignDoc) Sign(ctx context.Context, s Signer) (Signature, error) {
	signBytes, err := d.Bytes()
	if err != nil {
		return Signature{}, fmt.Errorf("sign doc: %w", err)
	}
	pubKey, sig, err := s.Sign(ctx, signBytes)
	if err != nil {
		return Signature{}, fmt.Errorf("signer: %w", err)
	}
	return NewSignature(pubKey, sig)
}
