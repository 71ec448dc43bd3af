package tx

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// PubKeyTypeSecp256k1 is the amino name of a secp256k1 public key.
	PubKeyTypeSecp256k1 = "tendermint/PubKeySecp256k1"

	// PubKeySize is the length of a compressed secp256k1 public key.
	PubKeySize = 33
	// SignatureSize is the length of an r||s secp256k1 signature.
	SignatureSize = 64
)

// ErrInvalidSignature is returned for malformed keys or signatures.
var ErrInvalidSignature = errors.New("invalid signature")

// PubKey is a compressed secp256k1 public key. It encodes as
// {"type":"tendermint/PubKeySecp256k1","value":"<base64>"}.
type PubKey []byte

type pubKeyJSON struct {
	Type  string `json:"type"`
	Value []byte `json:"value"`
}

func (k PubKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(pubKeyJSON{Type: PubKeyTypeSecp256k1, Value: k})
}

func (k *PubKey) UnmarshalJSON(data []byte) error {
	var v pubKeyJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Type != PubKeyTypeSecp256k1 {
		return fmt.Errorf("%w: unsupported public key type %q", ErrInvalidSignature, v.Type)
	}
	if len(v.Value) != PubKeySize {
		return fmt.Errorf("%w: public key must be %d bytes, got %d", ErrInvalidSignature, PubKeySize, len(v.Value))
	}
	*k = v.Value
	return nil
}

// Signature is one signer's signature over a SignDoc. The public key may be
// left out when the chain already knows it.
type Signature struct {
	PubKey    *PubKey `json:"pub_key,omitempty"`
	Signature []byte  `json:"signature"`
}

// NewSignature checks the sizes of a signer's output. A nil pubKey leaves
// the key out of the envelope.
func NewSignature(pubKey, sig []byte) (Signature, error) {
	if len(sig) != SignatureSize {
		return Signature{}, fmt.Errorf("%w: signature must be %d bytes, got %d", ErrInvalidSignature, SignatureSize, len(sig))
	}
	s := Signature{Signature: append([]byte(nil), sig...)}
	if pubKey != nil {
		if len(pubKey) != PubKeySize {
			return Signature{}, fmt.Errorf("%w: public key must be %d bytes, got %d", ErrInvalidSignature, PubKeySize, len(pubKey))
		}
		k := PubKey(append([]byte(nil), pubKey...))
		s.PubKey = &k
	}
	return s, nil
}
