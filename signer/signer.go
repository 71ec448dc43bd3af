// Package signer provides a local secp256k1 signer for Cosmos SDK sign docs.
//
// Keys are held in memory only; storing them is the caller's business.
package signer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/oasisprotocol/deepspace/address"
	"github.com/oasisprotocol/deepspace/tx"
)

// ErrInvalidKey is returned for private keys outside [1, N-1].
var ErrInvalidKey = errors.New("signer: invalid secp256k1 private key")

// Secp256k1 signs SHA-256 digests of sign bytes with a secp256k1 key and
// returns low-S r||s signatures, as Cosmos SDK chains expect.
type Secp256k1 struct {
	priv *secp256k1.PrivateKey
}

var _ tx.Signer = (*Secp256k1)(nil)

// NewSecp256k1 wraps a 32-byte big-endian private key.
func NewSecp256k1(privKey []byte) (*Secp256k1, error) {
	if len(privKey) != secp256k1.PrivKeyBytesLen {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKey, secp256k1.PrivKeyBytesLen, len(privKey))
	}
	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(privKey); overflow || scalar.IsZero() {
		return nil, ErrInvalidKey
	}
	return &Secp256k1{priv: secp256k1.NewPrivateKey(&scalar)}, nil
}

// Generate returns a signer with a fresh random key.
func Generate() (*Secp256k1, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("signer: generate key: %w", err)
	}
	return &Secp256k1{priv: priv}, nil
}

// LoadKeyFile reads a hex-encoded private key from path.
func LoadKeyFile(path string) (*Secp256k1, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("signer: read key file: %w", err)
	}
	key, err := hex.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("signer: key file is not hex: %w", err)
	}
	return NewSecp256k1(key)
}

// PubKey returns the compressed public key.
func (s *Secp256k1) PubKey() []byte {
	return s.priv.PubKey().SerializeCompressed()
}

// Address returns the account address of the key.
func (s *Secp256k1) Address() address.RawAddress {
	return address.FromPubKey(s.PubKey())
}

// Sign implements tx.Signer.
func (s *Secp256k1) Sign(ctx context.Context, signBytes []byte) ([]byte, []byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	digest := sha256.Sum256(signBytes)
	// SignCompact prefixes r||s with a recovery byte, which Cosmos doesn't use.
	compact := ecdsa.SignCompact(s.priv, digest[:], true)
	return s.PubKey(), compact[1:], nil
}

// Verify checks a 64-byte r||s signature over signBytes.
func Verify(pubKey, signBytes, sig []byte) bool {
	if len(sig) != tx.SignatureSize {
		return false
	}
	pub, err := secp256k1.ParsePubKey(pubKey)
	if err != nil {
		return false
	}
	var r, sc secp256k1.ModNScalar
	if r.SetByteSlice(sig[:32]) || sc.SetByteSlice(sig[32:]) {
		return false
	}
	// Cosmos rejects high-S signatures.
	if sc.IsOverHalfOrder() {
		return false
	}
	digest := sha256.Sum256(signBytes)
	return ecdsa.NewSignature(&r, &sc).Verify(digest[:], pub)
}
