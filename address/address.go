// Package address implements the bech32 address codec used by Cosmos SDK chains.
package address

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // Cosmos address derivation is defined over RIPEMD-160.
)

// Size is the length of a raw account or validator address.
const Size = 20

// Prefixes of the supported networks and roles.
const (
	PrefixCosmos        = "cosmos"
	PrefixCosmosValoper = "cosmosvaloper"
	PrefixTerra         = "terra"
	PrefixTerraValoper  = "terravaloper"
)

// Prefixes lists every supported prefix.
var Prefixes = []string{PrefixCosmos, PrefixCosmosValoper, PrefixTerra, PrefixTerraValoper}

// RawAddress is a 20-byte address without a network prefix.
type RawAddress [Size]byte

// RawAddressFromBytes copies b into a RawAddress.
func RawAddressFromBytes(b []byte) (RawAddress, error) {
	var raw RawAddress
	if len(b) != Size {
		return raw, &DecodeError{
			Input:  hex.EncodeToString(b),
			Reason: fmt.Sprintf("address must be %d bytes, got %d", Size, len(b)),
		}
	}
	copy(raw[:], b)
	return raw, nil
}

// FromPubKey derives the address of a compressed secp256k1 public key,
// RIPEMD160(SHA256(pubkey)).
func FromPubKey(pubKey []byte) RawAddress {
	sha := sha256.Sum256(pubKey)
	hasher := ripemd160.New()
	hasher.Write(sha[:])
	var raw RawAddress
	copy(raw[:], hasher.Sum(nil))
	return raw
}

// Bytes returns a copy of the address bytes.
func (a RawAddress) Bytes() []byte {
	return append([]byte(nil), a[:]...)
}

// Hex returns the lowercase hex form of the address.
func (a RawAddress) Hex() string {
	return hex.EncodeToString(a[:])
}

// Compare orders addresses byte-wise.
func (a RawAddress) Compare(b RawAddress) int {
	return bytes.Compare(a[:], b[:])
}

// Equal reports whether both addresses hold the same bytes.
func (a RawAddress) Equal(b RawAddress) bool {
	return a == b
}

// Encode returns the bech32 text form of raw under prefix. The prefix must be
// lowercase printable ASCII.
func Encode(raw RawAddress, prefix string) (string, error) {
	if err := checkPrefix(prefix); err != nil {
		return "", err
	}
	data, err := bech32.ConvertBits(raw[:], 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("address: convert bits: %w", err)
	}
	text, err := bech32.Encode(prefix, data)
	if err != nil {
		return "", fmt.Errorf("address: bech32 encode: %w", err)
	}
	return text, nil
}

func checkPrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("address: empty prefix")
	}
	for i := 0; i < len(prefix); i++ {
		if c := prefix[i]; c < 33 || c > 126 {
			return fmt.Errorf("address: invalid character %q in prefix %q", c, prefix)
		}
	}
	if prefix != strings.ToLower(prefix) {
		return fmt.Errorf("address: prefix %q is not lowercase", prefix)
	}
	return nil
}

// mustEncode is used by the typed wrappers, whose prefixes are known to be valid.
func mustEncode(raw RawAddress, prefix string) string {
	text, err := Encode(raw, prefix)
	if err != nil {
		panic(err)
	}
	return text
}

// DecodeAny parses a bech32 address, returning its prefix and raw bytes.
func DecodeAny(text string) (string, RawAddress, error) {
	var raw RawAddress
	prefix, data, err := bech32.Decode(text)
	if err != nil {
		return "", raw, &DecodeError{Input: text, Reason: "malformed bech32", Err: err}
	}
	decoded, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", raw, &DecodeError{Input: text, Reason: "invalid data segment", Err: err}
	}
	if len(decoded) != Size {
		return "", raw, &DecodeError{
			Input:  text,
			Reason: fmt.Sprintf("decoded address must be %d bytes, got %d", Size, len(decoded)),
		}
	}
	copy(raw[:], decoded)
	return prefix, raw, nil
}

// Decode parses a bech32 address. If expectedPrefix is non-empty the address
// must carry exactly that prefix.
func Decode(text string, expectedPrefix string) (RawAddress, error) {
	prefix, raw, err := DecodeAny(text)
	if err != nil {
		return RawAddress{}, err
	}
	if expectedPrefix != "" && prefix != expectedPrefix {
		return RawAddress{}, &DecodeError{
			Input:  text,
			Reason: fmt.Sprintf("expected prefix %q, got %q", expectedPrefix, prefix),
		}
	}
	return raw, nil
}
