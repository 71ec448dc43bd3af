package msg

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/oasisprotocol/deepspace/address"
	"github.com/oasisprotocol/deepspace/common"
)

// VoteHashSize is the length of a prevote commitment: a SHA-256 digest
// truncated to its first 20 bytes, as computed by the chain.
const VoteHashSize = 20

// VoteHash is the commitment published by an ExchangeRatePrevote.
type VoteHash [VoteHashSize]byte

// GenerateVoteHash commits to a vote. The preimage is
// "salt:exchange_rate:denom:validator" with the validator in its
// terravaloper bech32 form.
func GenerateVoteHash(salt string, exchangeRate common.Dec, denom string, validator address.TerraValAddress) VoteHash {
	preimage := fmt.Sprintf("%s:%s:%s:%s", salt, exchangeRate, denom, validator)
	digest := sha256.Sum256([]byte(preimage))
	var h VoteHash
	copy(h[:], digest[:VoteHashSize])
	return h
}

// ParseVoteHash parses the 40-character hex form of a vote hash.
func ParseVoteHash(s string) (VoteHash, error) {
	var h VoteHash
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("vote hash: %w", err)
	}
	if len(b) != VoteHashSize {
		return h, fmt.Errorf("vote hash: expected %d bytes, got %d", VoteHashSize, len(b))
	}
	copy(h[:], b)
	return h, nil
}

func (h VoteHash) String() string {
	return hex.EncodeToString(h[:])
}

func (h VoteHash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *VoteHash) UnmarshalText(text []byte) error {
	v, err := ParseVoteHash(strings.ToLower(string(text)))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// VoteHash returns the commitment for this vote.
func (v ExchangeRateVote) VoteHash() VoteHash {
	return GenerateVoteHash(v.Salt, v.ExchangeRate, v.Denom, v.Validator)
}

// NewPrevote returns the prevote committing to v.
func NewPrevote(v ExchangeRateVote) ExchangeRatePrevote {
	return ExchangeRatePrevote{
		Hash:      v.VoteHash(),
		Denom:     v.Denom,
		Feeder:    v.Feeder,
		Validator: v.Validator,
	}
}

// Matches reports whether p commits to v.
func (p ExchangeRatePrevote) Matches(v ExchangeRateVote) bool {
	return p.Denom == v.Denom && p.Validator == v.Validator && p.Hash == v.VoteHash()
}
