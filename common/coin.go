package common

import (
	"errors"
	"fmt"
	"sort"

	"github.com/oasisprotocol/deepspace/cjson"
)

var (
	// ErrDuplicateDenom is returned when a coin list names a denomination twice.
	ErrDuplicateDenom = errors.New("duplicate denomination")
	// ErrEmptyDenom is returned for coins without a denomination.
	ErrEmptyDenom = errors.New("empty denomination")
)

// Coin is an amount of a single denomination.
type Coin struct {
	Amount Uint256 `json:"amount"`
	Denom  string  `json:"denom"`
}

func (c *Coin) UnmarshalJSON(data []byte) error {
	type plain Coin
	return cjson.UnmarshalStrict(data, (*plain)(c), "amount", "denom")
}

func NewCoin(amount uint64, denom string) Coin {
	return Coin{Amount: NewUint256(amount), Denom: denom}
}

func (c Coin) String() string {
	return c.Amount.String() + c.Denom
}

// Validate checks that the coin can be broadcast.
func (c Coin) Validate() error {
	if c.Denom == "" {
		return ErrEmptyDenom
	}
	return nil
}

// ValidateCoins checks every coin and rejects repeated denominations.
func ValidateCoins(coins []Coin) error {
	seen := make(map[string]struct{}, len(coins))
	for _, c := range coins {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("coin %s: %w", c, err)
		}
		if _, ok := seen[c.Denom]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateDenom, c.Denom)
		}
		seen[c.Denom] = struct{}{}
	}
	return nil
}

// SortCoins returns a copy of coins ordered by denomination, the order
// Cosmos SDK chains require for coin lists.
func SortCoins(coins []Coin) []Coin {
	if coins == nil {
		return nil
	}
	sorted := append([]Coin{}, coins...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Denom < sorted[j].Denom })
	return sorted
}

// Fee is the fee paid for a transaction and its gas limit.
//
// A nil Amount is absent and encodes as null; the legacy sign format expects
// that rather than an omitted field.
type Fee struct {
	Amount []Coin  `json:"amount"`
	Gas    Uint256 `json:"gas"`
}

// UnmarshalJSON requires the gas limit; the amount may be absent or null.
func (f *Fee) UnmarshalJSON(data []byte) error {
	type plain Fee
	return cjson.UnmarshalStrict(data, (*plain)(f), "gas")
}

// NewFee validates and sorts the fee coins. Passing no coins yields an
// absent amount.
func NewFee(gas uint64, coins ...Coin) (Fee, error) {
	if err := ValidateCoins(coins); err != nil {
		return Fee{}, fmt.Errorf("fee: %w", err)
	}
	return Fee{Amount: SortCoins(coins), Gas: NewUint256(gas)}, nil
}

// Validate checks the fee coins.
func (f Fee) Validate() error {
	if err := ValidateCoins(f.Amount); err != nil {
		return fmt.Errorf("fee: %w", err)
	}
	return nil
}
