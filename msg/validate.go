package msg

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/oasisprotocol/deepspace/common"
)

var (
	errEmptyDenom = errors.New("empty denom")
	errEmptySalt  = errors.New("empty salt")
	errLongSalt   = errors.New("salt longer than 4 characters")
	errNoCoins    = errors.New("no coins")
)

const maxSaltLength = 4

// Validate performs the stateless checks a chain would apply before
// accepting m. Address well-formedness is already enforced by the types.
func Validate(m Msg) error {
	var err error
	switch m := m.(type) {
	case Send:
		if len(m.Amount) == 0 {
			err = errNoCoins
		} else {
			err = common.ValidateCoins(m.Amount)
		}
	case ExchangeRateVote:
		switch {
		case m.Denom == "":
			err = errEmptyDenom
		case m.Salt == "":
			err = errEmptySalt
		case utf8.RuneCountInString(m.Salt) > maxSaltLength:
			err = errLongSalt
		}
	case ExchangeRatePrevote:
		if m.Denom == "" {
			err = errEmptyDenom
		}
	case DelegateFeedConsent, Test:
	case nil:
		return fmt.Errorf("msg: nil message")
	default:
		return fmt.Errorf("msg: unsupported message %T", m)
	}
	if err != nil {
		return fmt.Errorf("msg: invalid %s: %w", m.Type(), err)
	}
	return nil
}
