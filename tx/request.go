package tx

import (
	"fmt"
	"strconv"

	"github.com/oasisprotocol/deepspace/cjson"
	"github.com/oasisprotocol/deepspace/common"
	"github.com/oasisprotocol/deepspace/msg"
)

// Uint64 is a uint64 that decodes from either a JSON number or a decimal string.
type Uint64 uint64

func (u *Uint64) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseUint(string(common.Unquote(data)), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid unsigned integer %s: %w", data, err)
	}
	*u = Uint64(v)
	return nil
}

func (u Uint64) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(u), 10) + `"`), nil
}

// Request describes a transaction to build. It is the input format of the
// `sign` command and the HTTP service.
type Request struct {
	ChainID       string         `json:"chain_id"`
	AccountNumber Uint64         `json:"account_number"`
	Sequence      Uint64         `json:"sequence"`
	Fee           common.Fee     `json:"fee"`
	Msgs          []msg.Envelope `json:"msgs"`
	Memo          string         `json:"memo"`
}

// ParseRequest decodes a request. Unknown keys and absent fields are
// rejected at every level, messages and coins included, so that a typo
// fails instead of signing a zero value. chain_id and memo may be left out.
// Fee coins are sorted by denom.
func ParseRequest(data []byte) (*Request, error) {
	var r Request
	if err := cjson.UnmarshalStrict(data, &r, "account_number", "sequence", "fee", "msgs"); err != nil {
		return nil, fmt.Errorf("tx: decode request: %w", err)
	}
	if err := r.Fee.Validate(); err != nil {
		return nil, fmt.Errorf("tx: %w", err)
	}
	r.Fee.Amount = common.SortCoins(r.Fee.Amount)
	return &r, nil
}

// SignDoc builds the sign document for the request.
func (r *Request) SignDoc() (*SignDoc, error) {
	return BuildSignDoc(r.ChainID, uint64(r.AccountNumber), uint64(r.Sequence), r.Fee, msg.Unwrap(r.Msgs), r.Memo)
}

// StdTx returns an unsigned envelope for the request.
func (r *Request) StdTx() *StdTx {
	return NewStdTx(msg.Unwrap(r.Msgs), r.Fee, r.Memo)
}
