package msg

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oasisprotocol/deepspace/address"
	"github.com/oasisprotocol/deepspace/cjson"
	"github.com/oasisprotocol/deepspace/common"
)

const (
	terraFeeder  = "terra1grgelyng2v6v3t8z87wu3sxgt9m5s03x259evd"
	terraValoper = "terravaloper1grgelyng2v6v3t8z87wu3sxgt9m5s03x2mfyu7"
	cosmosFrom   = "cosmos1grgelyng2v6v3t8z87wu3sxgt9m5s03xvslewd"
	cosmosZero   = "cosmos1qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqnrql8a"
)

func testVote(t *testing.T) ExchangeRateVote {
	feeder, err := address.ParseTerraAddress(terraFeeder)
	require.NoError(t, err)
	validator, err := address.ParseTerraValAddress(terraValoper)
	require.NoError(t, err)
	return ExchangeRateVote{
		ExchangeRate: common.NewDec(-100, -2),
		Salt:         "hello_world",
		Denom:        "test",
		Feeder:       feeder,
		Validator:    validator,
	}
}

func TestTestMsgSignBytes(t *testing.T) {
	out, err := SignBytes(Test("TestMsg1"))
	require.NoError(t, err)
	require.Equal(t, `{"type":"deep_space/Test","value":"TestMsg1"}`, string(out))
}

func TestVoteSignBytes(t *testing.T) {
	out, err := SignBytes(testVote(t))
	require.NoError(t, err)
	require.Equal(t,
		`{"type":"oracle/MsgExchangeRateVote","value":{"denom":"test","exchange_rate":"-1.00","feeder":"`+terraFeeder+`","salt":"hello_world","validator":"`+terraValoper+`"}}`,
		string(out))
}

func TestSendSignBytes(t *testing.T) {
	from, err := address.ParseAccAddress(cosmosFrom)
	require.NoError(t, err)
	send := Send{
		FromAddress: from,
		ToAddress:   address.AccAddress{},
		Amount:      []common.Coin{common.NewCoin(1000, "uatom")},
	}
	out, err := SignBytes(send)
	require.NoError(t, err)
	require.Equal(t,
		`{"type":"cosmos-sdk/MsgSend","value":{"amount":[{"amount":"1000","denom":"uatom"}],"from_address":"`+cosmosFrom+`","to_address":"`+cosmosZero+`"}}`,
		string(out))
}

func TestGenerateVoteHash(t *testing.T) {
	vote := testVote(t)
	h := vote.VoteHash()
	require.Equal(t, "dd8c98d29b88ee960211d067cf94aa51a3038d2b", h.String())
	require.Len(t, h.String(), 40)

	// Deterministic.
	require.Equal(t, h, GenerateVoteHash(vote.Salt, vote.ExchangeRate, vote.Denom, vote.Validator))

	// The chain formats sdk.Dec with 18 fractional digits; callers matching it
	// rescale first.
	rate, err := vote.ExchangeRate.WithPrecision(common.SDKPrecision)
	require.NoError(t, err)
	require.Equal(t, "d2abe7fb39687a1bacd22838252ad881a5d8864f",
		GenerateVoteHash(vote.Salt, rate, vote.Denom, vote.Validator).String())

	// Every field is bound by the commitment.
	otherVal := address.TerraValAddress{}
	for _, changed := range []VoteHash{
		GenerateVoteHash("hello_worle", vote.ExchangeRate, vote.Denom, vote.Validator),
		GenerateVoteHash(vote.Salt, common.NewDec(-101, -2), vote.Denom, vote.Validator),
		GenerateVoteHash(vote.Salt, vote.ExchangeRate, "tesu", vote.Validator),
		GenerateVoteHash(vote.Salt, vote.ExchangeRate, vote.Denom, otherVal),
	} {
		require.NotEqual(t, h, changed)
	}
}

func TestPrevote(t *testing.T) {
	vote := testVote(t)
	prevote := NewPrevote(vote)
	require.True(t, prevote.Matches(vote))

	vote.Salt = "other"
	require.False(t, prevote.Matches(vote))

	out, err := SignBytes(prevote)
	require.NoError(t, err)
	require.Equal(t,
		`{"type":"oracle/MsgExchangeRatePrevote","value":{"denom":"test","feeder":"`+terraFeeder+`","hash":"dd8c98d29b88ee960211d067cf94aa51a3038d2b","validator":"`+terraValoper+`"}}`,
		string(out))
}

func TestParseVoteHash(t *testing.T) {
	h, err := ParseVoteHash("dd8c98d29b88ee960211d067cf94aa51a3038d2b")
	require.NoError(t, err)
	require.Equal(t, "dd8c98d29b88ee960211d067cf94aa51a3038d2b", h.String())

	for _, bad := range []string{"", "dd8c", "zz8c98d29b88ee960211d067cf94aa51a3038d2b", "dd8c98d29b88ee960211d067cf94aa51a3038d2b00"} {
		_, err := ParseVoteHash(bad)
		require.Error(t, err, "input %q", bad)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	vote := testVote(t)
	from, err := address.ParseAccAddress(cosmosFrom)
	require.NoError(t, err)
	msgs := []Msg{
		Send{FromAddress: from, ToAddress: from, Amount: []common.Coin{common.NewCoin(1, "uatom")}},
		vote,
		NewPrevote(vote),
		DelegateFeedConsent{Operator: vote.Validator, Feeder: vote.Feeder},
		Test("TestMsg1"),
	}
	for _, m := range msgs {
		raw, err := json.Marshal(Envelope{Msg: m})
		require.NoError(t, err)

		decoded, err := Decode(raw)
		require.NoError(t, err)
		require.Equal(t, m.Type(), decoded.Type())

		expected, err := SignBytes(m)
		require.NoError(t, err)
		actual, err := SignBytes(decoded)
		require.NoError(t, err)
		require.Equal(t, expected, actual)
	}

	raw, err := json.Marshal(Wrap(msgs))
	require.NoError(t, err)
	var envs []Envelope
	require.NoError(t, json.Unmarshal(raw, &envs))
	require.Len(t, Unwrap(envs), len(msgs))
}

func TestDecodeErrors(t *testing.T) {
	// Feeder and validator swapped: the prefixes don't match the roles.
	swapped := `{"type":"oracle/MsgDelegateFeedConsent","value":{"operator":"` + terraFeeder + `","feeder":"` + terraValoper + `"}}`
	_, err := Decode([]byte(swapped))
	require.Error(t, err)
	_, ok := address.IsDecodeError(err)
	require.True(t, ok)

	for _, bad := range []string{
		`{"type":"cosmos-sdk/MsgMultiSend","value":{}}`,
		`{"type":"deep_space/Test"}`,
		`{"type":"deep_space/Test","value":5}`,
		`[]`,
	} {
		_, err := Decode([]byte(bad))
		require.Error(t, err, "input %s", bad)
	}
}

func TestDecodeStrict(t *testing.T) {
	send := `{"type":"cosmos-sdk/MsgSend","value":{"from_address":"` + cosmosFrom + `","to_address":"` + cosmosFrom + `","amount":[]}}`
	_, err := Decode([]byte(send))
	require.NoError(t, err)

	for _, tc := range []struct {
		name    string
		input   string
		missing bool
	}{
		{"misspelled recipient", `{"type":"cosmos-sdk/MsgSend","value":{"from_address":"` + cosmosFrom + `","to_adress":"` + cosmosFrom + `","amount":[]}}`, true},
		{"extra field", `{"type":"cosmos-sdk/MsgSend","value":{"from_address":"` + cosmosFrom + `","to_address":"` + cosmosFrom + `","amount":[],"memo":""}}`, false},
		{"null recipient", `{"type":"cosmos-sdk/MsgSend","value":{"from_address":"` + cosmosFrom + `","to_address":null,"amount":[]}}`, true},
		{"coin without amount", `{"type":"cosmos-sdk/MsgSend","value":{"from_address":"` + cosmosFrom + `","to_address":"` + cosmosFrom + `","amount":[{"denom":"uatom"}]}}`, true},
		{"vote without validator", `{"type":"oracle/MsgExchangeRateVote","value":{"denom":"test","exchange_rate":"1","feeder":"` + terraFeeder + `","salt":"abcd"}}`, true},
		{"prevote without feeder", `{"type":"oracle/MsgExchangeRatePrevote","value":{"denom":"test","hash":"dd8c98d29b88ee960211d067cf94aa51a3038d2b","validator":"` + terraValoper + `"}}`, true},
		{"consent without feeder", `{"type":"oracle/MsgDelegateFeedConsent","value":{"operator":"` + terraValoper + `"}}`, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.input))
			require.Error(t, err)
			if tc.missing {
				require.ErrorIs(t, err, cjson.ErrMissingField)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	vote := testVote(t)
	vote.Salt = "abcd"
	require.NoError(t, Validate(vote))
	vote.Salt = "żółw"
	require.NoError(t, Validate(vote))
	vote.Salt = "abcde"
	require.Error(t, Validate(vote))
	// The long salt used for hash vectors is hashable but not submittable.
	vote.Salt = "hello_world"
	require.Error(t, Validate(vote))

	require.NoError(t, Validate(Test("x")))
	require.NoError(t, Validate(DelegateFeedConsent{}))

	vote.Denom = ""
	require.Error(t, Validate(vote))

	vote = testVote(t)
	vote.Salt = ""
	require.Error(t, Validate(vote))

	require.Error(t, Validate(Send{}))
	require.Error(t, Validate(Send{Amount: []common.Coin{common.NewCoin(1, "a"), common.NewCoin(2, "a")}}))
	require.Error(t, Validate(ExchangeRatePrevote{}))
	require.Error(t, Validate(nil))
}
