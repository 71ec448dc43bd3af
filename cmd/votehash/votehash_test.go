package votehash

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const (
	terraFeeder  = "terra1grgelyng2v6v3t8z87wu3sxgt9m5s03x259evd"
	terraValoper = "terravaloper1grgelyng2v6v3t8z87wu3sxgt9m5s03x2mfyu7"
)

func run(t *testing.T, args ...string) (string, error) {
	root := &cobra.Command{Use: "deepspace", SilenceUsage: true, SilenceErrors: true}
	if voteHashCmd.Parent() == nil {
		Register(root)
	} else {
		root = voteHashCmd.Root()
	}
	salt, rate, denom, validator, feeder = "", "", "", "", ""
	sdkPrecision = false
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(append([]string{"votehash"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestVoteHash(t *testing.T) {
	out, err := run(t, "--salt", "abcd", "--rate", "-1.00", "--denom", "test", "--validator", terraValoper)
	require.NoError(t, err)
	require.Equal(t, "93830d1792074e992ffd4277223bc9a0e6cff65c\n", out)

	// The rate is hashed as written.
	out, err = run(t, "--salt", "abcd", "--rate", "-1.000000000000000000", "--denom", "test", "--validator", terraValoper)
	require.NoError(t, err)
	require.Equal(t, "e160ec7e426fb40fa8a03fd4b60fc5ccf95a89da\n", out)

	// Unless it is padded to sdk.Dec precision first.
	out, err = run(t, "--salt", "abcd", "--rate", "-1.00", "--denom", "test", "--validator", terraValoper, "--sdk-precision")
	require.NoError(t, err)
	require.Equal(t, "e160ec7e426fb40fa8a03fd4b60fc5ccf95a89da\n", out)
}

func TestPrevote(t *testing.T) {
	out, err := run(t, "--salt", "abcd", "--rate", "-1.00", "--denom", "test", "--validator", terraValoper, "--feeder", terraFeeder)
	require.NoError(t, err)
	require.Equal(t,
		`{"type":"oracle/MsgExchangeRatePrevote","value":{"denom":"test","feeder":"`+terraFeeder+`","hash":"93830d1792074e992ffd4277223bc9a0e6cff65c","validator":"`+terraValoper+`"}}`+"\n",
		out)
}

func TestVoteHashInvalid(t *testing.T) {
	_, err := run(t, "--salt", "s", "--rate", "abc", "--denom", "test", "--validator", terraValoper)
	require.Error(t, err)
	_, err = run(t, "--salt", "s", "--rate", "1", "--denom", "test", "--validator", terraFeeder)
	require.Error(t, err)
	_, err = run(t, "--salt", "s", "--rate", "1", "--denom", "test", "--validator", terraValoper, "--feeder", terraValoper)
	require.Error(t, err)
	// Salts longer than four characters are rejected by the chain.
	_, err = run(t, "--salt", "hello_world", "--rate", "1", "--denom", "test", "--validator", terraValoper)
	require.Error(t, err)
}
