package address

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	root := &cobra.Command{Use: "deepspace", SilenceUsage: true, SilenceErrors: true}
	if addressCmd.Parent() == nil {
		Register(root)
	} else {
		root = addressCmd.Root()
	}
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs(args)
	prefix = "cosmos"
	err := root.Execute()
	return out.String(), err
}

func TestEncode(t *testing.T) {
	out, err := run(t, "address", "encode", "40d19f92685334c8ace23f9dc8c0c85977483e26")
	require.NoError(t, err)
	require.Equal(t, "cosmos1grgelyng2v6v3t8z87wu3sxgt9m5s03xvslewd\n", out)

	out, err = run(t, "address", "encode", "--prefix", "terravaloper", "0x40d19f92685334c8ace23f9dc8c0c85977483e26")
	require.NoError(t, err)
	require.Equal(t, "terravaloper1grgelyng2v6v3t8z87wu3sxgt9m5s03x2mfyu7\n", out)

	_, err = run(t, "address", "encode", "40d1")
	require.Error(t, err)
	_, err = run(t, "address", "encode", "zz")
	require.Error(t, err)
}

func TestDecode(t *testing.T) {
	out, err := run(t, "address", "decode", "terra1grgelyng2v6v3t8z87wu3sxgt9m5s03x259evd")
	require.NoError(t, err)
	require.Equal(t, "terra 40d19f92685334c8ace23f9dc8c0c85977483e26\n", out)

	_, err = run(t, "address", "decode", "terra1grgelyng2v6v3t8z87wu3sxgt9m5s03x259evq")
	require.Error(t, err)
}

func TestConvert(t *testing.T) {
	out, err := run(t, "address", "convert", "--prefix", "terra", "cosmos1grgelyng2v6v3t8z87wu3sxgt9m5s03xvslewd")
	require.NoError(t, err)
	require.Equal(t, "terra1grgelyng2v6v3t8z87wu3sxgt9m5s03x259evd\n", out)
}

func TestConvertBadPrefix(t *testing.T) {
	_, err := run(t, "address", "convert", "--prefix", "Terra", "cosmos1grgelyng2v6v3t8z87wu3sxgt9m5s03xvslewd")
	require.Error(t, err)
}
