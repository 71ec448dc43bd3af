// Package address implements the address sub-command.
package address

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oasisprotocol/deepspace/address"
)

var (
	prefix string

	addressCmd = &cobra.Command{
		Use:   "address",
		Short: "Encode, decode and convert bech32 addresses",
	}

	encodeCmd = &cobra.Command{
		Use:   "encode <hex>",
		Short: "Encode 20 raw bytes as a bech32 address",
		Args:  cobra.ExactArgs(1),
		RunE:  runEncode,
	}

	decodeCmd = &cobra.Command{
		Use:   "decode <address>",
		Short: "Print the prefix and raw bytes of an address",
		Args:  cobra.ExactArgs(1),
		RunE:  runDecode,
	}

	convertCmd = &cobra.Command{
		Use:   "convert <address>",
		Short: "Re-encode an address under another prefix",
		Args:  cobra.ExactArgs(1),
		RunE:  runConvert,
	}
)

func runEncode(cmd *cobra.Command, args []string) error {
	b, err := hex.DecodeString(strings.TrimPrefix(args[0], "0x"))
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}
	raw, err := address.RawAddressFromBytes(b)
	if err != nil {
		return err
	}
	enc, err := address.Encode(raw, prefix)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), enc)
	return nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	p, raw, err := address.DecodeAny(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", p, raw.Hex())
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	enc, err := address.Reencode(args[0], prefix)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), enc)
	return nil
}

// Register registers the address sub-command.
func Register(parentCmd *cobra.Command) {
	for _, c := range []*cobra.Command{encodeCmd, convertCmd} {
		c.Flags().StringVar(&prefix, "prefix", address.PrefixCosmos, "bech32 prefix of the output address")
	}
	addressCmd.AddCommand(encodeCmd, decodeCmd, convertCmd)
	parentCmd.AddCommand(addressCmd)
}
