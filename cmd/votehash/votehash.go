// Package votehash implements the votehash sub-command.
package votehash

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oasisprotocol/deepspace/address"
	"github.com/oasisprotocol/deepspace/cjson"
	"github.com/oasisprotocol/deepspace/common"
	"github.com/oasisprotocol/deepspace/msg"
)

var (
	salt      string
	rate      string
	denom     string
	validator string
	feeder    string

	sdkPrecision bool

	voteHashCmd = &cobra.Command{
		Use:   "votehash",
		Short: "Compute the oracle vote hash committed to by a prevote",
		Long: "Compute the oracle vote hash committed to by a prevote.\n" +
			"With --feeder, print the full prevote message instead of the bare hash.",
		Args: cobra.NoArgs,
		RunE: runVoteHash,
	}
)

func runVoteHash(cmd *cobra.Command, args []string) error {
	exchangeRate, err := common.ParseDec(rate)
	if err != nil {
		return fmt.Errorf("--rate: %w", err)
	}
	if sdkPrecision {
		if exchangeRate, err = exchangeRate.WithPrecision(common.SDKPrecision); err != nil {
			return fmt.Errorf("--rate: %w", err)
		}
	}
	val, err := address.ParseTerraValAddress(validator)
	if err != nil {
		return fmt.Errorf("--validator: %w", err)
	}
	vote := msg.ExchangeRateVote{
		ExchangeRate: exchangeRate,
		Salt:         salt,
		Denom:        denom,
		Validator:    val,
	}
	if feeder != "" {
		if vote.Feeder, err = address.ParseTerraAddress(feeder); err != nil {
			return fmt.Errorf("--feeder: %w", err)
		}
	}
	if err := msg.Validate(vote); err != nil {
		return err
	}

	if feeder == "" {
		fmt.Fprintln(cmd.OutOrStdout(), vote.VoteHash())
		return nil
	}
	out, err := cjson.Marshal(msg.Envelope{Msg: msg.NewPrevote(vote)})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// Register registers the votehash sub-command.
func Register(parentCmd *cobra.Command) {
	voteHashCmd.Flags().StringVar(&salt, "salt", "", "vote salt")
	voteHashCmd.Flags().StringVar(&rate, "rate", "", "exchange rate, hashed exactly as written unless --sdk-precision is set")
	voteHashCmd.Flags().StringVar(&denom, "denom", "", "denom the rate is quoted in")
	voteHashCmd.Flags().StringVar(&validator, "validator", "", "terravaloper address of the voting validator")
	voteHashCmd.Flags().BoolVar(&sdkPrecision, "sdk-precision", false, "render the rate with the 18 fractional digits of an sdk.Dec before hashing")
	voteHashCmd.Flags().StringVar(&feeder, "feeder", "", "terra address of the feeder; prints the prevote message when set")
	for _, f := range []string{"salt", "rate", "denom", "validator"} {
		_ = voteHashCmd.MarkFlagRequired(f)
	}
	parentCmd.AddCommand(voteHashCmd)
}
