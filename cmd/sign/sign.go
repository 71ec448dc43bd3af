// Package sign implements the sign sub-command.
package sign

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/oasisprotocol/deepspace/cmd/common"
	"github.com/oasisprotocol/deepspace/config"
	"github.com/oasisprotocol/deepspace/journal"
	"github.com/oasisprotocol/deepspace/signer"
	"github.com/oasisprotocol/deepspace/tx"
)

const moduleName = "sign"

var (
	// Path to the configuration file.
	configFile string

	signCmd = &cobra.Command{
		Use:   "sign <request.json|->",
		Short: "Sign a transaction request and print the broadcastable envelope",
		Args:  cobra.ExactArgs(1),
		RunE:  runSign,
	}
)

func runSign(cmd *cobra.Command, args []string) error {
	cfg, err := config.InitConfig(configFile)
	if err != nil {
		return err
	}
	if err := common.Init(cfg); err != nil {
		return err
	}
	if cfg.Chain == nil || cfg.Signer == nil || cfg.Journal == nil {
		return fmt.Errorf("config: chain, signer and journal sections are required")
	}

	var data []byte
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("reading request: %w", err)
	}

	out, err := Sign(cmd.Context(), cfg, data)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// Sign signs a transaction request with the configured key, guarded by the
// configured journal, and returns the canonical envelope.
func Sign(ctx context.Context, cfg *config.Config, request []byte) ([]byte, error) {
	logger := common.RootLogger().WithModule(moduleName)

	family, err := cfg.Chain.TxFamily()
	if err != nil {
		return nil, err
	}
	req, err := tx.ParseRequest(request)
	if err != nil {
		return nil, err
	}
	switch req.ChainID {
	case "":
		req.ChainID = cfg.Chain.ChainID
	case cfg.Chain.ChainID:
	default:
		return nil, fmt.Errorf("request is for chain %q, configured chain is %q", req.ChainID, cfg.Chain.ChainID)
	}
	doc, err := req.SignDoc()
	if err != nil {
		return nil, err
	}

	key, err := signer.LoadKeyFile(cfg.Signer.KeyFile)
	if err != nil {
		return nil, err
	}
	// A one-shot process is never scraped, so the journal runs uninstrumented.
	j, err := journal.Open(cfg.Journal.Path, logger, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := j.Close(); err != nil {
			logger.Error("failed to close journal", "err", err)
		}
	}()

	sig, err := j.Sign(ctx, doc, key)
	if err != nil {
		return nil, err
	}
	stdTx := req.StdTx()
	stdTx.AddSignature(sig)
	logger.Info("signed transaction",
		"chain_id", doc.ChainID,
		"account_number", doc.AccountNumber,
		"sequence", doc.Sequence,
		"msgs", len(stdTx.Msgs),
	)
	return tx.Tx{Family: family, StdTx: stdTx}.Bytes()
}

// Register registers the sign sub-command.
func Register(parentCmd *cobra.Command) {
	signCmd.Flags().StringVar(&configFile, "config", "./conf/deepspace.yml", "path to the config.yml file")
	parentCmd.AddCommand(signCmd)
}
