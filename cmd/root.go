// Package cmd implements commands for the deepspace executable.
package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oasisprotocol/deepspace/cmd/address"
	"github.com/oasisprotocol/deepspace/cmd/api"
	"github.com/oasisprotocol/deepspace/cmd/sign"
	"github.com/oasisprotocol/deepspace/cmd/votehash"
	"github.com/oasisprotocol/deepspace/log"
)

var rootCmd = &cobra.Command{
	Use:          "deepspace",
	Short:        "Build, sign and encode legacy Cosmos SDK transactions",
	SilenceUsage: true,
}

// Execute spawns the main entry point.
func Execute() {
	// Debug hook. If we receive SIGUSR1, dump all goroutines.
	go dumpGoroutinesOnSignal(syscall.SIGUSR1)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	for _, f := range []func(*cobra.Command){
		address.Register,
		votehash.Register,
		sign.Register,
		api.Register,
	} {
		f(rootCmd)
	}
}

// Starts listening for the specified signals, and logs a dump of all
// goroutines when the process receives one of those signals.
func dumpGoroutinesOnSignal(signals ...os.Signal) {
	logger := log.NewDefaultLogger("toplevel")
	c := make(chan os.Signal, 1)
	signal.Notify(c, signals...)
	for range c {
		b := bytes.NewBufferString("")
		_ = pprof.Lookup("goroutine").WriteTo(b, 1)
		logger.Warn("USER-REQUESTED DUMP: all goroutines", "goroutines_all", b.String())
	}
}
