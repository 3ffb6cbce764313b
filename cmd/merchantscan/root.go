package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for MerchantScan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merchantscan",
		Short: "Discover and classify nearby consumer-facing businesses",
		Long: `MerchantScan discovers businesses around a location using the Google
Places API, filters them to consumer-facing merchants, classifies each into
a merchant category code (MCC), and writes a tabular report.

The API key is read from the GOOGLE_PLACES_API_KEY environment variable or
a .env file in the working directory.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewCodesCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
