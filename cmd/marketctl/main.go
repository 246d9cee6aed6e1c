// Command marketctl runs operator tasks against the marketplace: schema
// migrations, dev tokens and admin moderation.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "marketctl",
		Short:         "Operator CLI for the heritage marketplace",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(migrateCmd(), tokenCmd(), productCmd(), sellerCmd(), orderCmd())
	return root
}
