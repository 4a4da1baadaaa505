// Command ssrkit serves the server-rendered page tree.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ssrkit",
		Short: "Server-side rendering for templ components with client hydration",
		Long: `ssrkit streams a templ component tree into an HTML shell on every GET
request. The WebAssembly client renders the same tree in the browser and
hydrates the server markup instead of replacing it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd(), versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
