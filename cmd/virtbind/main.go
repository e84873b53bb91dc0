package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "virtbind",
	Short: "virtbind - libvirt domain XML binding tool",
	Long: `virtbind reads, edits and validates libvirt domain XML through the
declarative binding engine.

It can fetch live domain XML from the local libvirt daemon, apply bulk
attribute payloads from YAML files, run the external schema validator,
and hand edited documents back to the daemon's define operation.`,
	Version: fmt.Sprintf("%s (commit: %s)", version, commit),
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(defineCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(attrsCmd)
}
