package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "spawncodes",
	Short: "Generate admin console spawn commands from mod manifests",
	Long: `spawncodes reads a mod manifest and produces copy-ready console
commands, grouped into engrams, items, creatures, tamed creatures and buffs.

Run without a subcommand to open the interactive browser.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runTUI,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
