package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jask/spawncodes/internal/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective settings to the config file",
	Long: `Init writes the current settings (defaults merged with any
SPAWNCODES_* environment overrides) to the config file so they can be
edited. An existing file is kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "file\t%s\n", config.Path())
	fmt.Fprintf(w, "store.backend\t%s\n", cfg.Store.Backend)
	fmt.Fprintf(w, "store.path\t%s\n", cfg.Store.Path)
	fmt.Fprintf(w, "clipboard.mode\t%s\n", cfg.Clipboard.Mode)
	fmt.Fprintf(w, "clipboard.confirm_window\t%s\n", cfg.Clipboard.ConfirmWindow)
	fmt.Fprintf(w, "export.format\t%s\n", cfg.Export.Format)
	fmt.Fprintf(w, "log.path\t%s\n", cfg.Log.Path)
	fmt.Fprintf(w, "log.level\t%s\n", cfg.Log.Level)
	return w.Flush()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.Path()
	load := config.Defaults
	if _, err := os.Stat(path); err == nil {
		if !configForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		load = config.Load
	}
	cfg, err := load()
	if err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
