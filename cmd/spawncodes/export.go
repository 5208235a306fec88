package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/spawncodes/internal/config"
)

var (
	exportLocation string
	exportFormat   string
)

var exportCmd = &cobra.Command{
	Use:   "export [manifest] <dest>",
	Short: "Write generated commands to a file",
	Long: `Export generates commands from a manifest and writes them to dest.
The format follows the destination extension (.txt, .json, .yaml, .toml)
unless --format or export.format says otherwise.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportLocation, "location", "l", "", "saved location name to read")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "auto, txt, json, yaml or toml")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := setup(ctx, false)
	if err != nil {
		return err
	}
	defer e.Close()

	dest := config.ExpandHome(args[len(args)-1])
	path, err := resolveManifest(e, args[:len(args)-1], exportLocation)
	if err != nil {
		return err
	}
	if exportFormat != "" {
		e.exporter.Format = exportFormat
	}
	if err := e.session.Generate(ctx, path); err != nil {
		return err
	}
	if err := e.session.Export(ctx, dest); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d commands to %s\n", e.session.Catalog().Total(), dest)
	return nil
}
