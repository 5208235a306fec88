package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/spawncodes/internal/sysclip"
	"github.com/jask/spawncodes/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [manifest]",
	Short: "Browse, search and copy generated commands",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := setup(ctx, true)
	if err != nil {
		return err
	}
	defer e.Close()

	var manifest string
	if len(args) == 1 {
		manifest = args[0]
	}
	app := tui.New(ctx, tui.Deps{
		Session:   e.session,
		Store:     e.store,
		Clipboard: sysclip.New(e.cfg.Clipboard.Mode),
		Window:    e.cfg.Clipboard.ConfirmWindow,
		Logger:    e.logger,
		Manifest:  manifest,
	})
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
