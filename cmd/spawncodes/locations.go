package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jask/spawncodes/internal/config"
)

var locationsCmd = &cobra.Command{
	Use:     "locations",
	Aliases: []string{"loc"},
	Short:   "Manage saved manifest locations",
	RunE:    runLocationsList,
}

var locationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved locations",
	Args:  cobra.NoArgs,
	RunE:  runLocationsList,
}

var locationsAddCmd = &cobra.Command{
	Use:   "add <name> <path>",
	Short: "Save a named manifest location",
	Args:  cobra.ExactArgs(2),
	RunE:  runLocationsAdd,
}

var locationsRemoveCmd = &cobra.Command{
	Use:     "remove <name|index>",
	Aliases: []string{"rm"},
	Short:   "Delete a saved location",
	Args:    cobra.ExactArgs(1),
	RunE:    runLocationsRemove,
}

func init() {
	locationsCmd.AddCommand(locationsListCmd, locationsAddCmd, locationsRemoveCmd)
	rootCmd.AddCommand(locationsCmd)
}

func runLocationsList(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer e.Close()

	locs := e.store.List()
	out := cmd.OutOrStdout()
	if len(locs) == 0 {
		fmt.Fprintln(out, "no saved locations")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tPATH")
	for i, l := range locs {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i, l.Name, l.Path)
	}
	return w.Flush()
}

func runLocationsAdd(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.store.Add(cmd.Context(), args[0], config.ExpandHome(args[1])); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", args[0])
	return nil
}

func runLocationsRemove(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer e.Close()

	idx, loc, ok := e.store.Find(args[0])
	if !ok {
		n, convErr := strconv.Atoi(args[0])
		if convErr != nil {
			return fmt.Errorf("no saved location %q", args[0])
		}
		if loc, ok = e.store.Get(n); !ok {
			return fmt.Errorf("index %d out of range", n)
		}
		idx = n
	}
	if err := e.store.Remove(cmd.Context(), idx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", loc.Name)
	return nil
}
