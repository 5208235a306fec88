package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/spawncodes/internal/catalog"
	"github.com/jask/spawncodes/internal/config"
)

var (
	genLocation   string
	genCategories []string
	genSearch     string
	genBlueprints bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [manifest]",
	Short: "Print the commands generated from a manifest",
	Long: `Generate reads a manifest, given as a path or a saved location name,
and prints one section per category.

Examples:
  spawncodes generate ~/mods/MyMod/manifest.txt
  spawncodes generate --location main --category item --search sword
  spawncodes generate --location main --category buff --blueprints`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genLocation, "location", "l", "", "saved location name to read")
	generateCmd.Flags().StringSliceVarP(&genCategories, "category", "c", nil, "only print these categories (engram, item, creature, tamed-creature, buff)")
	generateCmd.Flags().StringVarP(&genSearch, "search", "s", "", "case-insensitive substring filter")
	generateCmd.Flags().BoolVar(&genBlueprints, "blueprints", false, "print only the blueprint path of each command")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := setup(ctx, false)
	if err != nil {
		return err
	}
	defer e.Close()

	path, err := resolveManifest(e, args, genLocation)
	if err != nil {
		return err
	}
	cats, err := parseCategories(genCategories)
	if err != nil {
		return err
	}
	if err := e.session.Generate(ctx, path); err != nil {
		return err
	}

	c := e.session.Catalog()
	out := cmd.OutOrStdout()
	for i, cat := range cats {
		rows := c.Search(cat, genSearch)
		if genBlueprints {
			rows = blueprintsOf(rows)
		}
		if len(cats) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "--- %s (%d) ---\n", cat.Title(), len(rows))
		}
		for _, r := range rows {
			fmt.Fprintln(out, r)
		}
	}
	return nil
}

// resolveManifest picks the manifest path from the argument or a saved
// location name.
func resolveManifest(e *env, args []string, location string) (string, error) {
	switch {
	case len(args) == 1 && location != "":
		return "", fmt.Errorf("give either a manifest path or --location, not both")
	case len(args) == 1:
		return config.ExpandHome(args[0]), nil
	case location == "":
		return "", fmt.Errorf("manifest path or --location is required")
	}
	_, loc, ok := e.store.Find(location)
	if ok {
		return loc.Path, nil
	}
	if s, ok := e.store.Suggest(location); ok {
		return "", fmt.Errorf("no saved location %q (did you mean %q?)", location, s)
	}
	return "", fmt.Errorf("no saved location %q", location)
}

func parseCategories(names []string) ([]catalog.Category, error) {
	if len(names) == 0 {
		return catalog.Categories, nil
	}
	out := make([]catalog.Category, 0, len(names))
	for _, n := range names {
		c, err := catalog.ParseCategory(n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func blueprintsOf(rows []string) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if tok, ok := catalog.ExtractBlueprint(r); ok {
			out = append(out, tok)
		}
	}
	return out
}
