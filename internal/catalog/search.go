package catalog

import (
	"regexp"
	"strings"
)

// Search returns the commands of cat containing query, case-insensitively,
// in their original order. An empty query returns the whole category.
func (c *Catalog) Search(cat Category, query string) []string {
	return filterCommands(c.Commands(cat), query)
}

func filterCommands(cmds []string, query string) []string {
	if query == "" {
		return cmds
	}
	q := strings.ToLower(query)
	out := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		if strings.Contains(strings.ToLower(cmd), q) {
			out = append(out, cmd)
		}
	}
	return out
}

// Searcher keeps one query per category over the current catalog.
// Results are derived on every call, so they follow query and catalog
// changes without any invalidation step.
type Searcher struct {
	catalog *Catalog
	queries map[Category]string
}

func NewSearcher(c *Catalog) *Searcher {
	return &Searcher{catalog: c, queries: map[Category]string{}}
}

// SetCatalog swaps the underlying catalog. Queries are kept.
func (s *Searcher) SetCatalog(c *Catalog) { s.catalog = c }

func (s *Searcher) SetQuery(cat Category, query string) { s.queries[cat] = query }

func (s *Searcher) Query(cat Category) string { return s.queries[cat] }

func (s *Searcher) Results(cat Category) []string {
	return s.catalog.Search(cat, s.queries[cat])
}

var blueprintPattern = regexp.MustCompile(`Blueprint'/[^']*'`)

// ExtractBlueprint returns the first Blueprint'/...' token in command.
func ExtractBlueprint(command string) (string, bool) {
	loc := blueprintPattern.FindStringIndex(command)
	if loc == nil {
		return "", false
	}
	return command[loc[0]:loc[1]], true
}

func HasBlueprint(command string) bool {
	_, ok := ExtractBlueprint(command)
	return ok
}
