package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/spawncodes/internal/catalog"
	"github.com/jask/spawncodes/internal/service"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("62"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	copiedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

func (a *App) View() string {
	var body string
	switch a.view {
	case viewLocations:
		body = a.renderLocations()
	default:
		body = a.renderCommands()
	}
	if p := a.renderPrompt(); p != "" {
		body += "\n\n" + p
	}
	if a.status != "" {
		st := statusStyle
		if a.session.State().Phase == service.PhaseFailed || strings.HasPrefix(a.status, "Failed") {
			st = errorStyle
		}
		body += "\n" + st.Render(a.status)
	}
	return body
}

func (a *App) renderCommands() string {
	st := a.session.State()
	out := titleStyle.Render("Spawn Command Generator") + "\n"
	switch st.Phase {
	case service.PhaseIdle:
		out += "No commands generated. Open a manifest file to get started.\n"
	case service.PhaseLoading:
		out += "Generating commands for " + st.Path + "...\n"
	case service.PhaseFailed:
		out += "Manifest: " + st.Path + "\n"
	case service.PhaseReady:
		out += fmt.Sprintf("Manifest: %s (%d commands)\n", st.Path, st.Catalog.Total())
	}
	if st.Phase == service.PhaseReady {
		out += a.renderTabs(st.Catalog) + "\n"
		out += a.renderList()
	}
	out += "\n" + helpLine(a.keys.Open, a.keys.Locations, a.keys.Export, a.keys.Search, a.keys.NextTab, a.keys.Copy, a.keys.CopyBP, a.keys.Quit)
	return out
}

func (a *App) renderTabs(c *catalog.Catalog) string {
	tabs := make([]string, 0, len(catalog.Categories))
	for i, cat := range catalog.Categories {
		label := fmt.Sprintf("%d %s (%d)", i+1, cat.Title(), c.Len(cat))
		if i == a.tab {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (a *App) renderList() string {
	cat := a.activeCategory()
	rows := a.visible()
	var b strings.Builder
	if q := a.searcher.Query(cat); q != "" {
		fmt.Fprintf(&b, "filter: %q (%d matches)\n", q, len(rows))
	}
	if len(rows) == 0 {
		b.WriteString("  (no commands)\n")
		return b.String()
	}
	broker := a.brokers[cat]
	for i, cmd := range rows {
		marker := " "
		if i == a.cursors[cat] {
			marker = ">"
		}
		line := fmt.Sprintf("%s %s", marker, cmd)
		if broker.Marked(i) {
			line += " " + copiedStyle.Render("copied")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (a *App) renderLocations() string {
	out := titleStyle.Render("Saved Locations") + "\n"
	locs := a.store.List()
	if len(locs) == 0 {
		out += "No locations saved yet. Press a to add one.\n"
	}
	for i, l := range locs {
		marker := " "
		if i == a.locCursor {
			marker = ">"
		}
		out += fmt.Sprintf("%s %-24s %s\n", marker, l.Name, l.Path)
	}
	out += "\n" + helpLine(a.keys.Use, a.keys.Add, a.keys.Delete, a.keys.Back, a.keys.Quit)
	return out
}

func (a *App) renderPrompt() string {
	switch a.mode {
	case modeOpenPath:
		return promptStyle.Render("Manifest path: ") + a.input + "_  [enter] generate  [esc] cancel"
	case modeExportPath:
		return promptStyle.Render("Export to: ") + a.input + "_  (.txt .json .yaml .toml)  [enter] save  [esc] cancel"
	case modeSearch:
		return promptStyle.Render("Search "+a.activeCategory().Title()+": ") + a.input + "_"
	case modeAddName:
		return promptStyle.Render("Location name: ") + a.input + "_"
	case modeAddPath:
		return promptStyle.Render("Path for "+a.newName+": ") + a.input + "_"
	case modeConfirmDelete:
		if loc, ok := a.store.Get(a.locCursor); ok {
			return errorStyle.Render("Delete " + loc.Name + "? [y] yes  [any] no")
		}
	}
	return ""
}
