package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/spawncodes/internal/catalog"
	"github.com/jask/spawncodes/internal/config"
	"github.com/jask/spawncodes/internal/service"
)

// App is the terminal front end for one generation session.
type App struct {
	ctx      context.Context
	session  *service.Session
	store    *service.LocationStore
	brokers  map[catalog.Category]*service.ClipboardBroker
	searcher *catalog.Searcher
	logger   *slog.Logger
	keys     keyMap
	window   time.Duration

	// expireAfter schedules a redraw once a copy mark may have cleared.
	expireAfter func(d time.Duration, msg tea.Msg) tea.Cmd

	initial   string
	view      appView
	mode      inputMode
	tab       int
	cursors   map[catalog.Category]int
	locCursor int
	input     string
	newName   string
	status    string
}

// Deps are the collaborators the App drives.
type Deps struct {
	Session   *service.Session
	Store     *service.LocationStore
	Clipboard service.Clipboard
	Window    time.Duration
	Logger    *slog.Logger
	// Manifest, when set, is generated as soon as the program starts.
	Manifest string
}

type appView string

const (
	viewCommands  appView = "commands"
	viewLocations appView = "locations"
)

type inputMode string

const (
	modeNone          inputMode = ""
	modeOpenPath      inputMode = "openPath"
	modeExportPath    inputMode = "exportPath"
	modeSearch        inputMode = "search"
	modeAddName       inputMode = "addName"
	modeAddPath       inputMode = "addPath"
	modeConfirmDelete inputMode = "confirmDelete"
)

func New(ctx context.Context, deps Deps) *App {
	window := deps.Window
	if window <= 0 {
		window = service.DefaultConfirmWindow
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	brokers := make(map[catalog.Category]*service.ClipboardBroker, len(catalog.Categories))
	for _, c := range catalog.Categories {
		brokers[c] = service.NewClipboardBroker(deps.Clipboard, window)
	}
	return &App{
		ctx:      ctx,
		session:  deps.Session,
		store:    deps.Store,
		brokers:  brokers,
		searcher: catalog.NewSearcher(nil),
		logger:   logger,
		keys:     defaultKeys(),
		window:   window,
		expireAfter: func(d time.Duration, msg tea.Msg) tea.Cmd {
			return tea.Tick(d, func(time.Time) tea.Msg { return msg })
		},
		initial: strings.TrimSpace(deps.Manifest),
		view:    viewCommands,
		cursors: map[catalog.Category]int{},
	}
}

func (a *App) Init() tea.Cmd {
	if a.initial == "" {
		return nil
	}
	return a.selectManifest(config.ExpandHome(a.initial))
}

// Close cancels pending copy-mark timers.
func (a *App) Close() {
	for _, b := range a.brokers {
		b.Close()
	}
}

func (a *App) resetMarks() {
	for _, b := range a.brokers {
		b.Reset()
	}
	a.cursors = map[catalog.Category]int{}
}

func (a *App) activeCategory() catalog.Category {
	return catalog.Categories[a.tab]
}

// visible is the active category filtered by its search query.
func (a *App) visible() []string {
	return a.searcher.Results(a.activeCategory())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.mode != modeNone {
			return a.handleInputKey(m)
		}
		if key.Matches(m, a.keys.Quit) {
			a.Close()
			return a, tea.Quit
		}
		if a.view == viewLocations {
			return a.handleLocationsKey(m)
		}
		return a.handleCommandsKey(m)
	case generatedMsg:
		if !a.session.Complete(m.Result) {
			return a, nil
		}
		st := a.session.State()
		a.searcher.SetCatalog(st.Catalog)
		a.resetMarks()
		if st.Phase == service.PhaseFailed {
			a.status = a.session.Message()
		} else {
			a.status = ""
		}
	case exportedMsg:
		if m.err != nil {
			a.status = a.session.Message()
			if a.status == "" {
				a.status = m.err.Error()
			}
			return a, nil
		}
		a.status = "exported to " + m.path
	case copiedMsg:
		if m.err != nil {
			a.logger.Warn("copy failed", "category", m.category.String(), "index", m.index, "err", m.err)
			a.status = m.err.Error()
			return a, nil
		}
		a.status = ""
		return a, a.expireAfter(a.window, markExpiredMsg{})
	case markExpiredMsg:
		// redraw only; marks are read from the brokers
	case statusMsg:
		a.status = string(m)
	}
	return a, nil
}

func (a *App) handleCommandsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	cat := a.activeCategory()
	switch {
	case key.Matches(m, a.keys.Open):
		a.mode = modeOpenPath
		a.input = ""
	case key.Matches(m, a.keys.Locations):
		a.view = viewLocations
		a.status = ""
	case key.Matches(m, a.keys.Export):
		if a.session.State().Phase != service.PhaseReady {
			a.status = "generate commands before exporting"
			return a, nil
		}
		a.mode = modeExportPath
		a.input = ""
	case key.Matches(m, a.keys.Search):
		a.mode = modeSearch
		a.input = a.searcher.Query(cat)
	case key.Matches(m, a.keys.NextTab):
		a.tab = (a.tab + 1) % len(catalog.Categories)
	case key.Matches(m, a.keys.PrevTab):
		a.tab = (a.tab + len(catalog.Categories) - 1) % len(catalog.Categories)
	case key.Matches(m, a.keys.Up):
		if a.cursors[cat] > 0 {
			a.cursors[cat]--
		}
	case key.Matches(m, a.keys.Down):
		if a.cursors[cat] < len(a.visible())-1 {
			a.cursors[cat]++
		}
	case key.Matches(m, a.keys.Copy):
		if a.session.State().Phase != service.PhaseReady {
			return a, nil
		}
		rows := a.visible()
		if len(rows) == 0 {
			return a, nil
		}
		idx := a.clampCursor(cat, len(rows))
		return a, a.copyCmd(cat, idx, rows[idx])
	case key.Matches(m, a.keys.CopyBP):
		if a.session.State().Phase != service.PhaseReady {
			return a, nil
		}
		rows := a.visible()
		if len(rows) == 0 {
			return a, nil
		}
		idx := a.clampCursor(cat, len(rows))
		tok, ok := catalog.ExtractBlueprint(rows[idx])
		if !ok {
			a.status = "no blueprint path in this command"
			return a, nil
		}
		return a, a.copyCmd(cat, idx, tok)
	default:
		if r := m.String(); len(r) == 1 && r[0] >= '1' && r[0] <= '5' {
			a.tab = int(r[0] - '1')
		}
	}
	return a, nil
}

func (a *App) clampCursor(cat catalog.Category, n int) int {
	idx := a.cursors[cat]
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	a.cursors[cat] = idx
	return idx
}

func (a *App) handleLocationsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	locs := a.store.List()
	switch {
	case key.Matches(m, a.keys.Back):
		a.view = viewCommands
	case key.Matches(m, a.keys.Up):
		if a.locCursor > 0 {
			a.locCursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.locCursor < len(locs)-1 {
			a.locCursor++
		}
	case key.Matches(m, a.keys.Add):
		a.mode = modeAddName
		a.input = ""
		a.newName = ""
	case key.Matches(m, a.keys.Delete):
		if len(locs) > 0 {
			a.mode = modeConfirmDelete
		}
	case key.Matches(m, a.keys.Use):
		loc, ok := a.store.Get(a.locCursor)
		if !ok {
			return a, nil
		}
		a.view = viewCommands
		return a, a.selectManifest(loc.Path)
	}
	return a, nil
}

func (a *App) handleInputKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.mode == modeConfirmDelete {
		a.mode = modeNone
		if m.String() != "y" {
			return a, nil
		}
		if err := a.store.Remove(a.ctx, a.locCursor); err != nil {
			a.status = err.Error()
			return a, nil
		}
		if n := len(a.store.List()); a.locCursor >= n && n > 0 {
			a.locCursor = n - 1
		}
		a.status = ""
		return a, nil
	}

	switch m.Type {
	case tea.KeyCtrlC:
		a.Close()
		return a, tea.Quit
	case tea.KeyEsc:
		if a.mode == modeSearch {
			// esc keeps the query; clear it with an empty entry
			a.mode = modeNone
			return a, nil
		}
		a.mode = modeNone
		a.input = ""
		return a, nil
	case tea.KeyEnter:
		return a.submitInput()
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.input) > 0 {
			r := []rune(a.input)
			a.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		a.input += " "
	case tea.KeyRunes:
		a.input += string(m.Runes)
	}
	if a.mode == modeSearch {
		a.setQuery(a.activeCategory(), a.input)
	}
	return a, nil
}

// setQuery filters cat. Marks are keyed by visible row, so a new query
// clears them along with the cursor.
func (a *App) setQuery(cat catalog.Category, q string) {
	if a.searcher.Query(cat) == q {
		return
	}
	a.searcher.SetQuery(cat, q)
	a.brokers[cat].Reset()
	a.cursors[cat] = 0
}

func (a *App) submitInput() (tea.Model, tea.Cmd) {
	mode := a.mode
	value := strings.TrimSpace(a.input)
	a.mode = modeNone
	a.input = ""
	switch mode {
	case modeSearch:
		a.setQuery(a.activeCategory(), value)
	case modeOpenPath:
		return a, a.selectManifest(config.ExpandHome(value))
	case modeExportPath:
		return a, a.exportCmd(config.ExpandHome(value))
	case modeAddName:
		a.newName = value
		a.mode = modeAddPath
	case modeAddPath:
		err := a.store.Add(a.ctx, a.newName, config.ExpandHome(value))
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			a.status = vErr.Msg
		case err != nil:
			a.status = err.Error()
		default:
			a.status = "saved location " + a.newName
			a.locCursor = len(a.store.List()) - 1
		}
		a.newName = ""
	}
	return a, nil
}

// selectManifest starts a generation; an empty path is a cancelled prompt.
func (a *App) selectManifest(path string) tea.Cmd {
	req, err := a.session.SelectManifest(path)
	if errors.Is(err, service.ErrSelectionCancelled) {
		return nil
	}
	if err != nil {
		a.status = err.Error()
		return nil
	}
	// the previous catalog is gone from the session; drop it here too
	a.searcher.SetCatalog(nil)
	a.resetMarks()
	a.status = ""
	return func() tea.Msg {
		return generatedMsg{Result: a.session.Run(a.ctx, req)}
	}
}

func (a *App) exportCmd(dest string) tea.Cmd {
	if dest == "" {
		return nil
	}
	a.status = "exporting..."
	return func() tea.Msg {
		err := a.session.Export(a.ctx, dest)
		if errors.Is(err, service.ErrSelectionCancelled) {
			return statusMsg("")
		}
		return exportedMsg{path: dest, err: err}
	}
}

func (a *App) copyCmd(cat catalog.Category, idx int, text string) tea.Cmd {
	b := a.brokers[cat]
	return func() tea.Msg {
		return copiedMsg{category: cat, index: idx, err: b.Copy(text, idx)}
	}
}

// messages
type generatedMsg struct {
	Result service.Result
}

type exportedMsg struct {
	path string
	err  error
}

type copiedMsg struct {
	category catalog.Category
	index    int
	err      error
}

type markExpiredMsg struct{}

type statusMsg string
