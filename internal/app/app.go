package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	keyhelp "github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/rebeliceyang/lazygrid/internal/config"
	"github.com/rebeliceyang/lazygrid/internal/export"
	"github.com/rebeliceyang/lazygrid/internal/grid"
	"github.com/rebeliceyang/lazygrid/internal/models"
	"github.com/rebeliceyang/lazygrid/internal/source"
	"github.com/rebeliceyang/lazygrid/internal/ui/components"
	"github.com/rebeliceyang/lazygrid/internal/ui/help"
	"github.com/rebeliceyang/lazygrid/internal/ui/theme"
	"github.com/rebeliceyang/lazygrid/internal/util/logx"
)

const loadTimeout = 30 * time.Second

var errNoSource = errors.New("no source configured: pass --path or --dsn")

// App is the main application model
type App struct {
	config *config.Config
	theme  theme.Theme
	keys   KeyMap
	width  int
	height int

	openSource func(ctx context.Context, cfg config.SourceConfig) (source.Source, error)
	copyText   func(string) error
	exportDir  string

	src     source.Source
	pager   source.Pager // set only while paging on the server
	dataset *source.Dataset
	columns []grid.ColumnDef[source.Record]
	grid    *components.DataGrid[source.Record]

	// pendingPage is the page the grid moved to during the last update. It
	// is fetched once the update has returned.
	pendingPage *models.PaginationState
	pageSeq     int
	loading     bool

	showHelp     bool
	showLog      bool
	showError    bool
	errorOverlay *components.ErrorOverlay

	frame   components.Panel
	preview *components.PreviewPane
	keyHelp keyhelp.Model
	status  string
}

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Title   string
	Message string
}

// SourceLoadedMsg is sent when the source has been opened and read
type SourceLoadedMsg struct {
	Source  source.Source
	Dataset *source.Dataset
	Err     error
}

// PageLoadedMsg is sent when a server page arrives. Seq identifies the
// request so that superseded pages are dropped.
type PageLoadedMsg struct {
	Seq     int
	Dataset *source.Dataset
	Err     error
}

// ExportedMsg is sent when an export has been written
type ExportedMsg struct {
	Path string
	Rows int
	Err  error
}

// New creates a new App instance with config
func New(cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.GetDefaults()
	}
	th := theme.GetTheme(cfg.UI.Theme)

	kh := keyhelp.New()
	kh.Styles.ShortKey = lipgloss.NewStyle().Foreground(th.Warning)
	kh.Styles.ShortDesc = lipgloss.NewStyle().Foreground(th.Foreground)
	kh.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(th.Muted)

	return &App{
		config:       cfg,
		theme:        th,
		keys:         DefaultKeyMap(),
		openSource:   source.Open,
		copyText:     clipboard.WriteAll,
		exportDir:    ".",
		errorOverlay: components.NewErrorOverlay(th),
		frame: components.Panel{
			Style: lipgloss.NewStyle().BorderForeground(th.BorderFocused),
		},
		preview: components.NewPreviewPane(th),
		keyHelp: kh,
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.loadSource(a.initialPage())
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ErrorMsg:
		a.ShowError(msg.Title, msg.Message)
		return a, nil

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.grid != nil {
			a.grid.SetSize(a.gridSize())
		}
		return a, nil

	case SourceLoadedMsg:
		return a, a.handleSourceLoaded(msg)

	case PageLoadedMsg:
		return a, a.handlePageLoaded(msg)

	case ExportedMsg:
		if msg.Err != nil {
			a.ShowError("Export Failed", fmt.Sprintf("Could not write %s:\n\n%v", msg.Path, msg.Err))
			return a, nil
		}
		logx.Infof("exported %d rows to %s", msg.Rows, msg.Path)
		a.status = fmt.Sprintf("exported %d rows to %s", msg.Rows, msg.Path)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.MouseMsg:
		if a.showError || a.showHelp || a.showLog {
			return a, nil
		}
		return a.updateGrid(msg)
	}

	// Spinner ticks, cursor blinks and the like belong to the grid
	return a.updateGrid(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle error overlay dismissal first if visible
	if a.showError {
		switch {
		case key.Matches(msg, a.keys.Dismiss):
			a.DismissError()
		case msg.String() == "ctrl+c" || msg.String() == "q":
			return a, tea.Quit
		}
		// Consume all other keys when error is showing
		return a, nil
	}

	// Text fields and filter editors get every key, q included
	if a.grid != nil && a.grid.Capturing() {
		return a.updateGrid(msg)
	}

	if a.showHelp {
		if key.Matches(msg, a.keys.Help, a.keys.Dismiss, a.keys.Quit) {
			a.showHelp = false
		}
		return a, nil
	}
	if a.showLog {
		if key.Matches(msg, a.keys.Log, a.keys.Dismiss, a.keys.Quit) {
			a.showLog = false
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return a, nil
	case key.Matches(msg, a.keys.Log):
		a.showLog = true
		return a, nil
	case key.Matches(msg, a.keys.Reload):
		a.status = "reloading..."
		return a, a.loadSource(a.currentPage())
	case key.Matches(msg, a.keys.CopyRow):
		a.copyRow()
		return a, nil
	case key.Matches(msg, a.keys.ExportCSV):
		return a, a.export("csv")
	case key.Matches(msg, a.keys.ExportJSON):
		return a, a.export("json")
	case key.Matches(msg, a.keys.Preview):
		a.preview.Toggle()
		if a.grid != nil {
			a.grid.SetSize(a.gridSize())
		}
		return a, nil
	case a.preview.Visible && key.Matches(msg, a.keys.ScrollUp):
		a.preview.ScrollUp()
		return a, nil
	case a.preview.Visible && key.Matches(msg, a.keys.ScrollDown):
		a.preview.ScrollDown()
		return a, nil
	}

	return a.updateGrid(msg)
}

// updateGrid forwards a message to the grid and fetches any page it moved to
func (a *App) updateGrid(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.grid == nil {
		return a, nil
	}
	var cmd tea.Cmd
	a.grid, cmd = a.grid.Update(msg)
	return a, tea.Batch(cmd, a.flushPage())
}

func (a *App) handleSourceLoaded(msg SourceLoadedMsg) tea.Cmd {
	if msg.Err != nil {
		logx.Errorf("failed to load source: %v", msg.Err)
		a.status = ""
		a.ShowError("Source Error", fmt.Sprintf("Failed to load data:\n\n%v", msg.Err))
		return nil
	}

	if a.src != nil && a.src != msg.Source {
		_ = a.src.Close()
	}
	a.src = msg.Source
	a.pager = nil
	if p, ok := msg.Source.(source.Pager); ok && a.config.Grid.WithPagination {
		a.pager = p
	}
	a.dataset = msg.Dataset
	a.columns = BuildColumns(a.config.Grid.Columns, msg.Dataset)
	a.loading = false
	a.pageSeq++

	logx.Infof("loaded %d records from %s", len(msg.Dataset.Records), msg.Source.Name())
	a.status = fmt.Sprintf("loaded %s", msg.Source.Name())

	if a.grid == nil {
		a.grid = components.NewDataGrid(a.props())
		return tea.Batch(a.grid.Init(), a.flushPage())
	}
	return tea.Batch(a.grid.SetProps(a.props()), a.flushPage())
}

func (a *App) handlePageLoaded(msg PageLoadedMsg) tea.Cmd {
	if msg.Seq != a.pageSeq {
		logx.Debugf("dropping superseded page %d", msg.Seq)
		return nil
	}
	a.loading = false
	if msg.Err != nil {
		logx.Errorf("failed to load page: %v", msg.Err)
		a.ShowError("Query Failed", fmt.Sprintf("Failed to load page:\n\n%v", msg.Err))
		return a.grid.SetProps(a.props())
	}

	fields := a.dataset.Fields
	a.dataset = msg.Dataset
	if len(a.dataset.Fields) == 0 {
		a.dataset.Fields = fields
	}
	return tea.Batch(a.grid.SetProps(a.props()), a.flushPage())
}

// flushPage starts the fetch for a page change reported by the grid. Only
// server-paged sources fetch; local data is already complete.
func (a *App) flushPage() tea.Cmd {
	if a.pendingPage == nil {
		return nil
	}
	next := *a.pendingPage
	a.pendingPage = nil
	if a.pager == nil || a.grid == nil {
		return nil
	}

	a.pageSeq++
	seq := a.pageSeq
	a.loading = true
	pager := a.pager
	req := source.PageRequest{PageIndex: next.PageIndex, PageSize: next.PageSize}

	fetch := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		ds, err := pager.Page(ctx, req)
		return PageLoadedMsg{Seq: seq, Dataset: ds, Err: err}
	}
	return tea.Batch(a.grid.SetProps(a.props()), fetch)
}

// loadSource opens the configured source and reads it. Server-paged
// sources read the requested page only.
func (a *App) loadSource(page models.PaginationState) tea.Cmd {
	cfg := a.config.Source
	open := a.openSource
	paginate := a.config.Grid.WithPagination

	return func() tea.Msg {
		if cfg.Path == "" && cfg.DSN == "" {
			return SourceLoadedMsg{Err: errNoSource}
		}

		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		src, err := open(ctx, cfg)
		if err != nil {
			return SourceLoadedMsg{Err: err}
		}

		var ds *source.Dataset
		if p, ok := src.(source.Pager); ok {
			req := source.PageRequest{PageIndex: page.PageIndex, PageSize: page.PageSize}
			if !paginate {
				req = source.PageRequest{PageSize: cfg.Limit}
			}
			ds, err = p.Page(ctx, req)
		} else {
			ds, err = src.Load(ctx)
		}
		if err != nil {
			_ = src.Close()
			return SourceLoadedMsg{Err: err}
		}
		return SourceLoadedMsg{Source: src, Dataset: ds}
	}
}

func (a *App) initialPage() models.PaginationState {
	size := a.config.Grid.InitialPageSize
	if size <= 0 {
		size = models.DefaultPageSize
	}
	return models.PaginationState{PageIndex: a.config.Grid.InitialPageIndex, PageSize: size}
}

func (a *App) currentPage() models.PaginationState {
	if a.grid == nil {
		return a.initialPage()
	}
	return a.grid.Table().State().Pagination
}

// props derives the grid props from config and the loaded data
func (a *App) props() components.Props[source.Record] {
	g := a.config.Grid
	ui := a.config.UI

	p := components.Props[source.Record]{
		Data:              a.dataset.Records,
		Columns:           a.columns,
		WithGlobalFilter:  g.WithGlobalFilter,
		WithColumnFilters: g.WithColumnFilters,
		WithSorting:       g.WithSorting,
		WithPagination:    g.WithPagination,
		PageSizes:         g.PageSizes,
		InitialPageIndex:  g.InitialPageIndex,
		InitialPageSize:   g.InitialPageSize,
		OnSearch:          a.onSearch,
		OnSort:            a.onSort,
		OnFilter:          a.onFilter,
		OnPageChange:      a.onPageChange,
		Theme:             a.theme,
		Striped:           ui.Striped,
		HighlightOnHover:  ui.HighlightOnHover,
		NoEllipsis:        ui.NoEllipsis,
		Loading:           a.loading,
		Mouse:             ui.MouseEnabled,
	}
	p.Width, p.Height = a.gridSize()
	if a.pager != nil {
		p.Total = a.dataset.Total
	}
	return p
}

func (a *App) onSearch(next string) {
	logx.Debugf("search changed to %q", next)
}

func (a *App) onSort(next models.SortingState) {
	parts := make([]string, len(next))
	for i, s := range next {
		parts[i] = s.ID + " " + s.Direction().String()
	}
	logx.Debugf("sort changed to [%s]", strings.Join(parts, ", "))
}

func (a *App) onFilter(next models.ColumnFiltersState) {
	ids := make([]string, len(next))
	for i, f := range next {
		ids[i] = f.ID
	}
	logx.Debugf("column filters changed to [%s]", strings.Join(ids, ", "))
}

func (a *App) onPageChange(next models.PaginationState) {
	logx.Debugf("page changed to %d (size %d)", next.PageIndex, next.PageSize)
	a.pendingPage = &next
}

// gridSize is the area inside the frame, below its title
func (a *App) gridSize() (int, int) {
	// Top bar, bottom bar, frame border and frame title
	w := a.width - 2
	h := a.height - 5 - a.preview.Height()
	if w < 20 {
		w = 20
	}
	if h < 5 {
		h = 5
	}
	return w, h
}

// copyRow copies the selected row as tab-separated cells
func (a *App) copyRow() {
	if a.grid == nil {
		return
	}
	row, ok := a.grid.SelectedRow()
	if !ok {
		a.status = "no row selected"
		return
	}
	cols := a.grid.Table().Columns()
	cells := make([]string, len(cols))
	for i, col := range cols {
		cells[i] = col.Render(row.GetValue(col))
	}
	if err := a.copyText(strings.Join(cells, "\t")); err != nil {
		a.ShowError("Clipboard Error", fmt.Sprintf("Could not copy row:\n\n%v", err))
		return
	}
	a.status = fmt.Sprintf("copied row %s", row.ID)
}

// exportTable renders every visible row across all pages
func (a *App) exportTable() export.Table {
	cols := a.grid.Table().Columns()
	var t export.Table
	for _, col := range cols {
		t.IDs = append(t.IDs, col.ID())
		t.Headers = append(t.Headers, col.Header())
	}
	for _, row := range a.grid.VisibleRows() {
		cells := make([]string, len(cols))
		values := make([]any, len(cols))
		for i, col := range cols {
			v := row.GetValue(col)
			values[i] = v
			cells[i] = col.Render(v)
		}
		t.Cells = append(t.Cells, cells)
		t.Values = append(t.Values, values)
	}
	return t
}

func (a *App) export(format string) tea.Cmd {
	if a.grid == nil {
		return nil
	}
	t := a.exportTable()
	path := export.FileName(a.exportDir, format)
	write := export.ExportToCSV
	if format == "json" {
		write = export.ExportToJSON
	}
	return func() tea.Msg {
		err := write(t, path)
		return ExportedMsg{Path: path, Rows: len(t.Cells), Err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var view string
	switch {
	case a.showError:
		// Render the error centered on top of everything
		view = lipgloss.Place(
			a.width, a.height,
			lipgloss.Center, lipgloss.Center,
			a.errorOverlay.View(),
		)
	case a.showHelp:
		view = help.Render(a.width, a.height, a.theme, a.helpSections()...)
	case a.showLog:
		view = a.renderLog()
	default:
		view = a.renderNormalView()
	}

	if a.config.UI.MouseEnabled {
		return zone.Scan(view)
	}
	return view
}

func (a *App) helpSections() []help.Section {
	gridKeys := components.DefaultGridKeyMap()
	if a.grid != nil {
		gridKeys = a.grid.Keys
	}
	titles := []string{"Navigation", "Sort & Search", "Pages", "Columns", "Filter Editor"}

	var sections []help.Section
	for i, group := range gridKeys.FullHelp() {
		title := "Grid"
		if i < len(titles) {
			title = titles[i]
		}
		sections = append(sections, help.Section{Title: title, Bindings: group})
	}
	appTitles := []string{"Rows", "Application"}
	for i, group := range a.keys.FullHelp() {
		sections = append(sections, help.Section{Title: appTitles[i], Bindings: group})
	}
	return sections
}

func (a *App) renderLog() string {
	lines := logx.Lines()
	if limit := a.height - 3; limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	content := strings.Join(lines, "\n")
	if content == "" {
		content = lipgloss.NewStyle().Foreground(a.theme.Muted).Render("(no log lines)")
	}
	p := components.Panel{
		Title:   "Log",
		Content: content,
		Width:   a.width - 2,
		Height:  a.height - 2,
		Style:   lipgloss.NewStyle().BorderForeground(a.theme.Border),
	}
	return p.View()
}

func (a *App) renderNormalView() string {
	topBarLeft := "lazygrid"
	topBarRight := ""
	if a.src != nil {
		topBarLeft += " · " + a.src.Name()
	}
	if a.grid != nil {
		topBarRight = fmt.Sprintf("%d rows", a.grid.Table().RowCount())
	}
	topBar := lipgloss.NewStyle().
		Width(a.width).
		Background(a.theme.BorderFocused).
		Foreground(a.theme.Background).
		Padding(0, 2).
		Render(a.formatStatusBar(topBarLeft, topBarRight))

	bottomBarLeft := a.status
	shortHelp := a.keys.ShortHelp()
	if a.grid != nil {
		if s := a.grid.StatusLine(); s != "" {
			bottomBarLeft = s
			if a.status != "" {
				bottomBarLeft = a.status + " · " + s
			}
		}
		shortHelp = append(a.grid.Keys.ShortHelp(), shortHelp...)
	}
	bottomBar := lipgloss.NewStyle().
		Width(a.width).
		Background(a.theme.Selection).
		Foreground(a.theme.Foreground).
		Padding(0, 2).
		Render(a.formatStatusBar(bottomBarLeft, a.keyHelp.ShortHelpView(shortHelp)))

	a.frame.Width, a.frame.Height = a.width-2, a.height-4-a.preview.Height()
	a.frame.Title = "Data"
	if a.grid == nil {
		a.frame.Content = lipgloss.NewStyle().Foreground(a.theme.Muted).Render("Loading source...")
	} else {
		a.frame.Content = a.grid.View()
	}

	sections := []string{topBar, a.frame.View()}
	if a.preview.Visible {
		a.updatePreview()
		a.preview.Width = a.width
		sections = append(sections, a.preview.View())
	}
	sections = append(sections, bottomBar)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// updatePreview points the preview at the cell under the cursor
func (a *App) updatePreview() {
	if a.grid == nil {
		a.preview.SetContent("", "")
		return
	}
	col := a.grid.ActiveColumn()
	row, ok := a.grid.SelectedRow()
	if col == nil || !ok {
		a.preview.SetContent("", "")
		return
	}
	v := row.GetValue(col)
	if v == nil {
		a.preview.SetContent("", col.Header())
		return
	}
	a.preview.SetContent(col.Render(v), col.Header())
}

// formatStatusBar formats a status bar with left and right aligned content
func (a *App) formatStatusBar(left, right string) string {
	// Account for padding (2 chars on each side = 4 total)
	availableWidth := a.width - 4
	if availableWidth < 0 {
		availableWidth = 0
	}

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)

	// If content is too wide, truncate
	if leftLen+rightLen > availableWidth {
		if availableWidth > rightLen {
			return ansi.Truncate(left, availableWidth-rightLen, "") + right
		}
		return ansi.Truncate(left, availableWidth, "")
	}

	spacing := availableWidth - leftLen - rightLen
	return left + strings.Repeat(" ", spacing) + right
}

// ShowError displays an error overlay with the given title and message
func (a *App) ShowError(title, message string) {
	a.errorOverlay.SetError(title, message)
	a.showError = true
}

// DismissError hides the error overlay
func (a *App) DismissError() {
	a.showError = false
}
