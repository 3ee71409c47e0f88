package table

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/tablewidth/internal/limiter"
	"github.com/oakwood-commons/tablewidth/internal/render"
	"github.com/oakwood-commons/tablewidth/pkg/logger"
)

const helpLine = "↑/↓ row  ←/→ column  [ ] resize  - + max width  w wrap  m mode  n numbers  c checkbox  space check  < > page  q quit"

// maxWrapLines is where the w key wraps around to one line.
const maxWrapLines = 5

// Browser is the bubbletea model of the interactive table.
type Browser struct {
	source *render.Table
	view   *Model

	// all holds every row; page is the limiter window currently shown.
	all  [][]string
	page limiter.Config

	width, height int
	resizeEvents  int
	message       string
	noColor       bool
	log           logr.Logger
}

// NewBrowser builds a browser over source. When page has a limit, rows are
// shown one window at a time and all holds the complete set.
func NewBrowser(source *render.Table, all [][]string, page limiter.Config, noColor bool, lgr logr.Logger) *Browser {
	if lgr.GetSink() == nil {
		lgr = logr.Discard()
	}
	b := &Browser{
		source:  source,
		all:     all,
		page:    page,
		noColor: noColor,
		log:     lgr,
	}
	b.view = NewModel(source)
	b.view.SetNoColor(noColor)
	return b
}

// Table returns the table being browsed.
func (b *Browser) Table() *render.Table { return b.source }

// TableView returns the table view.
func (b *Browser) TableView() *Model { return b.view }

// ResizeEvents counts layouts that announced a column count change.
func (b *Browser) ResizeEvents() int { return b.resizeEvents }

func (b *Browser) Init() tea.Cmd {
	return nil
}

func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
		b.view.SetWidth(b.width)
		b.view.SetHeight(b.height - 3)
		// The table occupies the window from its first paint on.
		if b.source.Grid.Rendered == 0 {
			b.source.Grid.Rendered = msg.Width
		}
		if b.source.Manager.IsResizingUpdateQueued() {
			b.source.Grid.Width = msg.Width
			b.record(b.source.Layout())
		} else {
			b.record(b.source.Resize(msg.Width))
		}
		b.view.Sync()
		return b, nil

	case tea.KeyPressMsg:
		return b.handleKey(msg)
	}
	var cmd tea.Cmd
	b.view, cmd = b.view.Update(msg)
	return b, cmd
}

func (b *Browser) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return b, tea.Quit
	case "left", "h":
		b.view.MoveFocus(-1)
		return b, nil
	case "right", "l":
		b.view.MoveFocus(1)
		return b, nil
	case "[":
		b.resizeFocused(-1)
		return b, nil
	case "]":
		b.resizeFocused(1)
		return b, nil
	case "-", "+", "=":
		step := b.source.Widths.ResizeStep
		if msg.String() == "-" {
			step = -step
		}
		maxWidth := b.source.Widths.MaxColumnWidth + step
		if b.source.SetBounds(b.source.Widths.MinColumnWidth, maxWidth) {
			b.message = fmt.Sprintf("max width %d", b.source.Widths.MaxColumnWidth)
			b.relayout()
		}
		return b, nil
	case "w":
		next := b.source.Widths.WrapTextMaxLines%maxWrapLines + 1
		b.source.SetWrapLines(next)
		b.message = fmt.Sprintf("wrap lines %d", next)
		b.relayout()
		return b, nil
	case "m":
		mode := b.source.ToggleMode()
		b.message = "mode " + string(mode)
		b.relayout()
		return b, nil
	case "n":
		b.source.SetRowNumbers(!b.source.RowNumbers())
		b.relayout()
		return b, nil
	case "c":
		b.source.SetCheckbox(!b.source.Checkbox())
		b.relayout()
		return b, nil
	case "space":
		if b.source.Checkbox() {
			b.source.ToggleChecked(b.view.Cursor())
			b.view.Sync()
		}
		return b, nil
	case ">", "pgdown":
		b.turnPage(1)
		return b, nil
	case "<", "pgup":
		b.turnPage(-1)
		return b, nil
	}
	var cmd tea.Cmd
	b.view, cmd = b.view.Update(msg)
	return b, cmd
}

func (b *Browser) resizeFocused(steps int) {
	res := b.source.ResizeColumn(b.view.Focus(), steps)
	switch {
	case res.Changed:
		b.message = fmt.Sprintf("resized %s by %+d", b.source.Headers()[b.view.Focus()], res.Delta)
	case b.source.Widths.ResizeColumnDisabled:
		b.message = "resizing is disabled"
	default:
		b.message = "column cannot be resized"
	}
	b.view.Sync()
}

func (b *Browser) turnPage(dir int) {
	if b.page.Limit <= 0 {
		return
	}
	next := b.page
	next.Offset = max(b.page.Offset+dir*b.page.Limit, 0)
	if next.Offset >= len(b.all) || next.Offset == b.page.Offset {
		return
	}
	b.page = next
	start, _ := next.Window(len(b.all))
	b.source.SetRows(limiter.Apply(next, b.all), start)
	b.message = fmt.Sprintf("rows %d-%d of %d", start+1, start+b.source.RowCount(), len(b.all))
	b.relayout()
}

func (b *Browser) relayout() {
	b.record(b.source.Layout())
	b.view.Sync()
}

func (b *Browser) record(res render.LayoutResult) {
	if res.ResizeEvent {
		b.resizeEvents++
	}
	if !res.Applied {
		b.log.V(1).Info("layout skipped", "queued", b.source.Manager.IsResizingUpdateQueued())
	}
}

// Status summarizes the current allocation.
func (b *Browser) Status() string {
	parts := make([]string, 0, len(b.source.Widths.ColumnWidths))
	for _, w := range b.source.Widths.ColumnWidths {
		parts = append(parts, fmt.Sprint(w))
	}
	status := fmt.Sprintf("%s · widths %s · table %d/%d · resize events %d",
		b.source.Manager.ColumnWidthMode(), strings.Join(parts, " "),
		b.source.RenderedWidth(), b.width, b.resizeEvents)
	if b.message != "" {
		status += " · " + b.message
	}
	return status
}

func (b *Browser) View() tea.View {
	status := b.Status()
	help := helpLine
	if !b.noColor {
		status = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Render(status)
		help = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(help)
	}
	v := tea.NewView(b.view.View() + "\n" + status + "\n" + help)
	v.AltScreen = true
	return v
}

// Run starts the browser and blocks until the user quits.
func Run(ctx context.Context, b *Browser, opts ...tea.ProgramOption) error {
	lgr := logger.FromContext(ctx)
	lgr.V(1).Info("starting browser", "rows", b.source.RowCount(), "columns", len(b.source.State.Columns))
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(b, opts...).Run()
	return err
}
