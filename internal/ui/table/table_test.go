package table

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/tablewidth/internal/config"
	"github.com/oakwood-commons/tablewidth/internal/layout"
	"github.com/oakwood-commons/tablewidth/internal/limiter"
	"github.com/oakwood-commons/tablewidth/internal/render"
	"github.com/oakwood-commons/tablewidth/pkg/widths"
)

func testConfig() config.Config {
	cfg := config.Defaults()
	cfg.Mode = "fixed"
	cfg.NoColor = true
	return cfg
}

func testDoc(n int) layout.Document {
	names := []string{"Ada", "Grace", "Linus", "Ken", "Barbara"}
	cities := []string{"London", "Arlington", "Helsinki", "New Orleans", "Boston"}
	doc := layout.Document{Columns: []layout.ColumnSpec{{Key: "name"}, {Key: "city"}}}
	for i := 0; i < n; i++ {
		doc.Rows = append(doc.Rows, []string{names[i], cities[i]})
	}
	return doc
}

func key(s string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: rune(s[0]), Text: s}
}

func send(t *testing.T, b *Browser, msgs ...tea.Msg) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var m tea.Model
		m, cmd = b.Update(msg)
		require.Same(t, b, m)
	}
	return cmd
}

func TestBrowser_LayoutFollowsWindow(t *testing.T) {
	doc := testDoc(2)
	b := NewBrowser(render.New(doc, render.Options{Config: testConfig()}), doc.Rows, limiter.Config{}, true, logr.Discard())

	send(t, b, tea.WindowSizeMsg{Width: 41, Height: 20})
	tbl := b.Table()
	assert.Equal(t, []int{20, 20}, tbl.Widths.ColumnWidths)
	assert.Equal(t, 1, b.ResizeEvents())
	first := b.TableView().View()
	assert.Contains(t, first, "Ada")
	assert.Contains(t, first, "London")
	assert.Contains(t, b.Status(), "widths 20 20")
	assert.Contains(t, b.Status(), "table 41/41")

	send(t, b, tea.WindowSizeMsg{Width: 61, Height: 20})
	assert.Equal(t, []int{30, 30}, tbl.Widths.ColumnWidths)
	assert.Equal(t, 1, b.ResizeEvents(), "same column count")

	view := b.TableView().View()
	assert.Contains(t, view, focusMarker+"name")
	assert.Contains(t, view, "Arlington")
}

func TestBrowser_ResizeAndToggles(t *testing.T) {
	doc := testDoc(2)
	b := NewBrowser(render.New(doc, render.Options{Config: testConfig()}), doc.Rows, limiter.Config{}, true, logr.Discard())
	send(t, b, tea.WindowSizeMsg{Width: 41, Height: 20})
	tbl := b.Table()

	send(t, b, key("]"))
	assert.Equal(t, []int{22, 20}, tbl.Widths.ColumnWidths)
	assert.Contains(t, b.Status(), "resized name by +2")

	send(t, b, tea.KeyPressMsg{Code: tea.KeyRight}, key("["))
	assert.Equal(t, 1, b.TableView().Focus())
	assert.Equal(t, []int{22, 18}, tbl.Widths.ColumnWidths)

	send(t, b, key("n"))
	require.True(t, tbl.RowNumbers())
	assert.Equal(t, []int{3, 22, 18}, tbl.Widths.ColumnWidths)
	assert.Equal(t, 2, b.ResizeEvents())

	send(t, b, key("c"))
	assert.Equal(t, []int{5, 3, 22, 18}, tbl.Widths.ColumnWidths)
	assert.Equal(t, 3, b.ResizeEvents())

	send(t, b, tea.KeyPressMsg{Code: tea.KeySpace})
	assert.True(t, tbl.Checked(0))
	assert.Contains(t, b.TableView().View(), "[x]")

	send(t, b, key("m"))
	assert.Equal(t, widths.ModeAuto, tbl.Manager.ColumnWidthMode())
	assert.Contains(t, b.Status(), "mode auto")

	assert.NotNil(t, send(t, b, key("q")))
}

func TestBrowser_FixedColumnsRefuseResize(t *testing.T) {
	doc := testDoc(1)
	doc.Columns[0].FixedWidth = 10
	b := NewBrowser(render.New(doc, render.Options{Config: testConfig()}), doc.Rows, limiter.Config{}, true, logr.Discard())
	send(t, b, tea.WindowSizeMsg{Width: 41, Height: 20}, key("]"))

	assert.Equal(t, 10, b.Table().Widths.ColumnWidths[0])
	assert.Contains(t, b.Status(), "column cannot be resized")

	b.Table().Widths.ResizeColumnDisabled = true
	send(t, b, tea.KeyPressMsg{Code: tea.KeyRight}, key("]"))
	assert.Contains(t, b.Status(), "resizing is disabled")
}

func TestBrowser_HiddenUntilFirstSize(t *testing.T) {
	doc := testDoc(2)
	b := NewBrowser(render.New(doc, render.Options{Config: testConfig()}), doc.Rows, limiter.Config{}, true, logr.Discard())

	send(t, b, key("m"))
	assert.Empty(t, b.Table().Widths.ColumnWidths, "nothing is measured before the first paint")
	assert.False(t, b.Table().Manager.IsResizingUpdateQueued())

	send(t, b, tea.WindowSizeMsg{Width: 41, Height: 20})
	assert.Len(t, b.Table().Widths.ColumnWidths, 2)
	assert.Equal(t, 40, b.Table().Widths.TableWidth)
}

func TestBrowser_Paging(t *testing.T) {
	cfg := testConfig()
	cfg.RowNumbers = true
	doc := testDoc(5)
	page := limiter.Config{Limit: 2}
	tbl := render.New(doc.WithRows(limiter.Apply(page, doc.Rows)), render.Options{Config: cfg})
	b := NewBrowser(tbl, doc.Rows, page, true, logr.Discard())

	send(t, b, key(">"))
	assert.Equal(t, 2, tbl.Page())
	assert.Equal(t, []string{"3", "Linus", "Helsinki"}, tbl.Cells(0))
	assert.Contains(t, b.Status(), "rows 3-4 of 5")

	send(t, b, key(">"))
	assert.Equal(t, 1, tbl.RowCount())
	assert.Contains(t, b.Status(), "rows 5-5 of 5")

	send(t, b, key(">"))
	assert.Equal(t, 4, tbl.Page(), "no page past the end")

	send(t, b, key("<"), key("<"), key("<"))
	assert.Equal(t, 0, tbl.Page())
	assert.Equal(t, "1", tbl.Cells(0)[0])
}

func TestModel_SyncMirrorsRTL(t *testing.T) {
	cfg := testConfig()
	cfg.Direction = "rtl"
	cfg.Width = 41
	doc := testDoc(1)
	tbl := render.New(doc, render.Options{Config: cfg, Observed: true})
	require.True(t, tbl.Layout().Applied)

	m := NewModel(tbl)
	header := strings.SplitN(m.View(), "\n", 2)[0]
	assert.Less(t, strings.Index(header, "city"), strings.Index(header, "name"))

	assert.Contains(t, m.View(), "Ada")

	// name is drawn on the right, so moving left reaches city.
	m.MoveFocus(-9)
	assert.Equal(t, 1, m.Focus())
	m.MoveFocus(5)
	assert.Equal(t, 0, m.Focus())
	assert.Contains(t, m.String(), "columns=2")
}

func TestBrowser_ArrowsFollowScreenInRTL(t *testing.T) {
	cfg := testConfig()
	cfg.Direction = "rtl"
	doc := testDoc(2)
	b := NewBrowser(render.New(doc, render.Options{Config: cfg}), doc.Rows, limiter.Config{}, true, logr.Discard())
	send(t, b, tea.WindowSizeMsg{Width: 41, Height: 20})
	require.Equal(t, 0, b.TableView().Focus())

	send(t, b, tea.KeyPressMsg{Code: tea.KeyLeft})
	assert.Equal(t, 1, b.TableView().Focus())
	send(t, b, tea.KeyPressMsg{Code: tea.KeyLeft})
	assert.Equal(t, 1, b.TableView().Focus(), "city is the leftmost column")

	send(t, b, tea.KeyPressMsg{Code: tea.KeyRight})
	assert.Equal(t, 0, b.TableView().Focus())
}

func TestBrowser_BoundsAndWrapKeys(t *testing.T) {
	doc := testDoc(2)
	b := NewBrowser(render.New(doc, render.Options{Config: testConfig()}), doc.Rows, limiter.Config{}, true, logr.Discard())
	send(t, b, tea.WindowSizeMsg{Width: 121, Height: 20})
	tbl := b.Table()
	require.Equal(t, []int{60, 60}, tbl.Widths.ColumnWidths)

	send(t, b, key("-"))
	assert.Equal(t, []int{58, 58}, tbl.Widths.ColumnWidths)
	assert.Equal(t, 58, tbl.State.Columns[0].MaxWidth)
	assert.Contains(t, b.Status(), "max width 58")

	send(t, b, key("+"), key("="))
	assert.Equal(t, 62, tbl.Widths.MaxColumnWidth)
	assert.Equal(t, []int{60, 60}, tbl.Widths.ColumnWidths)
	assert.Equal(t, 1, b.ResizeEvents(), "column count unchanged")

	send(t, b, key("w"))
	assert.Equal(t, 4, tbl.Widths.WrapTextMaxLines)
	assert.Contains(t, b.Status(), "wrap lines 4")
	send(t, b, key("w"), key("w"))
	assert.Equal(t, 1, tbl.Widths.WrapTextMaxLines)
}
