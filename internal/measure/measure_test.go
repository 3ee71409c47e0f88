package measure

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrid(t *testing.T) {
	g := &Grid{
		Headers:  []string{"id", "名前", ""},
		FirstRow: []string{"1", "abc", "hello"},
		Width:    40,
	}

	assert.Equal(t, 38, g.AvailableWidth())
	assert.Equal(t, []int{4, 6, 2}, g.HeaderCellWidths())
	assert.Equal(t, []int{3, 5, 7}, g.DataCellWidths())
	assert.Zero(t, g.TableElementWidth())

	g.Rendered = 40
	assert.Equal(t, 40, g.TableElementWidth())
}

func TestGrid_NoData(t *testing.T) {
	g := &Grid{Headers: []string{"a"}, Width: 3}
	assert.Nil(t, g.DataCellWidths())
	assert.Equal(t, 3, g.AvailableWidth())

	narrow := &Grid{Headers: []string{"a", "b", "c", "d"}, Width: 2}
	assert.Zero(t, narrow.AvailableWidth())
}

func TestChrome(t *testing.T) {
	assert.Zero(t, Chrome(0))
	assert.Zero(t, Chrome(1))
	assert.Equal(t, 3, Chrome(4))
}

func TestDetectTerminalWidth(t *testing.T) {
	orig := termGetSize
	defer func() { termGetSize = orig }()

	termGetSize = func(int) (int, int, error) { return 97, 30, nil }
	assert.Equal(t, 97, DetectTerminalWidth())
	assert.Equal(t, 97, (&Grid{}).screenWidth())

	termGetSize = func(int) (int, int, error) { return 0, 0, errors.New("not a terminal") }
	t.Setenv("COLUMNS", "64")
	assert.Equal(t, 64, DetectTerminalWidth())

	t.Setenv("COLUMNS", "wide")
	assert.Equal(t, FallbackWidth, DetectTerminalWidth())
}
