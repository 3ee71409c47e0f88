package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantErr string
	}{
		{name: "equality", expr: `row.status == "open"`},
		{name: "index", expr: `index < 2`},
		{name: "string ext", expr: `row.name.lowerAscii().startsWith("a")`},
		{name: "syntax", expr: `row.status ==`, wantErr: "compilation error"},
		{name: "unknown variable", expr: `item.x == 1`, wantErr: "compilation error"},
		{name: "not bool", expr: `row.name`, wantErr: "must evaluate to a bool"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.expr)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expr, p.String())
		})
	}
}

func TestPredicate_Rows(t *testing.T) {
	rows := [][]string{{"ada", "open", "12"}, {"bob", "closed", "3"}, {"cy", "open", "7"}}
	maps := []map[string]string{
		{"name": "ada", "status": "open", "total": "12"},
		{"name": "bob", "status": "closed", "total": "3"},
		{"name": "cy", "status": "open", "total": "7"},
	}

	p, err := Compile(`row.status == "open" && int(row.total) > 10`)
	require.NoError(t, err)
	got, err := p.Rows(rows, maps)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"ada", "open", "12"}}, got)

	byIndex, err := Compile(`index > 0`)
	require.NoError(t, err)
	got, err = byIndex.Rows(rows, maps)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = p.Rows(rows, maps[:1])
	assert.Error(t, err)
}

func TestPredicate_EvalError(t *testing.T) {
	p, err := Compile(`row.missing == "x"`)
	require.NoError(t, err)

	_, err = p.Match(map[string]string{"name": "ada"}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "eval error")
}
