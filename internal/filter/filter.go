// Package filter selects table rows with a CEL predicate.
//
// The expression sees each row as `row` (a map of column key to cell text)
// and its zero-based position as `index`, e.g.
//
//	row.status == "open" && int(row.total) > 10
package filter

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"
)

// ErrNotBool is returned when a predicate yields a non-boolean value.
var ErrNotBool = errors.New("filter expression must evaluate to a bool")

// Predicate is a compiled row filter.
type Predicate struct {
	expr string
	prg  cel.Program
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("row", cel.MapType(cel.StringType, cel.StringType)),
		cel.Variable("index", cel.IntType),
		celext.Strings(),
		celext.Math(),
	)
}

// Compile parses and type-checks expr.
func Compile(expr string) (*Predicate, error) {
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("%w, got %s", ErrNotBool, out)
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Predicate{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (p *Predicate) String() string { return p.expr }

// Match evaluates the predicate for one row.
func (p *Predicate) Match(row map[string]string, index int) (bool, error) {
	out, _, err := p.prg.Eval(map[string]interface{}{
		"row":   row,
		"index": index,
	})
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	b, ok := out.(types.Bool)
	if !ok {
		return false, fmt.Errorf("%w, got %s", ErrNotBool, out.Type().TypeName())
	}
	return bool(b), nil
}

// Rows keeps the rows whose map form matches. maps[i] must describe rows[i].
func (p *Predicate) Rows(rows [][]string, maps []map[string]string) ([][]string, error) {
	if len(rows) != len(maps) {
		return nil, fmt.Errorf("filter: %d rows but %d row maps", len(rows), len(maps))
	}
	out := make([][]string, 0, len(rows))
	for i, m := range maps {
		ok, err := p.Match(m, i)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if ok {
			out = append(out, rows[i])
		}
	}
	return out, nil
}
