// Package filterexpr compiles AIP-160 style filter strings into predicates
// over in-memory records. Fields are whitelisted by a schema; expressions
// referencing anything else fail at compile time.
package filterexpr

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
)

// Kind describes the CEL type a filterable field carries.
type Kind string

const (
	KindString    Kind = "string"
	KindNumber    Kind = "number"
	KindBool      Kind = "bool"
	KindTimestamp Kind = "timestamp"
)

// Schema maps filterable field names to their kinds. Only declared fields may
// appear in a filter.
type Schema map[string]Kind

// Predicate is a compiled filter ready to evaluate against variable maps.
type Predicate struct {
	prog cel.Program
}

// MatchAll is the predicate an empty filter compiles to.
var MatchAll = &Predicate{}

// Compile parses and type-checks the filter against the schema. An empty
// filter yields MatchAll.
func Compile(filter string, schema Schema) (*Predicate, error) {
	if filter == "" {
		return MatchAll, nil
	}

	env, err := buildEnv(schema)
	if err != nil {
		return nil, err
	}

	ast, issues := env.Compile(filter)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid filter: %w", issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("filter must evaluate to a boolean, got %s", ast.OutputType())
	}

	prog, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to build filter program: %w", err)
	}
	return &Predicate{prog: prog}, nil
}

// Match evaluates the predicate against one record's variable map. The map
// must provide a value for every schema field; kinds must match the schema
// (numbers as float64, timestamps as epoch-millisecond float64).
func (p *Predicate) Match(vars map[string]any) (bool, error) {
	if p.prog == nil {
		return true, nil
	}
	out, _, err := p.prog.Eval(vars)
	if err != nil {
		return false, fmt.Errorf("filter evaluation: %w", err)
	}
	matched, ok := out.Value().(bool)
	if !ok {
		return false, errors.New("filter did not evaluate to a boolean")
	}
	return matched, nil
}

func buildEnv(schema Schema) (*cel.Env, error) {
	opts := make([]cel.EnvOption, 0, len(schema)+1)
	for name, kind := range schema {
		celType, err := celTypeForKind(kind)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		opts = append(opts, cel.Variable(name, celType))
	}
	opts = append(opts, cel.CrossTypeNumericComparisons(true))
	return cel.NewEnv(opts...)
}

func celTypeForKind(kind Kind) (*cel.Type, error) {
	switch kind {
	case KindString:
		return cel.StringType, nil
	case KindNumber, KindTimestamp:
		return cel.DoubleType, nil
	case KindBool:
		return cel.BoolType, nil
	default:
		return nil, fmt.Errorf("unsupported field kind %s", kind)
	}
}
