package ir

import (
	"fmt"

	"github.com/mlql/mlql/internal/mlqlerr"
)

// Validate runs structural checks across the program: the terminal
// pipeline, every let binding's pipeline, and the projection-alias and
// wildcard-shape invariants. It returns the first error encountered.
func (p Program) Validate() error {
	if err := p.validateLets(); err != nil {
		return err
	}
	if err := validatePipeline(p.Pipeline); err != nil {
		return err
	}
	return nil
}

func (p Program) validateLets() error {
	seen := make(map[string]bool, len(p.Lets))
	for _, let := range p.Lets {
		if let.Name == "" {
			return &mlqlerr.ValidationError{Message: "let binding has an empty name"}
		}
		if seen[let.Name] {
			return &mlqlerr.ValidationError{Message: fmt.Sprintf("let binding %q is declared more than once", let.Name)}
		}
		seen[let.Name] = true
		if err := validatePipeline(let.Pipeline); err != nil {
			return fmt.Errorf("let %q: %w", let.Name, err)
		}
	}
	return nil
}

func validatePipeline(pipeline Pipeline) error {
	if err := validateSource(pipeline.Source); err != nil {
		return err
	}
	for i, op := range pipeline.Ops {
		if err := validateOperator(op); err != nil {
			return fmt.Errorf("op[%d] (%s): %w", i, op.OpName(), err)
		}
	}
	return nil
}

func validateSource(source Source) error {
	switch s := source.(type) {
	case TableSource:
		if s.Name == "" {
			return &mlqlerr.ValidationError{Message: "table source has an empty name"}
		}
	case SubPipelineSource:
		return validatePipeline(s.Pipeline)
	}
	return nil
}

func validateOperator(op Operator) error {
	switch o := op.(type) {
	case Select:
		return validateProjections(o.Projections)
	case Join:
		return validateSource(o.Source)
	case GroupBy:
		for name, agg := range o.Aggs {
			if agg.Func == "" {
				return &mlqlerr.ValidationError{Message: fmt.Sprintf("aggregate %q has an empty function name", name)}
			}
		}
	case RawOperator:
		if !IsReserved(o.Op) {
			return &mlqlerr.ValidationError{Message: fmt.Sprintf("unrecognized operator %q", o.Op)}
		}
	}
	return nil
}

// validateProjections enforces two projection invariants: an Aliased
// projection's alias must be non-empty,
// and a wildcard Column projection ("*") may only appear bare, never
// Aliased (aliasing "*" has no sensible output name).
func validateProjections(projections []Projection) error {
	for i, proj := range projections {
		if proj.Aliased && proj.Alias == "" {
			return &mlqlerr.ValidationError{Message: fmt.Sprintf("projection[%d] is aliased with an empty name", i)}
		}
		if col, ok := proj.Expr.(Column); ok && col.Col.IsWildcard() && proj.Aliased {
			return &mlqlerr.ValidationError{Message: fmt.Sprintf("projection[%d] aliases a wildcard column", i)}
		}
	}
	return nil
}
