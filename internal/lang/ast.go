package lang

import (
	"fmt"

	"github.com/mlql/mlql/internal/ir"
)

// Program is the parsed top-level document: an optional Pragma, zero or
// more let bindings, and a terminal Pipeline.
type Program struct {
	Pragma   *Pragma
	Lets     []LetStmt
	Pipeline Pipeline
}

// Lower maps the AST 1:1 onto internal/ir.
func (p Program) Lower() (ir.Program, error) {
	pipeline, err := p.Pipeline.Lower()
	if err != nil {
		return ir.Program{}, err
	}

	prog := ir.Program{Pipeline: pipeline}
	if p.Pragma != nil {
		prog.Pragma = &ir.Pragma{Options: p.Pragma.Options}
	}
	for _, let := range p.Lets {
		letPipeline, err := let.Pipeline.Lower()
		if err != nil {
			return ir.Program{}, fmt.Errorf("let %q: %w", let.Name, err)
		}
		prog.Lets = append(prog.Lets, ir.LetBinding{Name: let.Name, Pipeline: letPipeline})
	}
	return prog, nil
}

// Pragma carries the parsed pragma block's options, already converted to
// ir.Value since the pragma grammar uses the same literal forms expressions do.
type Pragma struct {
	Options map[string]ir.Value
}

// LetStmt is a `let name = <pipeline>` binding.
type LetStmt struct {
	Name     string
	Pipeline Pipeline
}

// Pipeline is `from <source> (| <op>)*`.
type Pipeline struct {
	Source Source
	Ops    []Operator
}

func (p Pipeline) Lower() (ir.Pipeline, error) {
	source, err := p.Source.Lower()
	if err != nil {
		return ir.Pipeline{}, err
	}
	ops := make([]ir.Operator, len(p.Ops))
	for i, op := range p.Ops {
		lowered, err := op.Lower()
		if err != nil {
			return ir.Pipeline{}, fmt.Errorf("op[%d]: %w", i, err)
		}
		ops[i] = lowered
	}
	return ir.Pipeline{Source: source, Ops: ops}, nil
}

// Source is the tagged variant for a pipeline's data source: a bare table
// name, or a parenthesized sub-pipeline, each with an optional trailing alias.
type Source interface {
	Lower() (ir.Source, error)
}

type TableSource struct {
	Name  string
	Alias string
}

func (s TableSource) Lower() (ir.Source, error) {
	return ir.TableSource{Name: s.Name, Alias: s.Alias}, nil
}

type SubPipelineSource struct {
	Pipeline Pipeline
	Alias    string
}

func (s SubPipelineSource) Lower() (ir.Source, error) {
	pipeline, err := s.Pipeline.Lower()
	if err != nil {
		return nil, err
	}
	return ir.SubPipelineSource{Pipeline: pipeline, Alias: s.Alias}, nil
}

// Operator is the tagged variant for one pipeline stage.
type Operator interface {
	Lower() (ir.Operator, error)
}

// Projection mirrors ir.Projection's untagged Aliased/Expr union, already
// disambiguated at parse time since the surface grammar has an explicit
// `as` keyword rather than relying on structural JSON detection.
type Projection struct {
	Expr    Expr
	Alias   string
	Aliased bool
}

func (p Projection) Lower() (ir.Projection, error) {
	expr, err := p.Expr.Lower()
	if err != nil {
		return ir.Projection{}, err
	}
	return ir.Projection{Expr: expr, Alias: p.Alias, Aliased: p.Aliased}, nil
}

type SelectOp struct {
	Projections []Projection
}

func (s SelectOp) Lower() (ir.Operator, error) {
	projs := make([]ir.Projection, len(s.Projections))
	for i, p := range s.Projections {
		lowered, err := p.Lower()
		if err != nil {
			return nil, err
		}
		projs[i] = lowered
	}
	return ir.Select{Projections: projs}, nil
}

type FilterOp struct {
	Condition Expr
}

func (f FilterOp) Lower() (ir.Operator, error) {
	cond, err := f.Condition.Lower()
	if err != nil {
		return nil, err
	}
	return ir.Filter{Condition: cond}, nil
}

type JoinOp struct {
	Source   Source
	On       Expr
	JoinType ir.JoinType
}

func (j JoinOp) Lower() (ir.Operator, error) {
	src, err := j.Source.Lower()
	if err != nil {
		return nil, err
	}
	on, err := j.On.Lower()
	if err != nil {
		return nil, err
	}
	return ir.Join{Source: src, On: on, JoinType: j.JoinType}, nil
}

type AggCall struct {
	Func string
	Args []Expr
}

func (a AggCall) Lower() (ir.AggCall, error) {
	args := make([]ir.Expression, len(a.Args))
	for i, arg := range a.Args {
		lowered, err := arg.Lower()
		if err != nil {
			return ir.AggCall{}, err
		}
		args[i] = lowered
	}
	return ir.AggCall{Func: a.Func, Args: args}, nil
}

type GroupByOp struct {
	Keys []Expr
	Aggs map[string]AggCall
}

func (g GroupByOp) Lower() (ir.Operator, error) {
	keys := make([]ir.Expression, len(g.Keys))
	for i, k := range g.Keys {
		lowered, err := k.Lower()
		if err != nil {
			return nil, err
		}
		keys[i] = lowered
	}
	aggs := make(map[string]ir.AggCall, len(g.Aggs))
	for name, agg := range g.Aggs {
		lowered, err := agg.Lower()
		if err != nil {
			return nil, err
		}
		aggs[name] = lowered
	}
	return ir.GroupBy{Keys: keys, Aggs: aggs}, nil
}

type SortKey struct {
	Expr Expr
	Desc bool
}

type SortOp struct {
	Keys []SortKey
}

func (s SortOp) Lower() (ir.Operator, error) {
	keys := make([]ir.SortKey, len(s.Keys))
	for i, k := range s.Keys {
		expr, err := k.Expr.Lower()
		if err != nil {
			return nil, err
		}
		keys[i] = ir.SortKey{Expr: expr, Desc: k.Desc}
	}
	return ir.Sort{Keys: keys}, nil
}

type TakeOp struct {
	Limit int64
}

func (t TakeOp) Lower() (ir.Operator, error) { return ir.Take{Limit: t.Limit}, nil }

type DistinctOp struct{}

func (DistinctOp) Lower() (ir.Operator, error) { return ir.Distinct{}, nil }

// Expr is the tagged variant for an expression node.
type Expr interface {
	Lower() (ir.Expression, error)
}

type LiteralExpr struct{ Value ir.Value }

func (e LiteralExpr) Lower() (ir.Expression, error) { return ir.Literal{Value: e.Value}, nil }

type ColumnExpr struct{ Ref ir.ColumnRef }

func (e ColumnExpr) Lower() (ir.Expression, error) { return ir.Column{Col: e.Ref}, nil }

type BinaryExpr struct {
	Op    ir.BinaryOperator
	Left  Expr
	Right Expr
}

func (e BinaryExpr) Lower() (ir.Expression, error) {
	left, err := e.Left.Lower()
	if err != nil {
		return nil, err
	}
	right, err := e.Right.Lower()
	if err != nil {
		return nil, err
	}
	return ir.BinaryOp{Op: e.Op, Left: left, Right: right}, nil
}

type UnaryExpr struct {
	Op      ir.UnaryOperator
	Operand Expr
}

func (e UnaryExpr) Lower() (ir.Expression, error) {
	operand, err := e.Operand.Lower()
	if err != nil {
		return nil, err
	}
	return ir.UnaryOp{Op: e.Op, Operand: operand}, nil
}

type FuncCallExpr struct {
	Name string
	Args []Expr
}

func (e FuncCallExpr) Lower() (ir.Expression, error) {
	args := make([]ir.Expression, len(e.Args))
	for i, a := range e.Args {
		lowered, err := a.Lower()
		if err != nil {
			return nil, err
		}
		args[i] = lowered
	}
	return ir.FuncCall{Name: e.Name, Args: args}, nil
}

type FieldAccessExpr struct {
	Target Expr
	Field  string
}

func (e FieldAccessExpr) Lower() (ir.Expression, error) {
	target, err := e.Target.Lower()
	if err != nil {
		return nil, err
	}
	return ir.FieldAccess{Target: target, Field: e.Field}, nil
}

type IndexExpr struct {
	Target Expr
	Index  Expr
}

func (e IndexExpr) Lower() (ir.Expression, error) {
	target, err := e.Target.Lower()
	if err != nil {
		return nil, err
	}
	index, err := e.Index.Lower()
	if err != nil {
		return nil, err
	}
	return ir.IndexExpr{Target: target, Index: index}, nil
}

type ArrayExpr struct{ Items []Expr }

func (e ArrayExpr) Lower() (ir.Expression, error) {
	items, err := lowerExprList(e.Items)
	if err != nil {
		return nil, err
	}
	return ir.ArrayLit{Items: items}, nil
}

type ObjectExpr struct{ Fields map[string]Expr }

func (e ObjectExpr) Lower() (ir.Expression, error) {
	fields := make(map[string]ir.Expression, len(e.Fields))
	for k, v := range e.Fields {
		lowered, err := v.Lower()
		if err != nil {
			return nil, err
		}
		fields[k] = lowered
	}
	return ir.ObjectLit{Fields: fields}, nil
}

type VectorExpr struct{ Items []Expr }

func (e VectorExpr) Lower() (ir.Expression, error) {
	items, err := lowerExprList(e.Items)
	if err != nil {
		return nil, err
	}
	return ir.VectorLit{Items: items}, nil
}

func lowerExprList(exprs []Expr) ([]ir.Expression, error) {
	out := make([]ir.Expression, len(exprs))
	for i, e := range exprs {
		lowered, err := e.Lower()
		if err != nil {
			return nil, err
		}
		out[i] = lowered
	}
	return out, nil
}
