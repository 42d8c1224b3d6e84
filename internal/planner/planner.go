// Package planner converts IR into the cross-engine relational-algebra
// plan: a tree of Read/Filter/Project/Sort/Fetch/Aggregate/Join relations
// wrapped in a Plan carrying a version and the extension-function
// declarations for every function the tree references.
package planner

import (
	"context"
	"fmt"
	"sort"

	"github.com/gogo/protobuf/proto"

	"github.com/mlql/mlql/internal/functions"
	"github.com/mlql/mlql/internal/ir"
	"github.com/mlql/mlql/internal/mlqlerr"
	"github.com/mlql/mlql/internal/planpb"
	"github.com/mlql/mlql/internal/schema"
)

// FunctionsStandardURI is the extension definition file every emitted plan
// declares, at URI anchor 1.
const FunctionsStandardURI = "https://github.com/substrait-io/substrait/blob/main/extensions/functions_standard.yaml"

// PlanVersionMinor is the plan schema release the emitted plans target.
const PlanVersionMinor = 53

// Translator converts IR programs into plans. It is stateless across
// calls; each Translate builds a fresh plan tree and a fresh per-call
// extension registry.
type Translator struct {
	provider schema.Provider
	fns      *functions.Registry
}

// New returns a Translator backed by the given schema provider and the
// default function registry.
func New(provider schema.Provider) *Translator {
	return &Translator{provider: provider, fns: functions.Default()}
}

// Translate converts the program's terminal pipeline into a Plan message.
func (t *Translator) Translate(ctx context.Context, prog ir.Program) (*planpb.Plan, error) {
	reg := newExtensionRegistry(t.fns)
	rel, names, err := t.translatePipeline(ctx, prog.Pipeline, reg)
	if err != nil {
		return nil, err
	}

	plan := &planpb.Plan{
		Version: &planpb.Version{MinorNumber: PlanVersionMinor},
		ExtensionUris: []*planpb.SimpleExtensionURI{
			{ExtensionUriAnchor: 1, Uri: FunctionsStandardURI},
		},
		Extensions: reg.declarations(),
		Relations: []*planpb.PlanRel{
			{Root: &planpb.RelRoot{Input: rel, Names: names}},
		},
	}
	return plan, nil
}

// TranslateBytes is Translate followed by protobuf serialization; the
// resulting bytes are the plan wire format handed to consumers.
func (t *Translator) TranslateBytes(ctx context.Context, prog ir.Program) ([]byte, error) {
	plan, err := t.Translate(ctx, prog)
	if err != nil {
		return nil, err
	}
	data, err := proto.Marshal(plan)
	if err != nil {
		return nil, &mlqlerr.TranslateError{
			Kind:    mlqlerr.Translation,
			Message: fmt.Sprintf("serializing plan: %v", err),
		}
	}
	return data, nil
}

// extensionRegistry interns extension functions by their DuckDB-style
// signature string, assigning dense anchors from 1 in first-occurrence
// order. It is the only mutable state of a translation.
type extensionRegistry struct {
	fns     *functions.Registry
	anchors map[string]uint32
	decls   []*planpb.ExtensionFunction
	next    uint32
}

func newExtensionRegistry(fns *functions.Registry) *extensionRegistry {
	return &extensionRegistry{fns: fns, anchors: make(map[string]uint32), next: 1}
}

// knownFunction reports whether name has any registered overload. Builtin
// operators bypass this check; only named FuncCall/AggCall invocations are
// validated against the registry.
func (r *extensionRegistry) knownFunction(name string) bool {
	_, ok := r.fns.Lookup(name)
	return ok
}

// intern returns the anchor for signature, assigning the next one on first
// occurrence. The declaration records the bare function name; the
// signature only keys interning.
func (r *extensionRegistry) intern(name, signature string) uint32 {
	if anchor, ok := r.anchors[signature]; ok {
		return anchor
	}
	anchor := r.next
	r.next++
	r.anchors[signature] = anchor
	r.decls = append(r.decls, &planpb.ExtensionFunction{
		ExtensionUriReference: 1,
		FunctionAnchor:        anchor,
		Name:                  name,
	})
	return anchor
}

func (r *extensionRegistry) declarations() []*planpb.SimpleExtensionDeclaration {
	decls := make([]*planpb.SimpleExtensionDeclaration, len(r.decls))
	for i, fn := range r.decls {
		decls[i] = &planpb.SimpleExtensionDeclaration{ExtensionFunction: fn}
	}
	return decls
}

// translatePipeline walks a pipeline, returning the relation tree and the
// current schema (the ordered output column names) after the last operator.
func (t *Translator) translatePipeline(ctx context.Context, pipeline ir.Pipeline, reg *extensionRegistry) (*planpb.Rel, []string, error) {
	rel, current, err := t.translateSource(ctx, pipeline.Source, pipeline.Ops, reg)
	if err != nil {
		return nil, nil, err
	}

	for _, op := range pipeline.Ops {
		rel, current, err = t.translateOperator(ctx, op, rel, current, reg)
		if err != nil {
			return nil, nil, err
		}
	}
	return rel, current, nil
}

// translateSource emits the pipeline's leaf relation. For table sources it
// scans ops ahead for a GroupBy and, when one needs a column subset,
// restricts the Read with a struct-mask projection so the aggregation's
// field indices resolve against the post-projection row shape.
func (t *Translator) translateSource(ctx context.Context, source ir.Source, ops []ir.Operator, reg *extensionRegistry) (*planpb.Rel, []string, error) {
	switch s := source.(type) {
	case ir.TableSource:
		table, err := t.provider.GetTableSchema(ctx, s.Name)
		if err != nil {
			return nil, nil, err
		}
		return buildRead(table, ops)

	case ir.SubPipelineSource:
		return t.translatePipeline(ctx, s.Pipeline, reg)

	default:
		return nil, nil, &mlqlerr.TranslateError{
			Kind:    mlqlerr.UnsupportedOperator,
			Message: fmt.Sprintf("source type %q", source.SourceType()),
		}
	}
}

func buildRead(table *schema.TableSchema, ops []ir.Operator) (*planpb.Rel, []string, error) {
	names := table.ColumnNames()

	read := &planpb.ReadRel{
		BaseSchema: namedStruct(table),
		NamedTable: &planpb.NamedTable{Names: []string{table.Name}},
	}

	current := names
	if indices := aggregationMask(names, ops); indices != nil {
		items := make([]*planpb.StructItem, len(indices))
		projected := make([]string, len(indices))
		for i, idx := range indices {
			items[i] = &planpb.StructItem{Field: int32(idx)}
			projected[i] = names[idx]
		}
		read.Projection = &planpb.MaskExpression{
			Select:                 &planpb.StructSelect{StructItems: items},
			MaintainSingularStruct: true,
		}
		current = projected
	}

	return &planpb.Rel{Read: read}, current, nil
}

// aggregationMask scans ahead for a GroupBy and returns the read-side
// column indices its keys and aggregate column arguments need, in input
// order, or nil when no GroupBy needs a projection.
func aggregationMask(names []string, ops []ir.Operator) []int {
	var gb *ir.GroupBy
	for _, op := range ops {
		if g, ok := op.(ir.GroupBy); ok {
			gb = &g
			break
		}
	}
	if gb == nil {
		return nil
	}

	needed := make(map[string]bool)
	for _, key := range gb.Keys {
		collectColumns(key, needed)
	}
	for _, agg := range gb.Aggs {
		for _, arg := range agg.Args {
			collectColumns(arg, needed)
		}
	}
	if len(needed) == 0 {
		return nil
	}

	var indices []int
	for i, name := range names {
		if needed[name] {
			indices = append(indices, i)
		}
	}
	return indices
}

func collectColumns(expr ir.Expression, out map[string]bool) {
	switch e := expr.(type) {
	case ir.Column:
		if !e.Col.IsWildcard() {
			out[e.Col.Column] = true
		}
	case ir.BinaryOp:
		collectColumns(e.Left, out)
		collectColumns(e.Right, out)
	case ir.UnaryOp:
		collectColumns(e.Operand, out)
	case ir.FuncCall:
		for _, arg := range e.Args {
			collectColumns(arg, out)
		}
	}
}

func (t *Translator) translateOperator(ctx context.Context, op ir.Operator, input *planpb.Rel, current []string, reg *extensionRegistry) (*planpb.Rel, []string, error) {
	switch o := op.(type) {
	case ir.Select:
		return translateSelect(o, input, current, reg)
	case ir.Filter:
		cond, err := translateExpr(o.Condition, current, reg, false)
		if err != nil {
			return nil, nil, err
		}
		return &planpb.Rel{Filter: &planpb.FilterRel{Input: input, Condition: cond}}, current, nil
	case ir.Join:
		return t.translateJoin(ctx, o, input, current, reg)
	case ir.GroupBy:
		return translateGroupBy(o, input, current, reg)
	case ir.Sort:
		return translateSort(o, input, current, reg)
	case ir.Take:
		// Deprecated scalar offset/count fields, per the consumer contract.
		return &planpb.Rel{Fetch: &planpb.FetchRel{Input: input, Offset: 0, Count: o.Limit}}, current, nil
	case ir.Distinct:
		return translateDistinct(input, current), current, nil
	default:
		return nil, nil, &mlqlerr.TranslateError{
			Kind:    mlqlerr.UnsupportedOperator,
			Message: fmt.Sprintf("operator %q is not supported by the plan translator", op.OpName()),
		}
	}
}

func translateSelect(sel ir.Select, input *planpb.Rel, current []string, reg *extensionRegistry) (*planpb.Rel, []string, error) {
	exprs := make([]*planpb.Expression, 0, len(sel.Projections))
	names := make([]string, 0, len(sel.Projections))
	for i, proj := range sel.Projections {
		// A wildcard projection expands to a field reference per current
		// column, keeping the current names.
		if col, ok := proj.Expr.(ir.Column); ok && col.Col.IsWildcard() {
			for j, name := range current {
				exprs = append(exprs, fieldRef(int32(j), false))
				names = append(names, name)
			}
			continue
		}
		expr, err := translateExpr(proj.Expr, current, reg, false)
		if err != nil {
			return nil, nil, err
		}
		exprs = append(exprs, expr)
		names = append(names, proj.OutputName(i))
	}
	rel := &planpb.Rel{Project: &planpb.ProjectRel{Input: input, Expressions: exprs}}
	return rel, names, nil
}

func (t *Translator) translateJoin(ctx context.Context, join ir.Join, left *planpb.Rel, current []string, reg *extensionRegistry) (*planpb.Rel, []string, error) {
	joinType, err := joinTypeValue(join.EffectiveJoinType())
	if err != nil {
		return nil, nil, err
	}

	right, rightNames, err := t.translateSource(ctx, join.Source, nil, reg)
	if err != nil {
		return nil, nil, err
	}

	// Left columns first, then the right source's columns.
	combined := append(append([]string(nil), current...), rightNames...)
	on, err := translateExpr(join.On, combined, reg, false)
	if err != nil {
		return nil, nil, err
	}

	rel := &planpb.Rel{Join: &planpb.JoinRel{
		Left:       left,
		Right:      right,
		Expression: on,
		Type:       joinType,
	}}
	return rel, combined, nil
}

func joinTypeValue(jt ir.JoinType) (int32, error) {
	switch jt {
	case ir.JoinInner:
		return planpb.JoinTypeInner, nil
	case ir.JoinFull:
		return planpb.JoinTypeOuter, nil
	case ir.JoinLeft:
		return planpb.JoinTypeLeft, nil
	case ir.JoinRight:
		return planpb.JoinTypeRight, nil
	case ir.JoinSemi:
		return planpb.JoinTypeLeftSemi, nil
	case ir.JoinAnti:
		return planpb.JoinTypeLeftAnti, nil
	case ir.JoinCross:
		return 0, &mlqlerr.TranslateError{
			Kind:    mlqlerr.UnsupportedOperator,
			Message: "cross joins are not supported by the plan translator",
		}
	default:
		return 0, &mlqlerr.TranslateError{
			Kind:    mlqlerr.UnsupportedOperator,
			Message: fmt.Sprintf("join type %q", string(jt)),
		}
	}
}

// sortedAggAliases fixes aggregate output order: aliases sorted lexically,
// matching internal/sqllower so both lowerings agree on a GroupBy's schema.
func sortedAggAliases(aggs map[string]ir.AggCall) []string {
	aliases := make([]string, 0, len(aggs))
	for alias := range aggs {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

func translateGroupBy(gb ir.GroupBy, input *planpb.Rel, current []string, reg *extensionRegistry) (*planpb.Rel, []string, error) {
	// Grouping expressions go into the deprecated per-Grouping list, with
	// explicit RootReference markers; the relation-level list stays empty.
	keyExprs := make([]*planpb.Expression, len(gb.Keys))
	names := make([]string, 0, len(gb.Keys)+len(gb.Aggs))
	for i, key := range gb.Keys {
		expr, err := translateExpr(key, current, reg, true)
		if err != nil {
			return nil, nil, err
		}
		keyExprs[i] = expr
		names = append(names, keyName(key, i))
	}

	aliases := sortedAggAliases(gb.Aggs)
	measures := make([]*planpb.Measure, len(aliases))
	for i, alias := range aliases {
		agg := gb.Aggs[alias]
		measure, err := translateAggCall(agg, current, reg)
		if err != nil {
			return nil, nil, err
		}
		measures[i] = measure
		names = append(names, alias)
	}

	rel := &planpb.Rel{Aggregate: &planpb.AggregateRel{
		Input:     input,
		Groupings: []*planpb.Grouping{{GroupingExpressions: keyExprs}},
		Measures:  measures,
	}}
	return rel, names, nil
}

func keyName(key ir.Expression, index int) string {
	if col, ok := key.(ir.Column); ok {
		return col.Col.Column
	}
	return fmt.Sprintf("expr_%d", index)
}

func translateAggCall(agg ir.AggCall, current []string, reg *extensionRegistry) (*planpb.Measure, error) {
	if !reg.knownFunction(agg.Func) {
		return nil, &mlqlerr.ValidationError{Message: fmt.Sprintf("unknown aggregate function %q", agg.Func)}
	}
	anchor := reg.intern(agg.Func, agg.Func+":i32")

	args := make([]*planpb.FunctionArgument, len(agg.Args))
	for i, arg := range agg.Args {
		expr, err := translateExpr(arg, current, reg, true)
		if err != nil {
			return nil, err
		}
		args[i] = &planpb.FunctionArgument{Value: expr}
	}

	return &planpb.Measure{Measure: &planpb.AggregateFunction{
		FunctionReference: anchor,
		Phase:             3, // initial-to-result
		Invocation:        1, // all rows
		OutputType:        nullableI64(),
		Arguments:         args,
	}}, nil
}

func translateSort(s ir.Sort, input *planpb.Rel, current []string, reg *extensionRegistry) (*planpb.Rel, []string, error) {
	sorts := make([]*planpb.SortField, len(s.Keys))
	for i, key := range s.Keys {
		expr, err := translateExpr(key.Expr, current, reg, false)
		if err != nil {
			return nil, nil, err
		}
		direction := planpb.SortDirectionAscNullsFirst
		if key.Desc {
			direction = planpb.SortDirectionDescNullsLast
		}
		sorts[i] = &planpb.SortField{Expr: expr, Direction: direction}
	}
	return &planpb.Rel{Sort: &planpb.SortRel{Input: input, Sorts: sorts}}, current, nil
}

// translateDistinct emits deduplication as an Aggregate grouping on every
// current column with no measures.
func translateDistinct(input *planpb.Rel, current []string) *planpb.Rel {
	exprs := make([]*planpb.Expression, len(current))
	for i := range current {
		exprs[i] = fieldRef(int32(i), true)
	}
	return &planpb.Rel{Aggregate: &planpb.AggregateRel{
		Input:     input,
		Groupings: []*planpb.Grouping{{GroupingExpressions: exprs}},
	}}
}
