package planner

import (
	"context"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/stretchr/testify/require"

	"github.com/mlql/mlql/internal/ir"
	"github.com/mlql/mlql/internal/mlqlerr"
	"github.com/mlql/mlql/internal/planpb"
)

func col(name string) ir.Expression {
	return ir.Column{Col: ir.ColumnRef{Column: name}}
}

func qcol(table, name string) ir.Expression {
	return ir.Column{Col: ir.ColumnRef{Table: table, Column: name}}
}

func translate(t *testing.T, pipeline ir.Pipeline) *planpb.Plan {
	t.Helper()
	plan, err := New(testProvider()).Translate(context.Background(), ir.Program{Pipeline: pipeline})
	require.NoError(t, err)
	return plan
}

func rootOf(t *testing.T, plan *planpb.Plan) *planpb.RelRoot {
	t.Helper()
	require.Len(t, plan.Relations, 1)
	require.NotNil(t, plan.Relations[0].Root)
	return plan.Relations[0].Root
}

func TestTranslateScanEmitsReadWithBaseSchema(t *testing.T) {
	plan := translate(t, ir.Pipeline{Source: ir.TableSource{Name: "users"}})

	require.Equal(t, uint32(PlanVersionMinor), plan.Version.MinorNumber)
	require.Len(t, plan.ExtensionUris, 1)
	require.Equal(t, uint32(1), plan.ExtensionUris[0].ExtensionUriAnchor)
	require.Equal(t, FunctionsStandardURI, plan.ExtensionUris[0].Uri)

	root := rootOf(t, plan)
	require.Equal(t, []string{"id", "name", "age"}, root.Names)

	read := root.Input.Read
	require.NotNil(t, read)
	require.Equal(t, []string{"users"}, read.NamedTable.Names)
	require.Equal(t, []string{"id", "name", "age"}, read.BaseSchema.Names)
	require.Nil(t, read.Projection)

	types := read.BaseSchema.Struct.Types
	require.NotNil(t, types[0].I32)
	require.Equal(t, planpb.NullabilityRequired, types[0].I32.Nullability)
	require.NotNil(t, types[1].Str)
	require.Equal(t, planpb.NullabilityNullable, types[1].Str.Nullability)
}

func TestSchemaTrackingThroughSelect(t *testing.T) {
	plan := translate(t, ir.Pipeline{
		Source: ir.TableSource{Name: "users"},
		Ops: []ir.Operator{
			ir.Select{Projections: []ir.Projection{
				{Expr: col("name")},
				{Expr: ir.BinaryOp{Op: ir.OpMul, Left: col("age"), Right: ir.Literal{Value: ir.IntValue(2)}}, Alias: "doubled", Aliased: true},
				{Expr: ir.BinaryOp{Op: ir.OpAdd, Left: col("age"), Right: ir.Literal{Value: ir.IntValue(1)}}},
			}},
		},
	})

	root := rootOf(t, plan)
	require.Equal(t, []string{"name", "doubled", "expr_2"}, root.Names)
	require.NotNil(t, root.Input.Project)
	require.Len(t, root.Input.Project.Expressions, 3)
}

func TestFieldIndexResolution(t *testing.T) {
	plan := translate(t, ir.Pipeline{
		Source: ir.TableSource{Name: "users"},
		Ops: []ir.Operator{
			ir.Filter{Condition: ir.BinaryOp{Op: ir.OpGt, Left: col("age"), Right: ir.Literal{Value: ir.IntValue(25)}}},
		},
	})

	filter := rootOf(t, plan).Input.Filter
	require.NotNil(t, filter)

	fn := filter.Condition.ScalarFunction
	require.NotNil(t, fn)
	// "age" is index 2 of (id, name, age).
	sel := fn.Arguments[0].Value.Selection
	require.NotNil(t, sel)
	require.Equal(t, int32(2), sel.DirectReference.StructField.Field)
	require.Nil(t, sel.RootReference, "filter references do not carry the root marker")

	lit := fn.Arguments[1].Value.Literal
	require.NotNil(t, lit)
	require.NotNil(t, lit.I64)
	require.Equal(t, int64(25), *lit.I64)
}

func TestUnknownColumnListsAvailable(t *testing.T) {
	_, err := New(testProvider()).Translate(context.Background(), ir.Program{Pipeline: ir.Pipeline{
		Source: ir.TableSource{Name: "users"},
		Ops: []ir.Operator{
			ir.Filter{Condition: ir.BinaryOp{Op: ir.OpGt, Left: col("salary"), Right: ir.Literal{Value: ir.IntValue(0)}}},
		},
	}})
	require.Error(t, err)

	var te *mlqlerr.TranslateError
	require.ErrorAs(t, err, &te)
	require.Equal(t, mlqlerr.Schema, te.Kind)
	require.Contains(t, te.Message, "salary")
	require.Equal(t, []string{"id", "name", "age"}, te.Available)
}

func TestGroupByEmitsDeprecatedGroupingExpressions(t *testing.T) {
	plan := translate(t, ir.Pipeline{
		Source: ir.TableSource{Name: "orders"},
		Ops: []ir.Operator{
			ir.GroupBy{
				Keys: []ir.Expression{col("city")},
				Aggs: map[string]ir.AggCall{"total": {Func: "count"}},
			},
		},
	})

	root := rootOf(t, plan)
	require.Equal(t, []string{"city", "total"}, root.Names)

	agg := root.Input.Aggregate
	require.NotNil(t, agg)
	require.Empty(t, agg.GroupingExpressions, "relation-level list stays empty")
	require.Len(t, agg.Groupings, 1)
	require.Len(t, agg.Groupings[0].GroupingExpressions, 1)

	key := agg.Groupings[0].GroupingExpressions[0].Selection
	require.NotNil(t, key)
	require.NotNil(t, key.RootReference, "grouping expressions carry the root marker")

	require.Len(t, agg.Measures, 1)
	measure := agg.Measures[0].Measure
	require.Empty(t, measure.Arguments)
	require.NotNil(t, measure.OutputType.I64)
	require.Equal(t, planpb.NullabilityNullable, measure.OutputType.I64.Nullability)
}

func TestGroupByReadSideProjection(t *testing.T) {
	plan := translate(t, ir.Pipeline{
		Source: ir.TableSource{Name: "orders"},
		Ops: []ir.Operator{
			ir.GroupBy{
				Keys: []ir.Expression{col("city")},
				Aggs: map[string]ir.AggCall{"total_amount": {Func: "sum", Args: []ir.Expression{col("amount")}}},
			},
		},
	})

	agg := rootOf(t, plan).Input.Aggregate
	read := agg.Input.Read
	require.NotNil(t, read)
	require.NotNil(t, read.Projection, "aggregation restricts the read to needed columns")

	// orders is (id, city, amount); city and amount survive, input order.
	items := read.Projection.Select.StructItems
	require.Len(t, items, 2)
	require.Equal(t, int32(1), items[0].Field)
	require.Equal(t, int32(2), items[1].Field)

	// Field indices resolve against the post-projection shape (city=0, amount=1).
	key := agg.Groupings[0].GroupingExpressions[0].Selection
	require.Equal(t, int32(0), key.DirectReference.StructField.Field)
	arg := agg.Measures[0].Measure.Arguments[0].Value.Selection
	require.Equal(t, int32(1), arg.DirectReference.StructField.Field)
	require.NotNil(t, arg.RootReference, "aggregate arguments carry the root marker")
}

func TestGroupByAggregateAliasOrderIsSorted(t *testing.T) {
	plan := translate(t, ir.Pipeline{
		Source: ir.TableSource{Name: "sales"},
		Ops: []ir.Operator{
			ir.GroupBy{
				Keys: []ir.Expression{col("product")},
				Aggs: map[string]ir.AggCall{
					"total_qty": {Func: "sum", Args: []ir.Expression{col("qty")}},
					"avg_price": {Func: "avg", Args: []ir.Expression{col("price")}},
				},
			},
		},
	})

	root := rootOf(t, plan)
	require.Equal(t, []string{"product", "avg_price", "total_qty"}, root.Names)

	// Measures follow the same order, so anchors assign avg before sum.
	agg := root.Input.Aggregate
	require.Len(t, agg.Measures, 2)
	require.Equal(t, findAnchor(t, plan, "avg"), agg.Measures[0].Measure.FunctionReference)
	require.Equal(t, findAnchor(t, plan, "sum"), agg.Measures[1].Measure.FunctionReference)
}

func findAnchor(t *testing.T, plan *planpb.Plan, name string) uint32 {
	t.Helper()
	for _, decl := range plan.Extensions {
		if decl.ExtensionFunction != nil && decl.ExtensionFunction.Name == name {
			return decl.ExtensionFunction.FunctionAnchor
		}
	}
	t.Fatalf("no extension declaration for %q", name)
	return 0
}

func TestAnchorsAreDenseAndStable(t *testing.T) {
	plan := translate(t, ir.Pipeline{
		Source: ir.TableSource{Name: "users"},
		Ops: []ir.Operator{
			// gt appears twice; it must intern once.
			ir.Filter{Condition: ir.BinaryOp{Op: ir.OpGt, Left: col("age"), Right: ir.Literal{Value: ir.IntValue(25)}}},
			ir.Filter{Condition: ir.BinaryOp{Op: ir.OpGt, Left: col("id"), Right: ir.Literal{Value: ir.IntValue(1)}}},
			ir.Filter{Condition: ir.BinaryOp{Op: ir.OpEq, Left: col("name"), Right: ir.Literal{Value: ir.StringValue("Alice")}}},
		},
	})

	require.Len(t, plan.Extensions, 2)
	seen := make(map[uint32]string)
	for _, decl := range plan.Extensions {
		fn := decl.ExtensionFunction
		require.NotNil(t, fn)
		require.Equal(t, uint32(1), fn.ExtensionUriReference)
		seen[fn.FunctionAnchor] = fn.Name
	}
	require.Equal(t, map[uint32]string{1: "gt", 2: "equal"}, seen)
}

func TestSortDirections(t *testing.T) {
	plan := translate(t, ir.Pipeline{
		Source: ir.TableSource{Name: "users"},
		Ops: []ir.Operator{
			ir.Sort{Keys: []ir.SortKey{
				{Expr: col("age"), Desc: true},
				{Expr: col("name")},
			}},
		},
	})

	sorts := rootOf(t, plan).Input.Sort.Sorts
	require.Len(t, sorts, 2)
	require.Equal(t, planpb.SortDirectionDescNullsLast, sorts[0].Direction)
	require.Equal(t, planpb.SortDirectionAscNullsFirst, sorts[1].Direction)
}

func TestTakeUsesDeprecatedFetchFields(t *testing.T) {
	plan := translate(t, ir.Pipeline{
		Source: ir.TableSource{Name: "users"},
		Ops:    []ir.Operator{ir.Take{Limit: 10}},
	})

	fetch := rootOf(t, plan).Input.Fetch
	require.NotNil(t, fetch)
	require.Equal(t, int64(0), fetch.Offset)
	require.Equal(t, int64(10), fetch.Count)
}

func TestDistinctEmitsAggregateOverAllColumns(t *testing.T) {
	plan := translate(t, ir.Pipeline{
		Source: ir.TableSource{Name: "users"},
		Ops:    []ir.Operator{ir.Distinct{}},
	})

	root := rootOf(t, plan)
	require.Equal(t, []string{"id", "name", "age"}, root.Names)

	agg := root.Input.Aggregate
	require.NotNil(t, agg)
	require.Empty(t, agg.Measures)
	require.Len(t, agg.Groupings, 1)

	exprs := agg.Groupings[0].GroupingExpressions
	require.Len(t, exprs, 3)
	for i, expr := range exprs {
		require.Equal(t, int32(i), expr.Selection.DirectReference.StructField.Field)
	}
}

func TestJoinSchemaConcatenation(t *testing.T) {
	plan := translate(t, ir.Pipeline{
		Source: ir.TableSource{Name: "users", Alias: "u"},
		Ops: []ir.Operator{
			ir.Join{
				Source: ir.TableSource{Name: "purchases", Alias: "p"},
				On:     ir.BinaryOp{Op: ir.OpEq, Left: qcol("u", "id"), Right: qcol("p", "user_id")},
			},
		},
	})

	root := rootOf(t, plan)
	require.Equal(t, []string{"id", "name", "age", "order_id", "user_id", "amount"}, root.Names)

	join := root.Input.Join
	require.NotNil(t, join)
	require.Equal(t, planpb.JoinTypeInner, join.Type)
	require.NotNil(t, join.Left.Read)
	require.NotNil(t, join.Right.Read)

	on := join.Expression.ScalarFunction
	require.NotNil(t, on)
	require.Equal(t, int32(0), on.Arguments[0].Value.Selection.DirectReference.StructField.Field)
	require.Equal(t, int32(4), on.Arguments[1].Value.Selection.DirectReference.StructField.Field)
}

func TestJoinTypeEnumValues(t *testing.T) {
	cases := map[ir.JoinType]int32{
		ir.JoinInner: planpb.JoinTypeInner,
		ir.JoinFull:  planpb.JoinTypeOuter,
		ir.JoinLeft:  planpb.JoinTypeLeft,
		ir.JoinRight: planpb.JoinTypeRight,
		ir.JoinSemi:  planpb.JoinTypeLeftSemi,
		ir.JoinAnti:  planpb.JoinTypeLeftAnti,
	}
	for jt, want := range cases {
		got, err := joinTypeValue(jt)
		require.NoError(t, err, string(jt))
		require.Equal(t, want, got, string(jt))
	}

	_, err := joinTypeValue(ir.JoinCross)
	require.Error(t, err)
	var te *mlqlerr.TranslateError
	require.ErrorAs(t, err, &te)
	require.Equal(t, mlqlerr.UnsupportedOperator, te.Kind)
}

func TestReservedOperatorRejected(t *testing.T) {
	doc := `{"pipeline":{"source":{"type":"Table","name":"users"},"ops":[{"op":"Knn","k":5}]}}`
	prog, err := ir.ParseJSON([]byte(doc))
	require.NoError(t, err)

	_, err = New(testProvider()).Translate(context.Background(), prog)
	require.Error(t, err)

	var te *mlqlerr.TranslateError
	require.ErrorAs(t, err, &te)
	require.Equal(t, mlqlerr.UnsupportedOperator, te.Kind)
}

func TestUnknownTableSurfacesSchemaError(t *testing.T) {
	_, err := New(testProvider()).Translate(context.Background(), ir.Program{Pipeline: ir.Pipeline{
		Source: ir.TableSource{Name: "missing"},
	}})
	require.Error(t, err)

	var te *mlqlerr.TranslateError
	require.ErrorAs(t, err, &te)
	require.Equal(t, mlqlerr.Schema, te.Kind)
}

func TestPlanBytesIndependentOfCallSite(t *testing.T) {
	build := func() ir.Program {
		return ir.Program{Pipeline: ir.Pipeline{
			Source: ir.TableSource{Name: "users"},
			Ops: []ir.Operator{
				ir.Filter{Condition: ir.BinaryOp{Op: ir.OpGt, Left: col("age"), Right: ir.Literal{Value: ir.IntValue(26)}}},
				ir.Sort{Keys: []ir.SortKey{{Expr: col("age"), Desc: true}}},
				ir.Take{Limit: 2},
			},
		}}
	}

	tr := New(testProvider())
	b1, err := tr.TranslateBytes(context.Background(), build())
	require.NoError(t, err)
	b2, err := tr.TranslateBytes(context.Background(), build())
	require.NoError(t, err)
	require.Equal(t, b1, b2, "structurally identical programs must produce identical plan bytes")
	require.NotEmpty(t, b1)
}

func TestPlanBytesRoundTrip(t *testing.T) {
	tr := New(testProvider())
	data, err := tr.TranslateBytes(context.Background(), ir.Program{Pipeline: ir.Pipeline{
		Source: ir.TableSource{Name: "users"},
		Ops:    []ir.Operator{ir.Take{Limit: 3}},
	}})
	require.NoError(t, err)

	var decoded planpb.Plan
	require.NoError(t, proto.Unmarshal(data, &decoded))
	require.Equal(t, uint32(PlanVersionMinor), decoded.Version.MinorNumber)
	require.Equal(t, int64(3), decoded.Relations[0].Root.Input.Fetch.Count)
}
