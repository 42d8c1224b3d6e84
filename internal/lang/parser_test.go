package lang

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mlql/mlql/internal/ir"
	"github.com/mlql/mlql/internal/mlqlerr"
)

func TestParseSimplePipeline(t *testing.T) {
	prog, err := ParseToIR(`from users | filter age > 25 | select [name, age] | sort -age | take 10`)
	require.NoError(t, err)

	require.Equal(t, ir.TableSource{Name: "users"}, prog.Pipeline.Source)
	require.Len(t, prog.Pipeline.Ops, 4)

	filter, ok := prog.Pipeline.Ops[0].(ir.Filter)
	require.True(t, ok)
	cond, ok := filter.Condition.(ir.BinaryOp)
	require.True(t, ok)
	require.Equal(t, ir.OpGt, cond.Op)
	require.Equal(t, ir.Column{Col: ir.ColumnRef{Column: "age"}}, cond.Left)
	require.Equal(t, ir.Literal{Value: ir.IntValue(25)}, cond.Right)

	sel, ok := prog.Pipeline.Ops[1].(ir.Select)
	require.True(t, ok)
	require.Len(t, sel.Projections, 2)
	require.False(t, sel.Projections[0].Aliased)

	sort, ok := prog.Pipeline.Ops[2].(ir.Sort)
	require.True(t, ok)
	require.True(t, sort.Keys[0].Desc)

	require.Equal(t, ir.Take{Limit: 10}, prog.Pipeline.Ops[3])
}

func TestParseMatchesCanonicalJSON(t *testing.T) {
	prog, err := ParseToIR(`from users | filter age > 25 | select [name, age] | sort -age | take 10`)
	require.NoError(t, err)

	doc := `{"pipeline":{"source":{"type":"Table","name":"users"},"ops":[
	  {"op":"Filter","condition":{"type":"BinaryOp","op":"Gt",
	    "left":{"type":"Column","col":{"column":"age"}},
	    "right":{"type":"Literal","value":25}}},
	  {"op":"Select","projections":[
	    {"type":"Column","col":{"column":"name"}},
	    {"type":"Column","col":{"column":"age"}}]},
	  {"op":"Sort","keys":[{"expr":{"type":"Column","col":{"column":"age"}},"desc":true}]},
	  {"op":"Take","limit":10}]}}`
	fromJSON, err := ir.ParseJSON([]byte(doc))
	require.NoError(t, err)

	fp1, err := prog.Fingerprint()
	require.NoError(t, err)
	fp2, err := fromJSON.Fingerprint()
	require.NoError(t, err)
	require.Equal(t, fp1, fp2, "surface syntax and canonical JSON must lower to the same IR")
}

func TestParseWildcardSelect(t *testing.T) {
	prog, err := ParseToIR(`from users | select [*]`)
	require.NoError(t, err)

	sel := prog.Pipeline.Ops[0].(ir.Select)
	require.Len(t, sel.Projections, 1)
	col, ok := sel.Projections[0].Expr.(ir.Column)
	require.True(t, ok)
	require.True(t, col.Col.IsWildcard())
}

func TestParseAliasedProjection(t *testing.T) {
	prog, err := ParseToIR(`from orders | select [amount * 2 as doubled]`)
	require.NoError(t, err)

	sel := prog.Pipeline.Ops[0].(ir.Select)
	require.True(t, sel.Projections[0].Aliased)
	require.Equal(t, "doubled", sel.Projections[0].Alias)
	bin, ok := sel.Projections[0].Expr.(ir.BinaryOp)
	require.True(t, ok)
	require.Equal(t, ir.OpMul, bin.Op)
}

func TestParseJoinWithAliases(t *testing.T) {
	prog, err := ParseToIR(`from users u | join orders o on u.id == o.user_id`)
	require.NoError(t, err)

	require.Equal(t, ir.TableSource{Name: "users", Alias: "u"}, prog.Pipeline.Source)
	join, ok := prog.Pipeline.Ops[0].(ir.Join)
	require.True(t, ok)
	require.Equal(t, ir.TableSource{Name: "orders", Alias: "o"}, join.Source)
	require.Equal(t, ir.JoinInner, join.EffectiveJoinType())

	on, ok := join.On.(ir.BinaryOp)
	require.True(t, ok)
	require.Equal(t, ir.Column{Col: ir.ColumnRef{Table: "u", Column: "id"}}, on.Left)
	require.Equal(t, ir.Column{Col: ir.ColumnRef{Table: "o", Column: "user_id"}}, on.Right)
}

func TestParseJoinTypes(t *testing.T) {
	cases := map[string]ir.JoinType{
		"left join orders o on u.id == o.user_id":  ir.JoinLeft,
		"right join orders o on u.id == o.user_id": ir.JoinRight,
		"full join orders o on u.id == o.user_id":  ir.JoinFull,
		"semi join orders o on u.id == o.user_id":  ir.JoinSemi,
		"anti join orders o on u.id == o.user_id":  ir.JoinAnti,
		"cross join orders o on u.id == o.user_id": ir.JoinCross,
	}
	for src, want := range cases {
		prog, err := ParseToIR("from users u | " + src)
		require.NoError(t, err, src)
		join := prog.Pipeline.Ops[0].(ir.Join)
		require.Equal(t, want, join.JoinType, src)
	}
}

func TestParseGroupBy(t *testing.T) {
	prog, err := ParseToIR(`from orders | group by city { total: count(), biggest: max(amount) }`)
	require.NoError(t, err)

	gb, ok := prog.Pipeline.Ops[0].(ir.GroupBy)
	require.True(t, ok)
	require.Len(t, gb.Keys, 1)
	require.Equal(t, ir.Column{Col: ir.ColumnRef{Column: "city"}}, gb.Keys[0])

	require.Len(t, gb.Aggs, 2)
	require.Equal(t, ir.AggCall{Func: "count", Args: []ir.Expression{}}, gb.Aggs["total"])
	require.Equal(t, "max", gb.Aggs["biggest"].Func)
	require.Equal(t, ir.Column{Col: ir.ColumnRef{Column: "amount"}}, gb.Aggs["biggest"].Args[0])
}

func TestParsePragmaAndLets(t *testing.T) {
	prog, err := ParseToIR(`
		pragma { budget_rows: 5000, strict: true }
		let recent = from orders | take 100
		from recent | filter amount > 10
	`)
	require.NoError(t, err)

	require.NotNil(t, prog.Pragma)
	require.Equal(t, ir.IntValue(5000), prog.Pragma.Options["budget_rows"])
	require.Equal(t, ir.BoolValue(true), prog.Pragma.Options["strict"])

	require.Len(t, prog.Lets, 1)
	require.Equal(t, "recent", prog.Lets[0].Name)
	require.Equal(t, ir.TableSource{Name: "orders"}, prog.Lets[0].Pipeline.Source)
}

func TestParseSubPipelineSource(t *testing.T) {
	prog, err := ParseToIR(`from (from orders | filter amount > 100) big | take 5`)
	require.NoError(t, err)

	sub, ok := prog.Pipeline.Source.(ir.SubPipelineSource)
	require.True(t, ok)
	require.Equal(t, "big", sub.Alias)
	require.Equal(t, ir.TableSource{Name: "orders"}, sub.Pipeline.Source)
	require.Len(t, sub.Pipeline.Ops, 1)
}

func TestParseExpressionPrecedence(t *testing.T) {
	prog, err := ParseToIR(`from t | filter a + b * c == d or not e`)
	require.NoError(t, err)

	cond := prog.Pipeline.Ops[0].(ir.Filter).Condition
	or, ok := cond.(ir.BinaryOp)
	require.True(t, ok)
	require.Equal(t, ir.OpOr, or.Op)

	eq, ok := or.Left.(ir.BinaryOp)
	require.True(t, ok)
	require.Equal(t, ir.OpEq, eq.Op)

	add, ok := eq.Left.(ir.BinaryOp)
	require.True(t, ok)
	require.Equal(t, ir.OpAdd, add.Op)
	mul, ok := add.Right.(ir.BinaryOp)
	require.True(t, ok)
	require.Equal(t, ir.OpMul, mul.Op)

	not, ok := or.Right.(ir.UnaryOp)
	require.True(t, ok)
	require.Equal(t, ir.OpNot, not.Op)
}

func TestParseStringEscapesAndLike(t *testing.T) {
	prog, err := ParseToIR(`from users | filter name like "A%" and bio ilike "%\"quoted\"%"`)
	require.NoError(t, err)

	and := prog.Pipeline.Ops[0].(ir.Filter).Condition.(ir.BinaryOp)
	require.Equal(t, ir.OpAnd, and.Op)
	require.Equal(t, ir.OpLike, and.Left.(ir.BinaryOp).Op)

	ilike := and.Right.(ir.BinaryOp)
	require.Equal(t, ir.OpILike, ilike.Op)
	require.Equal(t, ir.StringValue(`%"quoted"%`), ilike.Right.(ir.Literal).Value)
}

func TestParseFuncCallInProjection(t *testing.T) {
	prog, err := ParseToIR(`from docs | select [fts_rank(body, "query terms") as score]`)
	require.NoError(t, err)

	sel := prog.Pipeline.Ops[0].(ir.Select)
	call, ok := sel.Projections[0].Expr.(ir.FuncCall)
	require.True(t, ok)
	require.Equal(t, "fts_rank", call.Name)
	require.Len(t, call.Args, 2)
}

func TestParseErrorsCarryPosition(t *testing.T) {
	_, err := Parse("from users |\n  filt age > 25")
	require.Error(t, err)

	var syn *mlqlerr.SyntaxError
	require.ErrorAs(t, err, &syn)
	require.Equal(t, 2, syn.Line)
	require.Greater(t, syn.Column, 1)
}

func TestParseRejectsTrailingInput(t *testing.T) {
	_, err := Parse("from users extra stuff")
	require.Error(t, err)

	var syn *mlqlerr.SyntaxError
	require.ErrorAs(t, err, &syn)
}

func TestParseRejectsUnterminatedString(t *testing.T) {
	_, err := Parse(`from users | filter name == "unterminated`)
	require.Error(t, err)

	var syn *mlqlerr.SyntaxError
	require.ErrorAs(t, err, &syn)
}

func TestParseFloatAndNegativeLiterals(t *testing.T) {
	prog, err := ParseToIR(`from t | filter score > 0.5 and delta > -3`)
	require.NoError(t, err)

	and := prog.Pipeline.Ops[0].(ir.Filter).Condition.(ir.BinaryOp)
	gt := and.Left.(ir.BinaryOp)
	require.Equal(t, ir.FloatValue(0.5), gt.Right.(ir.Literal).Value)

	neg := and.Right.(ir.BinaryOp).Right.(ir.UnaryOp)
	require.Equal(t, ir.OpNeg, neg.Op)
	require.Equal(t, ir.IntValue(3), neg.Operand.(ir.Literal).Value)
}
