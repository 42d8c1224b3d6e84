package planner

// Surface syntax -> IR -> plan, checking the properties a consumer of the
// emitted plan depends on.

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mlql/mlql/internal/lang"
	"github.com/mlql/mlql/internal/mlqlerr"
	"github.com/mlql/mlql/internal/planpb"
)

func translateSrc(t *testing.T, src string) *planpb.Plan {
	t.Helper()
	prog, err := lang.ParseToIR(src)
	require.NoError(t, err)
	plan, err := New(testProvider()).Translate(context.Background(), prog)
	require.NoError(t, err)
	return plan
}

func TestEndToEndFilterSortTake(t *testing.T) {
	plan := translateSrc(t, `from users | filter age > 26 | sort -age | take 2`)

	root := rootOf(t, plan)
	require.Equal(t, []string{"id", "name", "age"}, root.Names)

	fetch := root.Input.Fetch
	require.NotNil(t, fetch)
	require.Equal(t, int64(2), fetch.Count)

	sort := fetch.Input.Sort
	require.NotNil(t, sort)
	require.Equal(t, planpb.SortDirectionDescNullsLast, sort.Sorts[0].Direction)

	filter := sort.Input.Filter
	require.NotNil(t, filter)
	require.NotNil(t, filter.Input.Read)
}

func TestEndToEndWildcardSelect(t *testing.T) {
	plan := translateSrc(t, `from users | select [*]`)

	root := rootOf(t, plan)
	require.Equal(t, []string{"id", "name", "age"}, root.Names)

	project := root.Input.Project
	require.NotNil(t, project)
	require.Len(t, project.Expressions, 3)
	for i, expr := range project.Expressions {
		require.Equal(t, int32(i), expr.Selection.DirectReference.StructField.Field)
	}
}

func TestEndToEndGroupByMultipleAggregates(t *testing.T) {
	plan := translateSrc(t, `from sales | group by product { total_qty: sum(qty), avg_price: avg(price) }`)

	root := rootOf(t, plan)
	require.Equal(t, []string{"product", "avg_price", "total_qty"}, root.Names)

	agg := root.Input.Aggregate
	require.Len(t, agg.Measures, 2)

	// sales is (product, price, qty); all three survive the read mask.
	read := agg.Input.Read
	require.NotNil(t, read.Projection)
	require.Len(t, read.Projection.Select.StructItems, 3)
}

func TestEndToEndRegisteredFunctionsTranslate(t *testing.T) {
	plan := translateSrc(t, `from users | select [mask(name) as masked]`)

	root := rootOf(t, plan)
	require.Equal(t, []string{"masked"}, root.Names)

	fn := root.Input.Project.Expressions[0].ScalarFunction
	require.NotNil(t, fn)
	require.Equal(t, findAnchor(t, plan, "mask"), fn.FunctionReference)
}

func TestEndToEndUnknownFunctionRejected(t *testing.T) {
	prog, err := lang.ParseToIR(`from users | select [frobnicate(name)]`)
	require.NoError(t, err)

	_, err = New(testProvider()).Translate(context.Background(), prog)
	require.Error(t, err)

	var ve *mlqlerr.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Message, "frobnicate")
}

func TestEndToEndUnknownAggregateRejected(t *testing.T) {
	prog, err := lang.ParseToIR(`from sales | group by product { x: frobnicate(qty) }`)
	require.NoError(t, err)

	_, err = New(testProvider()).Translate(context.Background(), prog)
	require.Error(t, err)

	var ve *mlqlerr.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestEndToEndSubPipelineSource(t *testing.T) {
	plan := translateSrc(t, `from (from orders | filter amount > 100) big | take 5`)

	root := rootOf(t, plan)
	require.Equal(t, []string{"id", "city", "amount"}, root.Names)

	fetch := root.Input.Fetch
	require.NotNil(t, fetch)
	require.NotNil(t, fetch.Input.Filter)
	require.NotNil(t, fetch.Input.Filter.Input.Read)
}
