// Package sqllower folds an IR pipeline into a single SELECT string for
// the embedded analytical engine. It is one of the two interchangeable
// lowerings; the other (internal/planner) emits a relational-algebra plan.
package sqllower

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mlql/mlql/internal/ir"
	"github.com/mlql/mlql/internal/mlqlerr"
	"github.com/mlql/mlql/internal/schema"
)

// Lowerer renders IR programs to SQL. The provider is consulted to verify
// that every table the pipeline scans or joins actually exists; rendering
// itself never needs column lists since the default projection is "*".
type Lowerer struct {
	provider schema.Provider
}

// New returns a Lowerer backed by the given schema provider.
func New(provider schema.Provider) *Lowerer {
	return &Lowerer{provider: provider}
}

// Lower renders the program's terminal pipeline as one SELECT statement.
func (l *Lowerer) Lower(ctx context.Context, prog ir.Program) (string, error) {
	return l.lowerPipeline(ctx, prog.Pipeline)
}

// state is the running fold over a pipeline's operators.
type state struct {
	selectClause string
	fromClause   string
	where        string
	groupBy      string
	orderBy      string
	limit        string
	distinct     bool
}

func (l *Lowerer) lowerPipeline(ctx context.Context, pipeline ir.Pipeline) (string, error) {
	from, err := l.renderSource(ctx, pipeline.Source)
	if err != nil {
		return "", err
	}

	st := state{selectClause: "*", fromClause: from}
	for _, op := range pipeline.Ops {
		if err := l.applyOperator(ctx, &st, op); err != nil {
			return "", err
		}
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	if st.distinct {
		sb.WriteString("DISTINCT ")
	}
	sb.WriteString(st.selectClause)
	sb.WriteString(" FROM ")
	sb.WriteString(st.fromClause)
	if st.where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(st.where)
	}
	if st.groupBy != "" {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(st.groupBy)
	}
	if st.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(st.orderBy)
	}
	if st.limit != "" {
		sb.WriteString(" LIMIT ")
		sb.WriteString(st.limit)
	}
	return sb.String(), nil
}

func (l *Lowerer) renderSource(ctx context.Context, source ir.Source) (string, error) {
	switch s := source.(type) {
	case ir.TableSource:
		if _, err := l.provider.GetTableSchema(ctx, s.Name); err != nil {
			return "", err
		}
		if s.Alias != "" {
			return s.Name + " " + s.Alias, nil
		}
		return s.Name, nil
	case ir.SubPipelineSource:
		inner, err := l.lowerPipeline(ctx, s.Pipeline)
		if err != nil {
			return "", err
		}
		if s.Alias != "" {
			return "(" + inner + ") " + s.Alias, nil
		}
		return "(" + inner + ")", nil
	default:
		return "", unsupported("source type %q", source.SourceType())
	}
}

func (l *Lowerer) applyOperator(ctx context.Context, st *state, op ir.Operator) error {
	switch o := op.(type) {
	case ir.Select:
		items := make([]string, len(o.Projections))
		for i, proj := range o.Projections {
			rendered, err := renderProjection(proj)
			if err != nil {
				return err
			}
			items[i] = rendered
		}
		st.selectClause = strings.Join(items, ", ")
		return nil

	case ir.Filter:
		cond, err := renderExpr(o.Condition)
		if err != nil {
			return err
		}
		// Later filters AND-merge with earlier ones so stacked pipeline
		// stages compose instead of silently dropping a predicate.
		if st.where != "" {
			st.where = st.where + " AND " + cond
		} else {
			st.where = cond
		}
		return nil

	case ir.Join:
		kind, err := joinKindSQL(o.EffectiveJoinType())
		if err != nil {
			return err
		}
		src, err := l.renderSource(ctx, o.Source)
		if err != nil {
			return err
		}
		on, err := renderExpr(o.On)
		if err != nil {
			return err
		}
		st.fromClause = st.fromClause + " " + kind + " " + src + " ON " + on
		return nil

	case ir.GroupBy:
		keys := make([]string, len(o.Keys))
		for i, key := range o.Keys {
			rendered, err := renderExpr(key)
			if err != nil {
				return err
			}
			keys[i] = rendered
		}

		items := append([]string(nil), keys...)
		for _, alias := range sortedAggAliases(o.Aggs) {
			rendered, err := renderAggCall(o.Aggs[alias], alias)
			if err != nil {
				return err
			}
			items = append(items, rendered)
		}

		st.selectClause = strings.Join(items, ", ")
		st.groupBy = strings.Join(keys, ", ")
		return nil

	case ir.Sort:
		keys := make([]string, len(o.Keys))
		for i, key := range o.Keys {
			rendered, err := renderExpr(key.Expr)
			if err != nil {
				return err
			}
			dir := " ASC"
			if key.Desc {
				dir = " DESC"
			}
			keys[i] = rendered + dir
		}
		st.orderBy = strings.Join(keys, ", ")
		return nil

	case ir.Take:
		st.limit = strconv.FormatInt(o.Limit, 10)
		return nil

	case ir.Distinct:
		st.distinct = true
		return nil

	default:
		return unsupported("operator %q", op.OpName())
	}
}

// sortedAggAliases fixes the aggregate output order: aliases sorted
// lexically. internal/planner applies the same policy so both lowerings
// agree on the output schema of a GroupBy.
func sortedAggAliases(aggs map[string]ir.AggCall) []string {
	aliases := make([]string, 0, len(aggs))
	for alias := range aggs {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

func joinKindSQL(jt ir.JoinType) (string, error) {
	switch jt {
	case ir.JoinInner:
		return "INNER JOIN", nil
	case ir.JoinLeft:
		return "LEFT JOIN", nil
	case ir.JoinRight:
		return "RIGHT JOIN", nil
	case ir.JoinFull:
		return "FULL JOIN", nil
	case ir.JoinCross:
		return "CROSS JOIN", nil
	case ir.JoinSemi, ir.JoinAnti:
		return "", unsupported("%s join", strings.ToLower(string(jt)))
	default:
		return "", unsupported("join type %q", string(jt))
	}
}

func renderProjection(proj ir.Projection) (string, error) {
	expr, err := renderExpr(proj.Expr)
	if err != nil {
		return "", err
	}
	if proj.Aliased {
		return expr + " AS " + proj.Alias, nil
	}
	return expr, nil
}

func renderAggCall(agg ir.AggCall, alias string) (string, error) {
	if len(agg.Args) == 0 {
		// Zero-argument aggregates mean count-of-rows.
		return fmt.Sprintf("%s(*) AS %s", agg.Func, alias), nil
	}
	args := make([]string, len(agg.Args))
	for i, arg := range agg.Args {
		rendered, err := renderExpr(arg)
		if err != nil {
			return "", err
		}
		args[i] = rendered
	}
	return fmt.Sprintf("%s(%s) AS %s", agg.Func, strings.Join(args, ", "), alias), nil
}

var binaryOpSQL = map[ir.BinaryOperator]string{
	ir.OpAdd: "+", ir.OpSub: "-", ir.OpMul: "*", ir.OpDiv: "/", ir.OpMod: "%",
	ir.OpEq: "=", ir.OpNe: "!=", ir.OpLt: "<", ir.OpLe: "<=", ir.OpGt: ">", ir.OpGe: ">=",
	ir.OpAnd: "AND", ir.OpOr: "OR",
	ir.OpLike: "LIKE", ir.OpILike: "ILIKE",
}

func renderExpr(expr ir.Expression) (string, error) {
	switch e := expr.(type) {
	case ir.Literal:
		return renderValue(e.Value)

	case ir.Column:
		if e.Col.IsWildcard() {
			return "*", nil
		}
		// Identifiers are rendered unquoted; safe identifier use is
		// assumed, a documented limitation of this lowering.
		if e.Col.Table != "" {
			return e.Col.Table + "." + e.Col.Column, nil
		}
		return e.Col.Column, nil

	case ir.BinaryOp:
		op, ok := binaryOpSQL[e.Op]
		if !ok {
			return "", unsupported("binary operator %q", string(e.Op))
		}
		left, err := renderExpr(e.Left)
		if err != nil {
			return "", err
		}
		right, err := renderExpr(e.Right)
		if err != nil {
			return "", err
		}
		return "(" + left + " " + op + " " + right + ")", nil

	case ir.UnaryOp:
		operand, err := renderExpr(e.Operand)
		if err != nil {
			return "", err
		}
		switch e.Op {
		case ir.OpNeg:
			return "(-" + operand + ")", nil
		case ir.OpNot:
			return "(NOT " + operand + ")", nil
		default:
			return "", unsupported("unary operator %q", string(e.Op))
		}

	case ir.FuncCall:
		args := make([]string, len(e.Args))
		for i, arg := range e.Args {
			rendered, err := renderExpr(arg)
			if err != nil {
				return "", err
			}
			args[i] = rendered
		}
		return e.Name + "(" + strings.Join(args, ", ") + ")", nil

	case ir.RangeExpr:
		target, err := renderExpr(e.Target)
		if err != nil {
			return "", err
		}
		low, err := renderExpr(e.Low)
		if err != nil {
			return "", err
		}
		high, err := renderExpr(e.High)
		if err != nil {
			return "", err
		}
		return "(" + target + " BETWEEN " + low + " AND " + high + ")", nil

	case ir.SetMembership:
		target, err := renderExpr(e.Target)
		if err != nil {
			return "", err
		}
		items := make([]string, len(e.Set))
		for i, item := range e.Set {
			rendered, err := renderExpr(item)
			if err != nil {
				return "", err
			}
			items[i] = rendered
		}
		op := " IN ("
		if e.Negated {
			op = " NOT IN ("
		}
		return "(" + target + op + strings.Join(items, ", ") + "))", nil

	default:
		return "", unsupported("expression type %q", expr.ExprType())
	}
}

func renderValue(v ir.Value) (string, error) {
	switch v.Kind {
	case ir.KindNull:
		return "NULL", nil
	case ir.KindBool:
		if v.Bool {
			return "TRUE", nil
		}
		return "FALSE", nil
	case ir.KindInt:
		return strconv.FormatInt(v.Int, 10), nil
	case ir.KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64), nil
	case ir.KindString:
		return "'" + strings.ReplaceAll(v.Str, "'", "''") + "'", nil
	default:
		return "", unsupported("literal of kind %d", int(v.Kind))
	}
}

// unsupported wraps a rejection in the Substrait execution-error kind, the
// shape the SQL lowering reuses for unsupported-operator diagnostics even
// though no plan is produced on this path.
func unsupported(format string, args ...any) error {
	return &mlqlerr.ExecutionError{
		Kind:    mlqlerr.Substrait,
		Message: "sql lowering does not support " + fmt.Sprintf(format, args...),
	}
}
