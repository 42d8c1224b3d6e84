package planner

import (
	"fmt"
	"strings"

	"github.com/mlql/mlql/internal/ir"
	"github.com/mlql/mlql/internal/mlqlerr"
	"github.com/mlql/mlql/internal/planpb"
)

// scalarFunctionNames maps IR binary operators to their extension-function
// names.
var scalarFunctionNames = map[ir.BinaryOperator]string{
	ir.OpEq: "equal", ir.OpNe: "not_equal",
	ir.OpLt: "lt", ir.OpLe: "lte", ir.OpGt: "gt", ir.OpGe: "gte",
	ir.OpAnd: "and", ir.OpOr: "or",
	ir.OpAdd: "add", ir.OpSub: "subtract", ir.OpMul: "multiply", ir.OpDiv: "divide",
	ir.OpMod: "modulus",
	ir.OpLike: "like", ir.OpILike: "ilike",
}

// translateExpr converts an IR expression into a plan expression against
// the current schema. rooted requests the explicit RootReference marker on
// column references, required inside grouping expressions and aggregate
// arguments.
func translateExpr(expr ir.Expression, current []string, reg *extensionRegistry, rooted bool) (*planpb.Expression, error) {
	switch e := expr.(type) {
	case ir.Literal:
		return translateLiteral(e.Value)

	case ir.Column:
		if e.Col.IsWildcard() {
			return nil, &mlqlerr.TranslateError{
				Kind:    mlqlerr.Translation,
				Message: "wildcard column reference is only valid as a bare Select projection",
			}
		}
		index, err := resolveColumn(e.Col, current)
		if err != nil {
			return nil, err
		}
		return fieldRef(int32(index), rooted), nil

	case ir.BinaryOp:
		name, ok := scalarFunctionNames[e.Op]
		if !ok {
			return nil, &mlqlerr.TranslateError{
				Kind:    mlqlerr.UnsupportedOperator,
				Message: fmt.Sprintf("binary operator %q", string(e.Op)),
			}
		}
		left, err := translateExpr(e.Left, current, reg, rooted)
		if err != nil {
			return nil, err
		}
		right, err := translateExpr(e.Right, current, reg, rooted)
		if err != nil {
			return nil, err
		}
		// Binary-op signatures are conservatively i32_i32; concrete input
		// types are inferred by the consuming engine.
		anchor := reg.intern(name, name+":i32_i32")
		return scalarCall(anchor, binaryOutputType(e.Op), left, right), nil

	case ir.UnaryOp:
		operand, err := translateExpr(e.Operand, current, reg, rooted)
		if err != nil {
			return nil, err
		}
		switch e.Op {
		case ir.OpNot:
			anchor := reg.intern("not", "not:bool")
			return scalarCall(anchor, nullableBool(), operand), nil
		case ir.OpNeg:
			anchor := reg.intern("negate", "negate:i32")
			return scalarCall(anchor, nullableI64(), operand), nil
		default:
			return nil, &mlqlerr.TranslateError{
				Kind:    mlqlerr.UnsupportedOperator,
				Message: fmt.Sprintf("unary operator %q", string(e.Op)),
			}
		}

	case ir.FuncCall:
		if !reg.knownFunction(e.Name) {
			return nil, &mlqlerr.ValidationError{Message: fmt.Sprintf("unknown function %q", e.Name)}
		}
		args := make([]*planpb.Expression, len(e.Args))
		for i, arg := range e.Args {
			translated, err := translateExpr(arg, current, reg, rooted)
			if err != nil {
				return nil, err
			}
			args[i] = translated
		}
		sigArgs := make([]string, len(e.Args))
		for i := range sigArgs {
			sigArgs[i] = "i32"
		}
		anchor := reg.intern(e.Name, e.Name+":"+strings.Join(sigArgs, "_"))
		return scalarCall(anchor, nullableI64(), args...), nil

	default:
		return nil, &mlqlerr.TranslateError{
			Kind:    mlqlerr.Translation,
			Message: fmt.Sprintf("expression type %q is not supported by the plan translator", expr.ExprType()),
		}
	}
}

// resolveColumn maps a column reference to its positional field index in
// the current schema. Qualified references resolve by bare column name;
// the qualifier is the producer's concern.
func resolveColumn(ref ir.ColumnRef, current []string) (int, error) {
	for i, name := range current {
		if name == ref.Column {
			return i, nil
		}
	}
	return 0, &mlqlerr.TranslateError{
		Kind:      mlqlerr.Schema,
		Message:   fmt.Sprintf("column %q not found in current schema", ref.Column),
		Available: append([]string(nil), current...),
	}
}

func fieldRef(index int32, rooted bool) *planpb.Expression {
	ref := &planpb.FieldReference{
		DirectReference: &planpb.ReferenceSegment{
			StructField: &planpb.StructFieldRef{Field: index},
		},
	}
	if rooted {
		ref.RootReference = &planpb.RootReference{}
	}
	return &planpb.Expression{Selection: ref}
}

func scalarCall(anchor uint32, output *planpb.Type, args ...*planpb.Expression) *planpb.Expression {
	wrapped := make([]*planpb.FunctionArgument, len(args))
	for i, arg := range args {
		wrapped[i] = &planpb.FunctionArgument{Value: arg}
	}
	return &planpb.Expression{ScalarFunction: &planpb.ScalarFunction{
		FunctionReference: anchor,
		OutputType:        output,
		Arguments:         wrapped,
	}}
}

func translateLiteral(v ir.Value) (*planpb.Expression, error) {
	lit := &planpb.Literal{}
	switch v.Kind {
	case ir.KindNull:
		lit.Null = nullableI64()
	case ir.KindBool:
		b := v.Bool
		lit.Boolean = &b
	case ir.KindInt:
		n := v.Int
		lit.I64 = &n
	case ir.KindFloat:
		f := v.Float
		lit.Fp64 = &f
	case ir.KindString:
		s := v.Str
		lit.Str = &s
	default:
		return nil, &mlqlerr.TranslateError{
			Kind:    mlqlerr.Translation,
			Message: fmt.Sprintf("literal of kind %d is not supported by the plan translator", int(v.Kind)),
		}
	}
	return &planpb.Expression{Literal: lit}, nil
}

func binaryOutputType(op ir.BinaryOperator) *planpb.Type {
	switch op {
	case ir.OpEq, ir.OpNe, ir.OpLt, ir.OpLe, ir.OpGt, ir.OpGe,
		ir.OpAnd, ir.OpOr, ir.OpLike, ir.OpILike:
		return nullableBool()
	default:
		return nullableI64()
	}
}

func nullableBool() *planpb.Type {
	return &planpb.Type{Bool: &planpb.ScalarKind{Nullability: planpb.NullabilityNullable}}
}

func nullableI64() *planpb.Type {
	return &planpb.Type{I64: &planpb.ScalarKind{Nullability: planpb.NullabilityNullable}}
}
