package ir

import (
	"encoding/json"
	"fmt"
)

// Expression is the tagged-variant interface implemented by every
// expression node. Each concrete type owns its own JSON shape; dispatch on
// decode happens by peeking the "type" discriminator (see DecodeExpression).
type Expression interface {
	ExprType() string
}

// BinaryOperator enumerates binary expression operators.
type BinaryOperator string

const (
	OpAdd BinaryOperator = "Add"
	OpSub BinaryOperator = "Sub"
	OpMul BinaryOperator = "Mul"
	OpDiv BinaryOperator = "Div"
	OpMod BinaryOperator = "Mod"

	OpEq BinaryOperator = "Eq"
	OpNe BinaryOperator = "Ne"
	OpLt BinaryOperator = "Lt"
	OpLe BinaryOperator = "Le"
	OpGt BinaryOperator = "Gt"
	OpGe BinaryOperator = "Ge"

	OpAnd BinaryOperator = "And"
	OpOr  BinaryOperator = "Or"

	OpLike  BinaryOperator = "Like"
	OpILike BinaryOperator = "ILike"
)

// UnaryOperator enumerates unary expression operators.
type UnaryOperator string

const (
	OpNeg UnaryOperator = "Neg"
	OpNot UnaryOperator = "Not"
)

// ColumnRef names a column, optionally qualified by its source table/alias.
// A wildcard projection is a ColumnRef whose Column is "*" and Table is empty.
type ColumnRef struct {
	Table  string `json:"table,omitempty"`
	Column string `json:"column"`
}

func (c ColumnRef) IsWildcard() bool { return c.Table == "" && c.Column == "*" }

// Literal is a constant value.
type Literal struct {
	Value Value
}

func (Literal) ExprType() string { return "Literal" }

func (l Literal) MarshalJSON() ([]byte, error) {
	return marshalJSON(struct {
		Type  string `json:"type"`
		Value Value  `json:"value"`
	}{"Literal", l.Value})
}

// Column is a (possibly qualified) column reference.
type Column struct {
	Col ColumnRef
}

func (Column) ExprType() string { return "Column" }

func (c Column) MarshalJSON() ([]byte, error) {
	return marshalJSON(struct {
		Type string    `json:"type"`
		Col  ColumnRef `json:"col"`
	}{"Column", c.Col})
}

// BinaryOp applies a binary operator to two sub-expressions.
type BinaryOp struct {
	Op    BinaryOperator
	Left  Expression
	Right Expression
}

func (BinaryOp) ExprType() string { return "BinaryOp" }

func (b BinaryOp) MarshalJSON() ([]byte, error) {
	left, err := rawMessage(b.Left)
	if err != nil {
		return nil, err
	}
	right, err := rawMessage(b.Right)
	if err != nil {
		return nil, err
	}
	return marshalJSON(struct {
		Type  string          `json:"type"`
		Op    BinaryOperator  `json:"op"`
		Left  json.RawMessage `json:"left"`
		Right json.RawMessage `json:"right"`
	}{"BinaryOp", b.Op, left, right})
}

// UnaryOp applies a unary operator to a single sub-expression.
type UnaryOp struct {
	Op      UnaryOperator
	Operand Expression
}

func (UnaryOp) ExprType() string { return "UnaryOp" }

func (u UnaryOp) MarshalJSON() ([]byte, error) {
	operand, err := rawMessage(u.Operand)
	if err != nil {
		return nil, err
	}
	return marshalJSON(struct {
		Type    string          `json:"type"`
		Op      UnaryOperator   `json:"op"`
		Operand json.RawMessage `json:"operand"`
	}{"UnaryOp", u.Op, operand})
}

// FuncCall invokes a named scalar (or, in a projection context, window)
// function. Inside GroupBy.Aggs the same shape is represented as AggCall
// instead.
type FuncCall struct {
	Name string
	Args []Expression
}

func (FuncCall) ExprType() string { return "FuncCall" }

func (f FuncCall) MarshalJSON() ([]byte, error) {
	args, err := marshalExprList(f.Args)
	if err != nil {
		return nil, err
	}
	return marshalJSON(struct {
		Type string            `json:"type"`
		Name string            `json:"name"`
		Args []json.RawMessage `json:"args"`
	}{"FuncCall", f.Name, args})
}

// FieldAccess reads a named field off a struct-valued expression.
type FieldAccess struct {
	Target Expression
	Field  string
}

func (FieldAccess) ExprType() string { return "FieldAccess" }

func (f FieldAccess) MarshalJSON() ([]byte, error) {
	target, err := rawMessage(f.Target)
	if err != nil {
		return nil, err
	}
	return marshalJSON(struct {
		Type   string          `json:"type"`
		Target json.RawMessage `json:"target"`
		Field  string          `json:"field"`
	}{"FieldAccess", target, f.Field})
}

// IndexExpr indexes into an array- or map-valued expression.
type IndexExpr struct {
	Target Expression
	Index  Expression
}

func (IndexExpr) ExprType() string { return "Index" }

func (x IndexExpr) MarshalJSON() ([]byte, error) {
	target, err := rawMessage(x.Target)
	if err != nil {
		return nil, err
	}
	index, err := rawMessage(x.Index)
	if err != nil {
		return nil, err
	}
	return marshalJSON(struct {
		Type   string          `json:"type"`
		Target json.RawMessage `json:"target"`
		Index  json.RawMessage `json:"index"`
	}{"Index", target, index})
}

// ArrayLit is an array literal.
type ArrayLit struct {
	Items []Expression
}

func (ArrayLit) ExprType() string { return "Array" }

func (a ArrayLit) MarshalJSON() ([]byte, error) {
	items, err := marshalExprList(a.Items)
	if err != nil {
		return nil, err
	}
	return marshalJSON(struct {
		Type  string            `json:"type"`
		Items []json.RawMessage `json:"items"`
	}{"Array", items})
}

// ObjectLit is an object (struct) literal.
type ObjectLit struct {
	Fields map[string]Expression
}

func (ObjectLit) ExprType() string { return "Object" }

func (o ObjectLit) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(o.Fields))
	for k, v := range o.Fields {
		raw, err := rawMessage(v)
		if err != nil {
			return nil, err
		}
		fields[k] = raw
	}
	return marshalJSON(struct {
		Type   string                     `json:"type"`
		Fields map[string]json.RawMessage `json:"fields"`
	}{"Object", fields})
}

// VectorLit is a dense numeric vector literal (embedding).
type VectorLit struct {
	Items []Expression
}

func (VectorLit) ExprType() string { return "Vector" }

func (v VectorLit) MarshalJSON() ([]byte, error) {
	items, err := marshalExprList(v.Items)
	if err != nil {
		return nil, err
	}
	return marshalJSON(struct {
		Type  string            `json:"type"`
		Items []json.RawMessage `json:"items"`
	}{"Vector", items})
}

// RangeExpr tests whether Target falls within [Low, High] inclusive.
type RangeExpr struct {
	Target Expression
	Low    Expression
	High   Expression
}

func (RangeExpr) ExprType() string { return "Range" }

func (r RangeExpr) MarshalJSON() ([]byte, error) {
	target, err := rawMessage(r.Target)
	if err != nil {
		return nil, err
	}
	low, err := rawMessage(r.Low)
	if err != nil {
		return nil, err
	}
	high, err := rawMessage(r.High)
	if err != nil {
		return nil, err
	}
	return marshalJSON(struct {
		Type   string          `json:"type"`
		Target json.RawMessage `json:"target"`
		Low    json.RawMessage `json:"low"`
		High   json.RawMessage `json:"high"`
	}{"Range", target, low, high})
}

// SetMembership tests whether Target appears in Set ("in" / "not in").
type SetMembership struct {
	Target  Expression
	Set     []Expression
	Negated bool
}

func (SetMembership) ExprType() string { return "In" }

func (s SetMembership) MarshalJSON() ([]byte, error) {
	target, err := rawMessage(s.Target)
	if err != nil {
		return nil, err
	}
	set, err := marshalExprList(s.Set)
	if err != nil {
		return nil, err
	}
	return marshalJSON(struct {
		Type    string            `json:"type"`
		Target  json.RawMessage   `json:"target"`
		Set     []json.RawMessage `json:"set"`
		Negated bool              `json:"negated,omitempty"`
	}{"In", target, set, s.Negated})
}

func marshalExprList(exprs []Expression) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, len(exprs))
	for i, e := range exprs {
		raw, err := rawMessage(e)
		if err != nil {
			return nil, err
		}
		out[i] = raw
	}
	return out, nil
}

// exprTypeTag is used to peek the discriminator before dispatching to a
// concrete type's decoder.
type exprTypeTag struct {
	Type string `json:"type"`
}

// DecodeExpression dispatches on the "type" discriminator to unmarshal an
// Expression node into the matching concrete type.
func DecodeExpression(data []byte) (Expression, error) {
	var tag exprTypeTag
	if err := unmarshalJSON(data, &tag); err != nil {
		return nil, fmt.Errorf("ir: decoding expression tag: %w", err)
	}

	switch tag.Type {
	case "Literal":
		var body struct {
			Value Value `json:"value"`
		}
		if err := unmarshalJSON(data, &body); err != nil {
			return nil, err
		}
		return Literal{Value: body.Value}, nil

	case "Column":
		var body struct {
			Col ColumnRef `json:"col"`
		}
		if err := unmarshalJSON(data, &body); err != nil {
			return nil, err
		}
		return Column{Col: body.Col}, nil

	case "BinaryOp":
		var body struct {
			Op    BinaryOperator  `json:"op"`
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
		}
		if err := unmarshalJSON(data, &body); err != nil {
			return nil, err
		}
		left, err := DecodeExpression(body.Left)
		if err != nil {
			return nil, err
		}
		right, err := DecodeExpression(body.Right)
		if err != nil {
			return nil, err
		}
		return BinaryOp{Op: body.Op, Left: left, Right: right}, nil

	case "UnaryOp":
		var body struct {
			Op      UnaryOperator   `json:"op"`
			Operand json.RawMessage `json:"operand"`
		}
		if err := unmarshalJSON(data, &body); err != nil {
			return nil, err
		}
		operand, err := DecodeExpression(body.Operand)
		if err != nil {
			return nil, err
		}
		return UnaryOp{Op: body.Op, Operand: operand}, nil

	case "FuncCall":
		var body struct {
			Name string            `json:"name"`
			Args []json.RawMessage `json:"args"`
		}
		if err := unmarshalJSON(data, &body); err != nil {
			return nil, err
		}
		args, err := decodeExprList(body.Args)
		if err != nil {
			return nil, err
		}
		return FuncCall{Name: body.Name, Args: args}, nil

	case "FieldAccess":
		var body struct {
			Target json.RawMessage `json:"target"`
			Field  string          `json:"field"`
		}
		if err := unmarshalJSON(data, &body); err != nil {
			return nil, err
		}
		target, err := DecodeExpression(body.Target)
		if err != nil {
			return nil, err
		}
		return FieldAccess{Target: target, Field: body.Field}, nil

	case "Index":
		var body struct {
			Target json.RawMessage `json:"target"`
			Index  json.RawMessage `json:"index"`
		}
		if err := unmarshalJSON(data, &body); err != nil {
			return nil, err
		}
		target, err := DecodeExpression(body.Target)
		if err != nil {
			return nil, err
		}
		index, err := DecodeExpression(body.Index)
		if err != nil {
			return nil, err
		}
		return IndexExpr{Target: target, Index: index}, nil

	case "Array":
		var body struct {
			Items []json.RawMessage `json:"items"`
		}
		if err := unmarshalJSON(data, &body); err != nil {
			return nil, err
		}
		items, err := decodeExprList(body.Items)
		if err != nil {
			return nil, err
		}
		return ArrayLit{Items: items}, nil

	case "Object":
		var body struct {
			Fields map[string]json.RawMessage `json:"fields"`
		}
		if err := unmarshalJSON(data, &body); err != nil {
			return nil, err
		}
		fields := make(map[string]Expression, len(body.Fields))
		for k, raw := range body.Fields {
			expr, err := DecodeExpression(raw)
			if err != nil {
				return nil, err
			}
			fields[k] = expr
		}
		return ObjectLit{Fields: fields}, nil

	case "Vector":
		var body struct {
			Items []json.RawMessage `json:"items"`
		}
		if err := unmarshalJSON(data, &body); err != nil {
			return nil, err
		}
		items, err := decodeExprList(body.Items)
		if err != nil {
			return nil, err
		}
		return VectorLit{Items: items}, nil

	case "Range":
		var body struct {
			Target json.RawMessage `json:"target"`
			Low    json.RawMessage `json:"low"`
			High   json.RawMessage `json:"high"`
		}
		if err := unmarshalJSON(data, &body); err != nil {
			return nil, err
		}
		target, err := DecodeExpression(body.Target)
		if err != nil {
			return nil, err
		}
		low, err := DecodeExpression(body.Low)
		if err != nil {
			return nil, err
		}
		high, err := DecodeExpression(body.High)
		if err != nil {
			return nil, err
		}
		return RangeExpr{Target: target, Low: low, High: high}, nil

	case "In":
		var body struct {
			Target  json.RawMessage   `json:"target"`
			Set     []json.RawMessage `json:"set"`
			Negated bool              `json:"negated,omitempty"`
		}
		if err := unmarshalJSON(data, &body); err != nil {
			return nil, err
		}
		target, err := DecodeExpression(body.Target)
		if err != nil {
			return nil, err
		}
		set, err := decodeExprList(body.Set)
		if err != nil {
			return nil, err
		}
		return SetMembership{Target: target, Set: set, Negated: body.Negated}, nil

	default:
		return nil, fmt.Errorf("ir: unknown expression type %q", tag.Type)
	}
}

func decodeExprList(raws []json.RawMessage) ([]Expression, error) {
	out := make([]Expression, len(raws))
	for i, raw := range raws {
		expr, err := DecodeExpression(raw)
		if err != nil {
			return nil, err
		}
		out[i] = expr
	}
	return out, nil
}
