package ir

import (
	"encoding/json"
	"fmt"
)

// Operator is the tagged-variant interface implemented by every pipeline
// stage. Core operators (Select, Filter, Join, GroupBy, Sort, Take,
// Distinct) are fully modeled; everything else round-trips as RawOperator
// so a document carrying a forward-compatible operator still decodes
// losslessly even though no lowering accepts it.
type Operator interface {
	OpName() string
}

// JoinType enumerates the supported join kinds.
type JoinType string

const (
	JoinInner JoinType = "Inner"
	JoinLeft  JoinType = "Left"
	JoinRight JoinType = "Right"
	JoinFull  JoinType = "Full"
	JoinSemi  JoinType = "Semi"
	JoinAnti  JoinType = "Anti"
	JoinCross JoinType = "Cross"
)

// SortKey is one key of a Sort operator.
type SortKey struct {
	Expr Expression
	Desc bool
}

// AggCall is an aggregate-function invocation inside GroupBy.Aggs. A
// FuncCall in the surface AST lowers to this shape when it appears as a
// group-by aggregate rather than a plain projection expression.
type AggCall struct {
	Func string
	Args []Expression
}

func (a AggCall) MarshalJSON() ([]byte, error) {
	args, err := marshalExprList(a.Args)
	if err != nil {
		return nil, err
	}
	return marshalJSON(struct {
		Func string            `json:"func"`
		Args []json.RawMessage `json:"args"`
	}{a.Func, args})
}

func DecodeAggCall(data []byte) (AggCall, error) {
	var body struct {
		Func string            `json:"func"`
		Args []json.RawMessage `json:"args"`
	}
	if err := unmarshalJSON(data, &body); err != nil {
		return AggCall{}, err
	}
	args, err := decodeExprList(body.Args)
	if err != nil {
		return AggCall{}, err
	}
	return AggCall{Func: body.Func, Args: args}, nil
}

// Select projects and/or computes columns, replacing the current schema
// with its projection list.
type Select struct {
	Projections []Projection
}

func (Select) OpName() string { return "Select" }

func (s Select) MarshalJSON() ([]byte, error) {
	return marshalJSON(struct {
		Op          string       `json:"op"`
		Projections []Projection `json:"projections"`
	}{"Select", s.Projections})
}

// Filter is a row predicate. It does not change the schema.
type Filter struct {
	Condition Expression
}

func (Filter) OpName() string { return "Filter" }

func (f Filter) MarshalJSON() ([]byte, error) {
	cond, err := rawMessage(f.Condition)
	if err != nil {
		return nil, err
	}
	return marshalJSON(struct {
		Op        string          `json:"op"`
		Condition json.RawMessage `json:"condition"`
	}{"Filter", cond})
}

// Join concatenates the current schema with another source's columns,
// filtered by an ON condition.
type Join struct {
	Source   Source
	On       Expression
	JoinType JoinType // empty means Inner
}

func (Join) OpName() string { return "Join" }

func (j Join) MarshalJSON() ([]byte, error) {
	src, err := rawMessage(j.Source)
	if err != nil {
		return nil, err
	}
	on, err := rawMessage(j.On)
	if err != nil {
		return nil, err
	}
	return marshalJSON(struct {
		Op       string          `json:"op"`
		Source   json.RawMessage `json:"source"`
		On       json.RawMessage `json:"on"`
		JoinType JoinType        `json:"join_type,omitempty"`
	}{"Join", src, on, j.JoinType})
}

// EffectiveJoinType returns j.JoinType, defaulting to Inner when unset.
func (j Join) EffectiveJoinType() JoinType {
	if j.JoinType == "" {
		return JoinInner
	}
	return j.JoinType
}

// GroupBy aggregates rows. The output schema is the grouping keys followed
// by the aggregate aliases, in the order the translator/lowering chooses
// (see internal/planner for the chosen deterministic order).
type GroupBy struct {
	Keys []Expression
	Aggs map[string]AggCall
}

func (GroupBy) OpName() string { return "GroupBy" }

func (g GroupBy) MarshalJSON() ([]byte, error) {
	keys, err := marshalExprList(g.Keys)
	if err != nil {
		return nil, err
	}
	return marshalJSON(struct {
		Op   string            `json:"op"`
		Keys []json.RawMessage `json:"keys"`
		Aggs map[string]AggCall `json:"aggs"`
	}{"GroupBy", keys, g.Aggs})
}

// Sort orders rows by one or more keys.
type Sort struct {
	Keys []SortKey
}

func (Sort) OpName() string { return "Sort" }

type sortKeyJSON struct {
	Expr json.RawMessage `json:"expr"`
	Desc bool            `json:"desc,omitempty"`
}

func (s Sort) MarshalJSON() ([]byte, error) {
	keys := make([]sortKeyJSON, len(s.Keys))
	for i, k := range s.Keys {
		raw, err := rawMessage(k.Expr)
		if err != nil {
			return nil, err
		}
		keys[i] = sortKeyJSON{Expr: raw, Desc: k.Desc}
	}
	return marshalJSON(struct {
		Op   string        `json:"op"`
		Keys []sortKeyJSON `json:"keys"`
	}{"Sort", keys})
}

// Take caps the number of output rows.
type Take struct {
	Limit int64
}

func (Take) OpName() string { return "Take" }

func (t Take) MarshalJSON() ([]byte, error) {
	return marshalJSON(struct {
		Op    string `json:"op"`
		Limit int64  `json:"limit"`
	}{"Take", t.Limit})
}

// Distinct deduplicates rows across every current column.
type Distinct struct{}

func (Distinct) OpName() string { return "Distinct" }

func (Distinct) MarshalJSON() ([]byte, error) {
	return marshalJSON(struct {
		Op string `json:"op"`
	}{"Distinct"})
}

// RawOperator preserves an operator this implementation does not lower:
// the reserved forward-compatible set (Window, Union, Except, Intersect,
// Map, Expand, Resample, Agg, Knn, Rank, Neighbors, TopK, Sample, Assert,
// Explain) and any operator name this build does not yet recognize. It
// round-trips losslessly but is rejected by every lowering with
// TranslateError{Kind: UnsupportedOperator} / ExecutionError{Kind: Substrait}.
type RawOperator struct {
	Op   string
	Body json.RawMessage
}

func (r RawOperator) OpName() string { return r.Op }

func (r RawOperator) MarshalJSON() ([]byte, error) {
	return r.Body, nil
}

var coreOperators = map[string]bool{
	"Select": true, "Filter": true, "Join": true, "GroupBy": true,
	"Sort": true, "Take": true, "Distinct": true,
}

// reservedOperators lists the forward-compatible operator names accepted
// in JSON without lowering.
var reservedOperators = map[string]bool{
	"Window": true, "Union": true, "Except": true, "Intersect": true,
	"Map": true, "Expand": true, "Resample": true, "Agg": true,
	"Knn": true, "Rank": true, "Neighbors": true, "TopK": true,
	"Sample": true, "Assert": true, "Explain": true,
}

type opTypeTag struct {
	Op string `json:"op"`
}

// DecodeOperator dispatches on the "op" discriminator.
func DecodeOperator(data []byte) (Operator, error) {
	var tag opTypeTag
	if err := unmarshalJSON(data, &tag); err != nil {
		return nil, fmt.Errorf("ir: decoding operator tag: %w", err)
	}

	switch tag.Op {
	case "Select":
		var body struct {
			Projections []json.RawMessage `json:"projections"`
		}
		if err := unmarshalJSON(data, &body); err != nil {
			return nil, err
		}
		projs := make([]Projection, len(body.Projections))
		for i, raw := range body.Projections {
			p, err := DecodeProjection(raw)
			if err != nil {
				return nil, err
			}
			projs[i] = p
		}
		return Select{Projections: projs}, nil

	case "Filter":
		var body struct {
			Condition json.RawMessage `json:"condition"`
		}
		if err := unmarshalJSON(data, &body); err != nil {
			return nil, err
		}
		cond, err := DecodeExpression(body.Condition)
		if err != nil {
			return nil, err
		}
		return Filter{Condition: cond}, nil

	case "Join":
		var body struct {
			Source   json.RawMessage `json:"source"`
			On       json.RawMessage `json:"on"`
			JoinType JoinType        `json:"join_type,omitempty"`
		}
		if err := unmarshalJSON(data, &body); err != nil {
			return nil, err
		}
		src, err := DecodeSource(body.Source)
		if err != nil {
			return nil, err
		}
		on, err := DecodeExpression(body.On)
		if err != nil {
			return nil, err
		}
		return Join{Source: src, On: on, JoinType: body.JoinType}, nil

	case "GroupBy":
		var body struct {
			Keys []json.RawMessage         `json:"keys"`
			Aggs map[string]json.RawMessage `json:"aggs"`
		}
		if err := unmarshalJSON(data, &body); err != nil {
			return nil, err
		}
		keys, err := decodeExprList(body.Keys)
		if err != nil {
			return nil, err
		}
		aggs := make(map[string]AggCall, len(body.Aggs))
		for name, raw := range body.Aggs {
			agg, err := DecodeAggCall(raw)
			if err != nil {
				return nil, err
			}
			aggs[name] = agg
		}
		return GroupBy{Keys: keys, Aggs: aggs}, nil

	case "Sort":
		var body struct {
			Keys []sortKeyJSON `json:"keys"`
		}
		if err := unmarshalJSON(data, &body); err != nil {
			return nil, err
		}
		keys := make([]SortKey, len(body.Keys))
		for i, k := range body.Keys {
			expr, err := DecodeExpression(k.Expr)
			if err != nil {
				return nil, err
			}
			keys[i] = SortKey{Expr: expr, Desc: k.Desc}
		}
		return Sort{Keys: keys}, nil

	case "Take":
		var body struct {
			Limit int64 `json:"limit"`
		}
		if err := unmarshalJSON(data, &body); err != nil {
			return nil, err
		}
		return Take{Limit: body.Limit}, nil

	case "Distinct":
		return Distinct{}, nil

	default:
		return RawOperator{Op: tag.Op, Body: append(json.RawMessage(nil), data...)}, nil
	}
}

// IsReserved reports whether op is one of the known forward-compatible
// operators, as opposed to an entirely unrecognized name.
func IsReserved(op string) bool {
	return reservedOperators[op]
}
