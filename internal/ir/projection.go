package ir

import (
	"encoding/json"
	"fmt"
)

// Projection is a Select operator's column list entry. On the wire it is an
// untagged union: a projection decoded from a JSON object carrying sibling
// "expr" and "alias" keys is Aliased; any other expression shape is a bare
// Expr projection. Decoders try the Aliased parse first, since a bare
// expression object could theoretically carry same-named fields of its own.
type Projection struct {
	Expr Expression
	// Alias is the output column name when Aliased is true. An empty Alias
	// on an Aliased projection is invalid; that is surfaced by
	// Program.Validate(), not by decoding.
	Alias   string
	Aliased bool
}

func (p Projection) MarshalJSON() ([]byte, error) {
	expr, err := rawMessage(p.Expr)
	if err != nil {
		return nil, err
	}
	if p.Aliased {
		return marshalJSON(struct {
			Expr  json.RawMessage `json:"expr"`
			Alias string          `json:"alias"`
		}{expr, p.Alias})
	}
	return expr, nil
}

// aliasedProjectionShape is used only to detect, not necessarily to decode,
// the presence of both sibling keys.
type aliasedProjectionShape struct {
	Expr  json.RawMessage `json:"expr"`
	Alias *string         `json:"alias"`
}

func DecodeProjection(data []byte) (Projection, error) {
	var shape aliasedProjectionShape
	if err := unmarshalJSON(data, &shape); err != nil {
		return Projection{}, fmt.Errorf("ir: decoding projection: %w", err)
	}
	if shape.Expr != nil && shape.Alias != nil {
		expr, err := DecodeExpression(shape.Expr)
		if err != nil {
			return Projection{}, err
		}
		return Projection{Expr: expr, Alias: *shape.Alias, Aliased: true}, nil
	}

	expr, err := DecodeExpression(data)
	if err != nil {
		return Projection{}, err
	}
	return Projection{Expr: expr}, nil
}

// OutputName derives the projection's output column name: the alias for
// Aliased projections, the bare column name for an unqualified
// column-reference projection, and the synthetic "expr_<index>" name for
// every other bare expression.
func (p Projection) OutputName(index int) string {
	if p.Aliased {
		return p.Alias
	}
	if col, ok := p.Expr.(Column); ok {
		return col.Col.Column
	}
	return fmt.Sprintf("expr_%d", index)
}
