package ir

import "encoding/json"

// Pipeline is a Source plus an ordered sequence of Operators. Order is
// semantically significant: each operator consumes the previous stage's
// schema and produces the next. An empty operator list is a pure source scan.
type Pipeline struct {
	Source Source
	Ops    []Operator
}

type pipelineDoc struct {
	Source json.RawMessage   `json:"source"`
	Ops    []json.RawMessage `json:"ops,omitempty"`
}

func (p Pipeline) toJSON() (json.RawMessage, error) {
	src, err := rawMessage(p.Source)
	if err != nil {
		return nil, err
	}
	ops := make([]json.RawMessage, len(p.Ops))
	for i, op := range p.Ops {
		raw, err := rawMessage(op)
		if err != nil {
			return nil, err
		}
		ops[i] = raw
	}
	return rawMessage(pipelineDoc{Source: src, Ops: ops})
}

func (p Pipeline) MarshalJSON() ([]byte, error) {
	return p.toJSON()
}

func decodePipelineDoc(data []byte) (Pipeline, error) {
	var doc pipelineDoc
	if err := unmarshalJSON(data, &doc); err != nil {
		return Pipeline{}, err
	}
	source, err := DecodeSource(doc.Source)
	if err != nil {
		return Pipeline{}, err
	}
	ops := make([]Operator, len(doc.Ops))
	for i, raw := range doc.Ops {
		op, err := DecodeOperator(raw)
		if err != nil {
			return Pipeline{}, err
		}
		ops[i] = op
	}
	return Pipeline{Source: source, Ops: ops}, nil
}

// DecodePipeline decodes a standalone pipeline document (no pragma/lets
// envelope): {"source": ..., "ops": [...]}.
func DecodePipeline(data []byte) (Pipeline, error) {
	return decodePipelineDoc(data)
}
