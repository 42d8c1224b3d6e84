package ir

import (
	"encoding/json"
	"fmt"
)

// Source is the tagged-variant interface for a pipeline's data source.
type Source interface {
	SourceType() string
}

// TableSource scans a named table, optionally bound to an alias used by
// later Join/column-reference resolution.
type TableSource struct {
	Name  string
	Alias string
}

func (TableSource) SourceType() string { return "Table" }

func (t TableSource) MarshalJSON() ([]byte, error) {
	return marshalJSON(struct {
		Type  string `json:"type"`
		Name  string `json:"name"`
		Alias string `json:"alias,omitempty"`
	}{"Table", t.Name, t.Alias})
}

// EffectiveAlias returns the alias if set, else the table name.
func (t TableSource) EffectiveAlias() string {
	if t.Alias != "" {
		return t.Alias
	}
	return t.Name
}

// GraphSource scans a named graph. Reserved for forward compatibility; no
// lowering in this implementation accepts it.
type GraphSource struct {
	GraphName string
	Alias     string
}

func (GraphSource) SourceType() string { return "Graph" }

func (g GraphSource) MarshalJSON() ([]byte, error) {
	return marshalJSON(struct {
		Type      string `json:"type"`
		GraphName string `json:"graph_name"`
		Alias     string `json:"alias,omitempty"`
	}{"Graph", g.GraphName, g.Alias})
}

// SubPipelineSource uses a nested pipeline as a derived relation.
type SubPipelineSource struct {
	Pipeline Pipeline
	Alias    string
}

func (SubPipelineSource) SourceType() string { return "SubPipeline" }

func (s SubPipelineSource) MarshalJSON() ([]byte, error) {
	pipeline, err := s.Pipeline.toJSON()
	if err != nil {
		return nil, err
	}
	return marshalJSON(struct {
		Type     string          `json:"type"`
		Pipeline json.RawMessage `json:"pipeline"`
		Alias    string          `json:"alias,omitempty"`
	}{"SubPipeline", pipeline, s.Alias})
}

type sourceTypeTag struct {
	Type string `json:"type"`
}

// DecodeSource dispatches on the "type" discriminator.
func DecodeSource(data []byte) (Source, error) {
	var tag sourceTypeTag
	if err := unmarshalJSON(data, &tag); err != nil {
		return nil, fmt.Errorf("ir: decoding source tag: %w", err)
	}

	switch tag.Type {
	case "Table":
		var body struct {
			Name  string `json:"name"`
			Alias string `json:"alias,omitempty"`
		}
		if err := unmarshalJSON(data, &body); err != nil {
			return nil, err
		}
		return TableSource{Name: body.Name, Alias: body.Alias}, nil

	case "Graph":
		var body struct {
			GraphName string `json:"graph_name"`
			Alias     string `json:"alias,omitempty"`
		}
		if err := unmarshalJSON(data, &body); err != nil {
			return nil, err
		}
		return GraphSource{GraphName: body.GraphName, Alias: body.Alias}, nil

	case "SubPipeline":
		var body struct {
			Pipeline json.RawMessage `json:"pipeline"`
			Alias    string          `json:"alias,omitempty"`
		}
		if err := unmarshalJSON(data, &body); err != nil {
			return nil, err
		}
		pipeline, err := decodePipelineDoc(body.Pipeline)
		if err != nil {
			return nil, err
		}
		return SubPipelineSource{Pipeline: pipeline, Alias: body.Alias}, nil

	default:
		return nil, fmt.Errorf("ir: unknown source type %q", tag.Type)
	}
}
