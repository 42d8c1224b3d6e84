package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Pragma holds top-level program options as a name->value mapping. Map
// iteration order does not participate in the fingerprint contract beyond
// the canonicalization this package chooses: encoding/json sorts map keys
// on Marshal, so the wire form is always sorted-keys.
type Pragma struct {
	Options map[string]Value
}

// LetBinding is a named, reusable pipeline. Lexical resolution of let
// references inside a terminal pipeline is out of scope for the core; a
// Column/Table reference to a let name is treated as a passthrough
// reference and resolved by whatever front end assembled the program.
type LetBinding struct {
	Name     string
	Pipeline Pipeline
}

// Program is the top-level compilation unit: an optional Pragma, zero or
// more LetBindings, and exactly one terminal Pipeline.
type Program struct {
	Pragma   *Pragma
	Lets     []LetBinding
	Pipeline Pipeline
}

type letBindingDoc struct {
	Name     string          `json:"name"`
	Pipeline json.RawMessage `json:"pipeline"`
}

type programDoc struct {
	Pragma   map[string]Value `json:"pragma,omitempty"`
	Lets     []letBindingDoc   `json:"lets,omitempty"`
	Pipeline json.RawMessage   `json:"pipeline"`
}

// ToJSON serializes the program to its canonical JSON document:
// {"pragma"?, "lets"?, "pipeline": {...}}.
func (p Program) ToJSON() ([]byte, error) {
	doc := programDoc{}
	if p.Pragma != nil {
		doc.Pragma = p.Pragma.Options
	}
	for _, let := range p.Lets {
		pipelineRaw, err := let.Pipeline.toJSON()
		if err != nil {
			return nil, err
		}
		doc.Lets = append(doc.Lets, letBindingDoc{Name: let.Name, Pipeline: pipelineRaw})
	}
	pipelineRaw, err := p.Pipeline.toJSON()
	if err != nil {
		return nil, err
	}
	doc.Pipeline = pipelineRaw
	return json.Marshal(doc)
}

// envelope is used to detect whether the document wraps its pipeline under
// a top-level "pipeline" key, or whether the document *is* the pipeline
// (bare {"source":..., "ops":[...]}).
type envelope struct {
	Pragma   map[string]Value `json:"pragma"`
	Lets     []letBindingDoc   `json:"lets"`
	Pipeline json.RawMessage   `json:"pipeline"`
}

// ParseJSON accepts either a full program document wrapped under
// "pipeline", or a bare pipeline document; producers emit both shapes, so
// both are tried.
func ParseJSON(data []byte) (Program, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Program{}, fmt.Errorf("ir: decoding program envelope: %w", err)
	}

	if env.Pipeline != nil {
		pipeline, err := decodePipelineDoc(env.Pipeline)
		if err != nil {
			return Program{}, err
		}
		prog := Program{Pipeline: pipeline}
		if env.Pragma != nil {
			prog.Pragma = &Pragma{Options: env.Pragma}
		}
		for _, l := range env.Lets {
			letPipeline, err := decodePipelineDoc(l.Pipeline)
			if err != nil {
				return Program{}, err
			}
			prog.Lets = append(prog.Lets, LetBinding{Name: l.Name, Pipeline: letPipeline})
		}
		return prog, nil
	}

	// No "pipeline" key: the document itself must be a bare pipeline.
	pipeline, err := decodePipelineDoc(data)
	if err != nil {
		return Program{}, fmt.Errorf("ir: document is neither a wrapped program nor a bare pipeline: %w", err)
	}
	return Program{Pipeline: pipeline}, nil
}

// Fingerprint returns the hex SHA-256 digest of the program's canonical
// JSON serialization. It is stable across serialize/parse cycles: parsing
// Fingerprint's own ToJSON output and re-fingerprinting yields the same value.
func (p Program) Fingerprint() (string, error) {
	data, err := p.ToJSON()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
