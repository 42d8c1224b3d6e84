package ir

import "encoding/json"

// marshalJSON and unmarshalJSON centralize the JSON codec used across the
// IR so every node type serializes with the same canonical settings
// (stdlib json.Marshal already sorts map keys, which is what gives the
// Pragma.options / GroupBy.aggs canonicalization the fingerprint contract
// requires).
func marshalJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

func unmarshalJSON(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func rawMessage(v any) (json.RawMessage, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}
