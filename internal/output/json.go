package output

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type jsonFormatter struct{}

// Format pretty-prints the result's canonical IR JSON document.
func (jsonFormatter) Format(r *Result) (string, error) {
	if len(r.IRJSON) == 0 {
		return "", fmt.Errorf("result carries no IR document")
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, r.IRJSON, "", "  "); err != nil {
		return "", fmt.Errorf("formatting IR JSON: %w", err)
	}
	return buf.String(), nil
}
