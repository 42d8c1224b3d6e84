// Package output provides a set of formatters for compilation results. It
// is extendable and for now provides four formats: IR JSON, SQL, plan
// (base64 protobuf bytes), and a human-readable summary.
package output

import (
	"fmt"
	"strings"
)

// Format is an enum type representing the available output formats.
type Format string

const (
	FormatJSON    Format = "json"
	FormatSQL     Format = "sql"
	FormatPlan    Format = "plan"
	FormatSummary Format = "summary"
)

// Result is one compiled query: whichever artifacts the invoked pipeline
// produced are populated, the rest stay zero.
type Result struct {
	Fingerprint string
	IRJSON      []byte
	SQL         string
	PlanBytes   []byte
}

// Formatter renders a compilation result to its output string.
type Formatter interface {
	Format(*Result) (string, error)
}

// NewFormatter creates a new Formatter instance based on the given name.
// If no format is specified, defaults to JSON.
func NewFormatter(name string) (Formatter, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	switch format {
	case "", FormatJSON:
		return jsonFormatter{}, nil
	case FormatSQL:
		return sqlFormatter{}, nil
	case FormatPlan:
		return planFormatter{}, nil
	case FormatSummary:
		return summaryFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s; use 'json', 'sql', 'plan', or 'summary'", name)
	}
}
