package output

import (
	"fmt"
	"strings"
)

type summaryFormatter struct{}

// Format renders a short human-readable account of what was produced.
func (summaryFormatter) Format(r *Result) (string, error) {
	var sb strings.Builder
	if r.Fingerprint != "" {
		fmt.Fprintf(&sb, "fingerprint: %s\n", r.Fingerprint)
	}
	if len(r.IRJSON) > 0 {
		fmt.Fprintf(&sb, "ir: %d bytes\n", len(r.IRJSON))
	}
	if r.SQL != "" {
		fmt.Fprintf(&sb, "sql: %s\n", r.SQL)
	}
	if len(r.PlanBytes) > 0 {
		fmt.Fprintf(&sb, "plan: %d bytes\n", len(r.PlanBytes))
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("result carries no artifacts")
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
