package output

import (
	"encoding/base64"
	"fmt"
)

type planFormatter struct{}

// Format renders the serialized plan as base64 so the bytes survive a
// terminal round-trip.
func (planFormatter) Format(r *Result) (string, error) {
	if len(r.PlanBytes) == 0 {
		return "", fmt.Errorf("result carries no plan bytes")
	}
	return base64.StdEncoding.EncodeToString(r.PlanBytes), nil
}
