package output

import "fmt"

type sqlFormatter struct{}

func (sqlFormatter) Format(r *Result) (string, error) {
	if r.SQL == "" {
		return "", fmt.Errorf("result carries no SQL rendering")
	}
	return r.SQL, nil
}
