package output

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleResult() *Result {
	return &Result{
		Fingerprint: "abc123",
		IRJSON:      []byte(`{"pipeline":{"source":{"type":"Table","name":"users"}}}`),
		SQL:         "SELECT * FROM users",
		PlanBytes:   []byte{0x0a, 0x02, 0x08, 0x01},
	}
}

func TestNewFormatterSelection(t *testing.T) {
	for _, name := range []string{"", "json", "sql", "plan", "summary", " SQL "} {
		_, err := NewFormatter(name)
		require.NoError(t, err, name)
	}

	_, err := NewFormatter("xml")
	require.Error(t, err)
}

func TestJSONFormatterIndents(t *testing.T) {
	f, err := NewFormatter("json")
	require.NoError(t, err)

	out, err := f.Format(sampleResult())
	require.NoError(t, err)
	require.Contains(t, out, "\n  \"pipeline\"")
}

func TestSQLFormatter(t *testing.T) {
	f, err := NewFormatter("sql")
	require.NoError(t, err)

	out, err := f.Format(sampleResult())
	require.NoError(t, err)
	require.Equal(t, "SELECT * FROM users", out)

	_, err = f.Format(&Result{})
	require.Error(t, err)
}

func TestPlanFormatterBase64(t *testing.T) {
	f, err := NewFormatter("plan")
	require.NoError(t, err)

	out, err := f.Format(sampleResult())
	require.NoError(t, err)
	require.Equal(t, "CgIIAQ==", out)
}

func TestSummaryFormatter(t *testing.T) {
	f, err := NewFormatter("summary")
	require.NoError(t, err)

	out, err := f.Format(sampleResult())
	require.NoError(t, err)
	require.Contains(t, out, "fingerprint: abc123")
	require.Contains(t, out, "sql: SELECT * FROM users")
	require.Contains(t, out, "plan: 4 bytes")
}
