package testutil

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertLogContains checks that captured log output mentions every fragment.
func AssertLogContains(t *testing.T, logs *SafeBuffer, fragments ...string) {
	t.Helper()
	out := logs.String()
	for _, f := range fragments {
		require.True(t, strings.Contains(out, f), "expected %q in log output:\n%s", f, out)
	}
}

// ReadString reads a whole file, failing the test on error.
func ReadString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
