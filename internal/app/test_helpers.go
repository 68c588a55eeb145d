package app

import (
	"bytes"
	"os"
	"testing"

	"github.com/vk/pbxproj/internal/config"
	"github.com/vk/pbxproj/internal/testutil"
)

// SetupAppTest creates an App with debug logging captured in a buffer and
// results captured in another.
func SetupAppTest(t *testing.T, cfg *config.Config) (*App, *bytes.Buffer, *testutil.SafeBuffer) {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	cfg.LogLevel = "debug"

	out := &bytes.Buffer{}
	logs := &testutil.SafeBuffer{}
	testApp := NewApp(out, logs, cfg)

	t.Cleanup(func() {
		if os.Getenv("PBXPROJ_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return testApp, out, logs
}
