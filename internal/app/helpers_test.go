package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/spellgrid/internal/registry"
	"github.com/specialistvlad/spellgrid/internal/testutil"
	"github.com/stretchr/testify/require"
)

// setupAppTest creates a new app instance for system testing, with debug
// logging captured in the returned buffer.
func setupAppTest(t *testing.T, cfg *Config, modules ...registry.Module) (*App, *testutil.SafeBuffer) {
	t.Helper()

	logBuffer := &testutil.SafeBuffer{}
	cfg.LogLevel = "debug"
	validated, err := NewConfig(*cfg)
	require.NoError(t, err)
	testApp := NewApp(logBuffer, validated, modules...)

	t.Cleanup(func() {
		if os.Getenv("SPELLGRID_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})
	return testApp, logBuffer
}

// writeSpell writes src to a temporary .hcl file and returns its path.
func writeSpell(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spell.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}
