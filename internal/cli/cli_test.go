package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const spells = `
spell "sum" {
  piece "trick_debug" {
    x     = 4
    y     = 4
    sides = { target = "west" }
  }

  piece "operator_sum" {
    x     = 3
    y     = 4
    sides = { number1 = "top", number2 = "bottom" }
  }

  piece "constant_number" {
    x     = 3
    y     = 3
    value = 2
  }

  piece "constant_number" {
    x     = 3
    y     = 5
    value = 3
  }
}

spell "loose" {
  piece "trick_debug" {
    x = 0
    y = 0
  }
}
`

func writeSpells(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spells.hcl"), []byte(src), 0o644))
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	err := Execute(context.Background(), out, args)
	return out.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected an ExitError, got %v", err)
	return exitErr.Code
}

func TestCompileCmd(t *testing.T) {
	dir := writeSpells(t, spells)

	out, err := execute(t, "compile", dir)
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, err.Error(), "1 of 2 spells failed to compile")
	assert.Contains(t, out, "SPELL")
	assert.Contains(t, out, "COMPLEXITY")
	assert.Contains(t, out, "required parameter is disabled")
}

func TestCompileCmd_JSON(t *testing.T) {
	dir := writeSpells(t, spells)

	out, _ := execute(t, "--json", "compile", dir)
	var reports []compileReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)

	assert.Equal(t, "sum", reports[0].Spell)
	assert.Equal(t, 4, reports[0].Actions)
	assert.Empty(t, reports[0].Error)
	assert.Equal(t, "loose", reports[1].Spell)
	assert.NotEmpty(t, reports[1].Error)
}

func TestCastCmd(t *testing.T) {
	dir := writeSpells(t, spells)

	out, err := execute(t, "cast", "--spell", "sum", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "[sum] 5\n")
	assert.Contains(t, out, "Completed")
}

func TestCastCmd_UnknownSpell(t *testing.T) {
	dir := writeSpells(t, spells)

	_, err := execute(t, "cast", "--spell", "missing", dir)
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, err.Error(), `spell "missing" not found`)
}

func TestCastCmd_Limits(t *testing.T) {
	dir := writeSpells(t, spells)

	_, err := execute(t, "--limits", "bogus", "cast", dir)
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(t, err))
}

func TestPiecesCmd(t *testing.T) {
	out, err := execute(t, "pieces")
	require.NoError(t, err)
	for _, key := range []string{"constant_number", "operator_sum", "trick_debug", "error_suppressor", "connector"} {
		assert.Contains(t, out, key)
	}
	assert.Contains(t, out, "target,number?")
}

func TestFmtCmd(t *testing.T) {
	dir := writeSpells(t, spells)

	out, err := execute(t, "fmt", dir)
	require.NoError(t, err)
	assert.Contains(t, out, `spell "sum"`)
	assert.Contains(t, out, `piece "operator_sum"`)

	// The formatted output loads back to the same spells.
	again, err := execute(t, "fmt", writeSpells(t, out))
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown command", []string{"conjure"}},
		{"unknown flag", []string{"compile", "--nope", "x"}},
		{"missing path", []string{"compile"}},
		{"bad log level", []string{"--log-level", "loud", "pieces"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.args...)
			require.Error(t, err)
			assert.Equal(t, 2, exitCode(t, err))
		})
	}
}

func TestOutput_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewOutput(&buf, false).Table([]string{"A", "LONG"}, [][]string{{"xyz", "1"}}))
	assert.Equal(t, "A    LONG\n-    ----\nxyz  1\n", buf.String())
}
