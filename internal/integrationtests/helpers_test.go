package integration_tests

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/specialistvlad/spellgrid/internal/app"
	"github.com/specialistvlad/spellgrid/internal/executor"
	"github.com/specialistvlad/spellgrid/internal/hclspell"
	"github.com/specialistvlad/spellgrid/internal/model"
	"github.com/stretchr/testify/require"
)

// console collects the lines printed by debug tricks.
type console struct {
	mu    sync.Mutex
	lines []string
}

func (c *console) Print(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, line)
}

func (c *console) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

// newTestApp builds an app with the core modules and quiet logging.
func newTestApp(t *testing.T, cfg app.Config) *app.App {
	t.Helper()
	validated, err := app.NewConfig(cfg)
	require.NoError(t, err)
	return app.NewApp(io.Discard, validated)
}

// parseSpell parses a single spell from src using the app's pieces.
func parseSpell(t *testing.T, a *app.App, src string) *model.Spell {
	t.Helper()
	spells, err := hclspell.NewLoader(a.Registry()).Parse(context.Background(), []byte(src), "test.hcl")
	require.NoError(t, err)
	require.Len(t, spells, 1)
	return spells[0]
}

// castSpell parses and casts src, returning the run and the printed lines.
func castSpell(t *testing.T, src string) (*executor.Run, []string, error) {
	t.Helper()
	a := newTestApp(t, app.Config{})
	c := &console{}
	run, err := a.Cast(context.Background(), parseSpell(t, a, src), c)
	return run, c.Lines(), err
}
