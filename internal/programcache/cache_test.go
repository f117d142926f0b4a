package programcache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/specialistvlad/spellgrid/internal/compiler"
	"github.com/specialistvlad/spellgrid/internal/model"
	"github.com/specialistvlad/spellgrid/internal/program"
	"github.com/specialistvlad/spellgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func spell(t *testing.T, name string, value float64) *model.Spell {
	t.Helper()
	s := model.NewSpell(name)
	trick, _ := testutil.Trick("trick", testutil.Required("in", model.KindNumber))
	c, _ := testutil.Constant("constant", value)
	c.Attrs = map[string]cty.Value{"value": cty.NumberFloatVal(value)}
	testutil.Place(t, s.Grid, trick, 4, 4, testutil.Sides{"in": model.SideLeft})
	testutil.Place(t, s.Grid, c, 3, 4, nil)
	return s
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint(spell(t, "a", 1))
	assert.Equal(t, a, Fingerprint(spell(t, "a", 1)), "same content, same fingerprint")
	assert.NotEqual(t, a, Fingerprint(spell(t, "b", 1)), "name is part of the content")
	assert.NotEqual(t, a, Fingerprint(spell(t, "a", 2)), "attributes are part of the content")

	moved := spell(t, "a", 1)
	require.NoError(t, moved.Grid.Place(moved.Grid.Remove(3, 4), 3, 5))
	assert.NotEqual(t, a, Fingerprint(moved), "positions are part of the content")
}

func TestCache_LRU(t *testing.T) {
	c := New(2)
	p1, p2, p3 := &program.Program{}, &program.Program{}, &program.Program{}

	c.Put(1, p1)
	c.Put(2, p2)
	_, ok := c.Get(1) // 1 is now the most recently used
	require.True(t, ok)
	c.Put(3, p3)

	assert.Equal(t, 2, c.Len())
	_, ok = c.Get(2)
	assert.False(t, ok, "least recently used program is evicted")
	got, ok := c.Get(1)
	require.True(t, ok)
	assert.Same(t, p1, got)

	c.Purge()
	assert.Zero(t, c.Len())
}

func TestCache_PutReplaces(t *testing.T) {
	c := New(2)
	old, replacement, other := &program.Program{}, &program.Program{}, &program.Program{}

	c.Put(1, old)
	c.Put(2, other)
	c.Put(1, replacement)
	assert.Equal(t, 2, c.Len(), "replacing does not grow the cache")

	got, ok := c.Get(1)
	require.True(t, ok)
	assert.Same(t, replacement, got)

	// Replacing 1 made 2 the least recently used entry.
	c.Put(3, &program.Program{})
	_, ok = c.Get(2)
	assert.False(t, ok)
}

func TestNew_DefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, New(0).capacity)
}

func TestGetOrCompile(t *testing.T) {
	c := New(4)
	var compiles atomic.Int32
	compile := func(ctx context.Context, s *model.Spell) (*program.Program, error) {
		compiles.Add(1)
		return compiler.Compile(ctx, s)
	}

	first, hit, err := c.GetOrCompile(context.Background(), spell(t, "a", 1), compile)
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := c.GetOrCompile(context.Background(), spell(t, "a", 1), compile)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Same(t, first, second)
	assert.Equal(t, int32(1), compiles.Load())

	t.Run("errors are not cached", func(t *testing.T) {
		boom := errors.New("boom")
		failing := func(context.Context, *model.Spell) (*program.Program, error) { return nil, boom }
		s := spell(t, "broken", 1)
		_, _, err := c.GetOrCompile(context.Background(), s, failing)
		require.ErrorIs(t, err, boom)
		_, ok := c.Get(Fingerprint(s))
		assert.False(t, ok)
	})
}

func TestGetOrCompile_Concurrent(t *testing.T) {
	c := New(4)
	var compiles atomic.Int32
	compile := func(ctx context.Context, s *model.Spell) (*program.Program, error) {
		compiles.Add(1)
		return compiler.Compile(ctx, s)
	}
	s := spell(t, "shared", 1)

	const workers = 16
	var wg sync.WaitGroup
	progs := make([]*program.Program, workers)
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			prog, _, err := c.GetOrCompile(context.Background(), s, compile)
			assert.NoError(t, err)
			progs[i] = prog
		}(i)
	}
	wg.Wait()

	for _, p := range progs {
		assert.Same(t, progs[0], p)
	}
	assert.LessOrEqual(t, compiles.Load(), int32(workers))
	assert.Equal(t, 1, c.Len())
}
