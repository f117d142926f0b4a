package program

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/spellgrid/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(actions []*Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.Piece.Key
	}
	return out
}

func newPiece(key string) *model.Piece {
	return model.NewPiece(key, model.PieceConstant, model.KindNumber, model.NopBehavior{})
}

func TestSchedule(t *testing.T) {
	t.Run("appends new pieces in order", func(t *testing.T) {
		p := New(model.NewSpell("s"))
		a, b, c := newPiece("a"), newPiece("b"), newPiece("c")

		for _, piece := range []*model.Piece{a, b, c} {
			_, existed := p.Schedule(piece)
			assert.False(t, existed)
		}
		assert.Empty(t, cmp.Diff([]string{"a", "b", "c"}, keys(p.Actions())))
		assert.Equal(t, 3, p.Len())
	})

	t.Run("moves existing action to the end", func(t *testing.T) {
		p := New(model.NewSpell("s"))
		a, b, c := newPiece("a"), newPiece("b"), newPiece("c")
		p.Schedule(a)
		p.Schedule(b)
		p.Schedule(c)

		first, _ := p.Action(a)
		moved, existed := p.Schedule(a)
		require.True(t, existed)
		assert.Same(t, first, moved)
		assert.Empty(t, cmp.Diff([]string{"b", "c", "a"}, keys(p.Actions())))

		p.Schedule(b)
		assert.Empty(t, cmp.Diff([]string{"c", "a", "b"}, keys(p.Actions())))
		assert.Equal(t, 3, p.Len())
	})

	t.Run("execution order is the reverse of build order", func(t *testing.T) {
		p := New(model.NewSpell("s"))
		p.Schedule(newPiece("trick"))
		p.Schedule(newPiece("operator"))
		p.Schedule(newPiece("constant"))

		assert.Empty(t, cmp.Diff([]string{"constant", "operator", "trick"}, keys(p.ExecutionOrder())))
	})
}

func TestGuard(t *testing.T) {
	p := New(model.NewSpell("s"))
	x, y := newPiece("x"), newPiece("y")
	h := model.NewPiece("catch", model.PieceErrorHandler, model.KindAny, model.NopBehavior{})

	p.Guard(x, h)
	p.Guard(y, h)

	hx, ok := p.Handler(x)
	require.True(t, ok)
	hy, ok := p.Handler(y)
	require.True(t, ok)
	assert.Same(t, hx, hy)
	assert.Same(t, h, hx.Piece)
	assert.Equal(t, 2, p.Handlers())

	_, ok = p.Handler(h)
	assert.False(t, ok)
}

type costly struct{ model.NopBehavior }

func (costly) AddToMetadata(_ *model.Piece, meta *model.Metadata) error {
	return meta.Add(model.StatCost, 5)
}

func TestMetadata(t *testing.T) {
	p := New(model.NewSpell("s"))
	piece := model.NewPiece("burn", model.PieceTrick, model.KindNone, costly{})
	require.NoError(t, p.Contribute(piece))
	require.NoError(t, p.Contribute(piece))
	assert.Equal(t, 10, p.Stat(model.StatCost))

	meta := p.Metadata()
	require.NoError(t, meta.Add(model.StatCost, 100))
	assert.Equal(t, 110, meta.Stat(model.StatCost))
	assert.Equal(t, 10, p.Stat(model.StatCost), "copies do not reach the program")
	assert.Equal(t, 10, p.Metadata().Stat(model.StatCost))
}
