package hclspell

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/spellgrid/internal/compiler"
	"github.com/specialistvlad/spellgrid/internal/executor"
	"github.com/specialistvlad/spellgrid/internal/model"
	"github.com/specialistvlad/spellgrid/internal/registry"
	"github.com/specialistvlad/spellgrid/internal/testutil"
	"github.com/specialistvlad/spellgrid/modules/catch"
	"github.com/specialistvlad/spellgrid/modules/connector"
	"github.com/specialistvlad/spellgrid/modules/constant"
	"github.com/specialistvlad/spellgrid/modules/operator"
	"github.com/specialistvlad/spellgrid/modules/trick"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sumSpell = `
spell "sum" {
  piece "trick_debug" {
    x       = 4
    y       = 4
    comment = "prints the total"
    sides   = { target = "west" }
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
    value = "0.5"
  }
}
`

func newLoader(t *testing.T) *Loader {
	r := testutil.NewRegistry(t, &constant.Module{}, &operator.Module{}, &trick.Module{}, &catch.Module{}, &connector.Module{})
	return NewLoader(r)
}

// cellView is a comparable summary of a placed piece.
type cellView struct {
	Key     string
	X, Y    int
	Comment string
	Sides   map[string]string
	Value   string
}

func view(s *model.Spell) []cellView {
	var out []cellView
	for _, p := range s.Grid.Pieces(nil) {
		v := cellView{Key: p.Key, X: p.X, Y: p.Y, Comment: p.Comment, Sides: map[string]string{}}
		for _, param := range p.Params() {
			if side := p.Side(param); side.IsEnabled() {
				v.Sides[param.Name] = side.String()
			}
		}
		if val, ok := p.Attr("value"); ok {
			v.Value = val.GoString()
		}
		out = append(out, v)
	}
	return out
}

func TestParse(t *testing.T) {
	l := newLoader(t)
	spells, err := l.Parse(context.Background(), []byte(sumSpell), "sum.hcl")
	require.NoError(t, err)
	require.Len(t, spells, 1)

	s := spells[0]
	assert.Equal(t, "sum", s.Name)
	assert.Equal(t, 4, s.Grid.Count())

	debug := s.Grid.PieceAt(4, 4)
	require.NotNil(t, debug)
	assert.Equal(t, "trick_debug", debug.Key)
	assert.Equal(t, "prints the total", debug.Comment)
	assert.Equal(t, model.SideLeft, debug.Side(debug.Param("target")))
	assert.Equal(t, model.SideOff, debug.Side(debug.Param("number")))

	prog, err := compiler.Compile(context.Background(), s)
	require.NoError(t, err)
	console := &testutil.Console{}
	_, err = executor.Execute(context.Background(), prog, console)
	require.NoError(t, err)
	assert.Equal(t, []string{"2.5"}, console.Lines)
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		wantErr string
		wantIs  error
	}{
		{
			name:    "syntax",
			src:     `spell "x" {`,
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "unknown piece",
			src:     `spell "x" {
  piece "trick_nope" {
    x = 0
    y = 0
  }
}`,
			wantIs:  registry.ErrUnknownPiece,
			wantErr: "trick_nope",
		},
		{
			name:    "unknown side",
			src:     `spell "x" {
  piece "trick_debug" {
    x = 0
    y = 0
    sides = { target = "up" }
  }
}`,
			wantIs:  model.ErrUnknownSide,
			wantErr: `param "target"`,
		},
		{
			name:   "unknown param",
			src:    `spell "x" {
  piece "trick_debug" {
    x = 0
    y = 0
    sides = { nope = "top" }
  }
}`,
			wantIs: model.ErrUnknownParam,
		},
		{
			name:    "unknown attribute",
			src:     `spell "x" {
  piece "trick_debug" {
    x = 0
    y = 0
    colour = "red"
  }
}`,
			wantErr: "has no attribute 'colour'",
		},
		{
			name:    "attribute of the wrong type",
			src:     `spell "x" {
  piece "constant_number" {
    x = 0
    y = 0
    value = "many"
  }
}`,
			wantErr: "attribute 'value'",
		},
		{
			name:   "outside the grid",
			src:    `spell "x" {
  piece "constant_number" {
    x = 9
    y = 0
  }
}`,
			wantIs: model.ErrOutOfBounds,
		},
		{
			name: "same cell twice",
			src: `spell "x" {
  piece "constant_number" {
    x = 1
    y = 1
  }
  piece "constant_number" {
    x = 1
    y = 1
  }
}`,
			wantIs: model.ErrCellOccupied,
		},
		{
			name: "duplicate spell",
			src: `spell "x" {}
spell "x" {}`,
			wantIs: ErrDuplicateSpell,
		},
		{
			name:    "non-positive size",
			src:     `spell "x" { width = 0 }`,
			wantErr: "must be positive",
		},
		{
			name: "oversized grid",
			src: `spell "x" {
  width  = 100000
  height = 100000
}`,
			wantIs:  ErrGridTooLarge,
			wantErr: "100000x100000 exceeds 64x64",
		},
		{
			name: "one dimension over the bound",
			src: `spell "x" {
  height = 65
}`,
			wantIs: ErrGridTooLarge,
		},
		{
			name:    "missing coordinates",
			src:     `spell "x" {
  piece "constant_number" {
    x = 1
  }
}`,
			wantErr: "failed to decode HCL file",
		},
	}

	l := newLoader(t)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := l.Parse(context.Background(), []byte(tc.src), "bad.hcl")
			require.Error(t, err)
			if tc.wantIs != nil {
				assert.ErrorIs(t, err, tc.wantIs)
			}
			if tc.wantErr != "" {
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestParse_CustomSize(t *testing.T) {
	l := newLoader(t)
	spells, err := l.Parse(context.Background(), []byte(`
spell "wide" {
  width  = 12
  height = 3
  piece "constant_number" {
    x = 11
    y = 2
  }
}`), "wide.hcl")
	require.NoError(t, err)
	w, h := spells[0].Grid.Size()
	assert.Equal(t, 12, w)
	assert.Equal(t, 3, h)
	assert.NotNil(t, spells[0].Grid.PieceAt(11, 2))
}

func TestLoad(t *testing.T) {
	l := newLoader(t)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sum.hcl"), []byte(sumSpell), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "other.hcl"), []byte(`spell "other" {}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`not a spell`), 0o644))

	spells, err := l.Load(context.Background(), dir, filepath.Join(dir, "missing"))
	require.NoError(t, err)
	names := make([]string, len(spells))
	for i, s := range spells {
		names[i] = s.Name
	}
	assert.ElementsMatch(t, []string{"sum", "other"}, names)

	t.Run("duplicate across files", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "copy.hcl"), []byte(sumSpell), 0o644))
		_, err := l.Load(context.Background(), dir)
		require.ErrorIs(t, err, ErrDuplicateSpell)
	})
}

func TestEncode_RoundTrip(t *testing.T) {
	l := newLoader(t)
	spells, err := l.Parse(context.Background(), []byte(sumSpell), "sum.hcl")
	require.NoError(t, err)

	out := Encode(spells...)
	again, err := l.Parse(context.Background(), out, "encoded.hcl")
	require.NoError(t, err, "encoded output:\n%s", out)
	require.Len(t, again, 1)

	if diff := cmp.Diff(view(spells[0]), view(again[0])); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, string(out), string(Encode(again...)), "encoding is stable")
}
