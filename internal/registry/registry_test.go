package registry

import (
	"context"
	"testing"

	"github.com/specialistvlad/spellgrid/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

type testModule struct{ bps []*Blueprint }

func (m *testModule) Register(r *Registry) {
	for _, bp := range m.bps {
		r.Register(bp)
	}
}

func TestRegistry_RegisterAndNewPiece(t *testing.T) {
	r := New()
	(&testModule{bps: []*Blueprint{
		{Key: "b_trick", Type: model.PieceTrick, Behavior: model.NopBehavior{}, Params: []*model.Param{{Name: "target", Kind: model.KindAny}}},
		{Key: "a_constant", Type: model.PieceConstant, Kind: model.KindNumber, Behavior: model.NopBehavior{}},
	}}).Register(r)

	assert.Equal(t, []string{"a_constant", "b_trick"}, r.Keys())

	p1, err := r.NewPiece("b_trick")
	require.NoError(t, err)
	p2, err := r.NewPiece("b_trick")
	require.NoError(t, err)
	assert.NotSame(t, p1, p2)
	assert.NotSame(t, p1.Param("target"), p2.Param("target"), "each piece owns its params")
	assert.Equal(t, model.SideOff, p1.Side(p1.Param("target")))

	_, err = r.NewPiece("missing")
	require.ErrorIs(t, err, ErrUnknownPiece)
}

func TestRegistry_RegisterPanics(t *testing.T) {
	r := New()
	r.Register(&Blueprint{Key: "dup", Behavior: model.NopBehavior{}})

	assert.PanicsWithValue(t, "piece with key 'dup' already registered", func() {
		r.Register(&Blueprint{Key: "dup", Behavior: model.NopBehavior{}})
	})
	assert.Panics(t, func() { r.Register(&Blueprint{Behavior: model.NopBehavior{}}) })
	assert.Panics(t, func() { r.Register(&Blueprint{Key: "nobehavior"}) })
}

func TestRegistry_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		bp      *Blueprint
		wantErr string
	}{
		{
			name: "valid handler",
			bp: &Blueprint{Key: "h", Type: model.PieceErrorHandler, Behavior: model.NopBehavior{}, Params: []*model.Param{
				{Name: "target", Kind: model.KindAny, Catch: true},
				{Name: "fallback", Kind: model.KindAny},
			}},
		},
		{
			name: "duplicate param",
			bp: &Blueprint{Key: "t", Type: model.PieceTrick, Behavior: model.NopBehavior{}, Params: []*model.Param{
				{Name: "x", Kind: model.KindAny}, {Name: "x", Kind: model.KindAny},
			}},
			wantErr: "param 'x' declared twice",
		},
		{
			name:    "catch outside handler",
			bp:      &Blueprint{Key: "t", Type: model.PieceTrick, Behavior: model.NopBehavior{}, Params: []*model.Param{{Name: "x", Kind: model.KindAny, Catch: true}}},
			wantErr: "catches errors but the piece is a trick",
		},
		{
			name:    "handler without catch",
			bp:      &Blueprint{Key: "h", Type: model.PieceErrorHandler, Behavior: model.NopBehavior{}, Params: []*model.Param{{Name: "x", Kind: model.KindAny}}},
			wantErr: "error handler without a catch param",
		},
		{
			name:    "redirector without param",
			bp:      &Blueprint{Key: "r", Type: model.PieceRedirector, Behavior: model.NopBehavior{}},
			wantErr: "redirector without a param",
		},
		{
			name:    "param accepting nothing",
			bp:      &Blueprint{Key: "t", Type: model.PieceTrick, Behavior: model.NopBehavior{}, Params: []*model.Param{{Name: "x"}}},
			wantErr: "accepts nothing",
		},
		{
			name:    "untyped attribute",
			bp:      &Blueprint{Key: "c", Type: model.PieceConstant, Behavior: model.NopBehavior{}, Attrs: map[string]cty.Type{"value": cty.NilType}},
			wantErr: "attribute 'value' has no type",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := New()
			r.Register(tc.bp)
			err := r.Validate(context.Background())
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestBlueprint_ConvertAttr(t *testing.T) {
	bp := &Blueprint{Key: "c", Attrs: map[string]cty.Type{"value": cty.Number}}

	got, err := bp.ConvertAttr("value", cty.StringVal("2.5"))
	require.NoError(t, err)
	f, _ := got.AsBigFloat().Float64()
	assert.Equal(t, 2.5, f)

	_, err = bp.ConvertAttr("value", cty.StringVal("nope"))
	require.Error(t, err)

	_, err = bp.ConvertAttr("other", cty.NumberIntVal(1))
	require.ErrorContains(t, err, "has no attribute 'other'")
}
