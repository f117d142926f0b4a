package testutil

import (
	"context"
	"testing"

	"github.com/specialistvlad/spellgrid/internal/model"
	"github.com/specialistvlad/spellgrid/internal/registry"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// NewRegistry registers the given modules into a fresh, validated registry.
func NewRegistry(t testing.TB, modules ...registry.Module) *registry.Registry {
	t.Helper()
	r := registry.New()
	for _, m := range modules {
		m.Register(r)
	}
	require.NoError(t, r.Validate(context.Background()))
	return r
}

// NewPiece creates a registered piece with the given attributes.
func NewPiece(t testing.TB, r *registry.Registry, key string, attrs map[string]cty.Value) *model.Piece {
	t.Helper()
	p, err := r.NewPiece(key)
	require.NoError(t, err)
	p.Attrs = attrs
	return p
}

// Number is shorthand for a constant_number "value" attribute.
func Number(v float64) map[string]cty.Value {
	return map[string]cty.Value{"value": cty.NumberFloatVal(v)}
}

// Console collects debug lines.
type Console struct {
	Lines []string
}

// Print records a line.
func (c *Console) Print(line string) {
	c.Lines = append(c.Lines, line)
}
