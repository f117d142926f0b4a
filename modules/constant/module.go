// Package constant provides the constant pieces: values fixed when the spell
// is drawn and known to the compiler.
package constant

import (
	"fmt"

	"github.com/specialistvlad/spellgrid/internal/model"
	"github.com/specialistvlad/spellgrid/internal/registry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Number evaluates to the piece's "value" attribute, 0 when unset.
type Number struct{}

// AddToMetadata implements model.Behavior. Constants are free.
func (Number) AddToMetadata(*model.Piece, *model.Metadata) error { return nil }

// Evaluate implements model.StaticEvaluator.
func (Number) Evaluate(p *model.Piece) (any, error) {
	v, ok := p.Attr("value")
	if !ok || v.IsNull() {
		return 0.0, nil
	}
	var f float64
	if err := gocty.FromCtyValue(v, &f); err != nil {
		return nil, fmt.Errorf("%s value: %w", p, err)
	}
	return f, nil
}

// Execute implements model.Behavior.
func (n Number) Execute(_ model.RunContext, p *model.Piece) (any, error) {
	return n.Evaluate(p)
}

// Text evaluates to the piece's "value" attribute as a string.
type Text struct{}

// AddToMetadata implements model.Behavior.
func (Text) AddToMetadata(*model.Piece, *model.Metadata) error { return nil }

// Evaluate implements model.StaticEvaluator.
func (Text) Evaluate(p *model.Piece) (any, error) {
	v, ok := p.Attr("value")
	if !ok || v.IsNull() {
		return "", nil
	}
	var s string
	if err := gocty.FromCtyValue(v, &s); err != nil {
		return nil, fmt.Errorf("%s value: %w", p, err)
	}
	return s, nil
}

// Execute implements model.Behavior.
func (t Text) Execute(_ model.RunContext, p *model.Piece) (any, error) {
	return t.Evaluate(p)
}

// Register registers the constant pieces with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&registry.Blueprint{
		Key:         "constant_number",
		Type:        model.PieceConstant,
		Kind:        model.KindNumber,
		Behavior:    Number{},
		Description: "A fixed number.",
		Attrs:       map[string]cty.Type{"value": cty.Number},
	})
	r.Register(&registry.Blueprint{
		Key:         "constant_text",
		Type:        model.PieceConstant,
		Kind:        model.KindText,
		Behavior:    Text{},
		Description: "A fixed piece of text.",
		Attrs:       map[string]cty.Type{"value": cty.String},
	})
}
