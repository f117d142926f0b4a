// Package connector provides the spell connector, a redirector that bends
// parameter connections around the grid.
package connector

import (
	"github.com/specialistvlad/spellgrid/internal/model"
	"github.com/specialistvlad/spellgrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Connector contributes nothing and is never executed; the compiler looks
// through it.
type Connector struct {
	model.NopBehavior
}

// Register registers the connector with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&registry.Blueprint{
		Key:         "connector",
		Type:        model.PieceRedirector,
		Kind:        model.KindAny,
		Params:      []*model.Param{{Name: "target", Kind: model.KindAny}},
		Behavior:    Connector{},
		Description: "Forwards the piece on its target side.",
	})
}
