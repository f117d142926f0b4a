// Package catch provides the error suppressor, the error handler piece.
package catch

import (
	"github.com/specialistvlad/spellgrid/internal/model"
	"github.com/specialistvlad/spellgrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Suppressor guards the piece on its target side. Its value, the value wired
// into fallback (nil when fallback is off), replaces the target's value when
// the target fails at cast time.
type Suppressor struct{}

// AddToMetadata implements model.Behavior.
func (Suppressor) AddToMetadata(_ *model.Piece, meta *model.Metadata) error {
	return meta.Add(model.StatComplexity, 1)
}

// Execute implements model.Behavior.
func (Suppressor) Execute(rc model.RunContext, p *model.Piece) (any, error) {
	return rc.ParamValue(p, p.Param("fallback"))
}

// Register registers the error suppressor with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&registry.Blueprint{
		Key:  "error_suppressor",
		Type: model.PieceErrorHandler,
		Kind: model.KindAny,
		Params: []*model.Param{
			{Name: "target", Kind: model.KindAny, Catch: true},
			{Name: "fallback", Kind: model.KindAny, CanDisable: true},
		},
		Behavior:    Suppressor{},
		Description: "Replaces the value of a failing piece.",
	})
}
