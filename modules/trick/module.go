// Package trick provides trick pieces, the roots of every spell.
package trick

import (
	"fmt"
	"math"
	"strconv"

	"github.com/specialistvlad/spellgrid/internal/model"
	"github.com/specialistvlad/spellgrid/internal/registry"
	"github.com/specialistvlad/spellgrid/internal/spellhelp"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Console receives the output of debug tricks. Pass one as the cast
// environment; without it the output goes to the run logger.
type Console interface {
	Print(line string)
}

// Debug prints its target, prefixed with its number when one is wired.
type Debug struct{}

// AddToMetadata implements model.Behavior. Debugging is free.
func (Debug) AddToMetadata(*model.Piece, *model.Metadata) error { return nil }

// Execute implements model.Behavior.
func (Debug) Execute(rc model.RunContext, p *model.Piece) (any, error) {
	target, err := rc.ParamValue(p, p.Param("target"))
	if err != nil {
		return nil, err
	}
	line := fmt.Sprint(target)
	if target == nil {
		line = "(null)"
	}

	n, ok, err := spellhelp.OptionalNumber(rc, p, "number")
	if err != nil {
		return nil, err
	}
	if ok {
		line = "[" + formatNumber(n) + "] " + line
	}

	if c, isConsole := rc.Env().(Console); isConsole {
		c.Print(line)
	} else {
		rc.Logger().Info("Debug output.", "piece", p.String(), "line", line)
	}
	return nil, nil
}

func formatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// Die stops the cast when its number is zero, or always when no number is
// wired.
type Die struct{}

// AddToMetadata implements model.Behavior.
func (Die) AddToMetadata(_ *model.Piece, meta *model.Metadata) error {
	return meta.Add(model.StatComplexity, 1)
}

// Execute implements model.Behavior.
func (Die) Execute(rc model.RunContext, p *model.Piece) (any, error) {
	n, ok, err := spellhelp.OptionalNumber(rc, p, "number")
	if err != nil {
		return nil, err
	}
	if !ok || n == 0 {
		rc.Stop()
	}
	return nil, nil
}

// Burst releases a burst whose power must be known when the spell is
// compiled. Potency and cost grow with the power.
type Burst struct{}

// AddToMetadata implements model.Behavior.
func (Burst) AddToMetadata(p *model.Piece, meta *model.Metadata) error {
	power, err := spellhelp.StaticPositive(p, "power")
	if err != nil {
		return err
	}
	if err := meta.Add(model.StatComplexity, 1); err != nil {
		return err
	}
	if err := meta.Add(model.StatPotency, int(power*10)); err != nil {
		return err
	}
	return meta.Add(model.StatCost, int(18+(power-1)*10.5))
}

// Execute implements model.Behavior.
func (Burst) Execute(rc model.RunContext, p *model.Piece) (any, error) {
	power, err := spellhelp.Number(rc, p, "power")
	if err != nil {
		return nil, err
	}
	if power <= 0 {
		return nil, model.NewRuntimeError(model.ErrOutOfRange, p, "power must be positive")
	}
	rc.Logger().Info("Burst released.", "piece", p.String(), "power", power)
	return power, nil
}

// Register registers the tricks with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&registry.Blueprint{
		Key:  "trick_debug",
		Type: model.PieceTrick,
		Kind: model.KindNone,
		Params: []*model.Param{
			{Name: "target", Kind: model.KindAny},
			{Name: "number", Kind: model.KindNumber, CanDisable: true},
		},
		Behavior:    Debug{},
		Description: "Prints its target.",
	})
	r.Register(&registry.Blueprint{
		Key:         "trick_die",
		Type:        model.PieceTrick,
		Kind:        model.KindNone,
		Params:      []*model.Param{{Name: "number", Kind: model.KindNumber, CanDisable: true}},
		Behavior:    Die{},
		Description: "Stops the cast.",
	})
	r.Register(&registry.Blueprint{
		Key:         "trick_burst",
		Type:        model.PieceTrick,
		Kind:        model.KindNone,
		Params:      []*model.Param{{Name: "power", Kind: model.KindNumber}},
		Behavior:    Burst{},
		Description: "Releases a burst of constant power.",
	})
}
