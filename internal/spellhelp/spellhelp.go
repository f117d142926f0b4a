// Package spellhelp holds parameter accessors shared by piece modules.
package spellhelp

import (
	"fmt"
	"math"

	"github.com/specialistvlad/spellgrid/internal/model"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ToNumber converts a piece value to a float64.
func ToNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case cty.Value:
		var f float64
		if n.IsNull() || !n.IsKnown() || gocty.FromCtyValue(n, &f) != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Number reads a number param at cast time. A missing value fails with
// ErrNullValue and a non-numeric one with ErrInvalidOperand.
func Number(rc model.RunContext, p *model.Piece, name string) (float64, error) {
	v, err := rc.ParamValue(p, p.Param(name))
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, model.NewRuntimeError(model.ErrNullValue, p, name)
	}
	f, ok := ToNumber(v)
	if !ok || math.IsNaN(f) {
		return 0, model.NewRuntimeError(model.ErrInvalidOperand, p, fmt.Sprintf("%s is %T", name, v))
	}
	return f, nil
}

// OptionalNumber is Number for params that may be disabled; ok is false when
// the param is off.
func OptionalNumber(rc model.RunContext, p *model.Piece, name string) (f float64, ok bool, err error) {
	param := p.Param(name)
	if param == nil || !p.Side(param).IsEnabled() {
		return 0, false, nil
	}
	f, err = Number(rc, p, name)
	return f, err == nil, err
}

// StaticPositive evaluates a number param at compile time and requires it to
// be strictly positive.
func StaticPositive(p *model.Piece, name string) (float64, error) {
	v, err := p.StaticParam(p.Param(name))
	if err != nil {
		return 0, err
	}
	f, ok := ToNumber(v)
	if !ok {
		return 0, model.NewCompileErrorAt(fmt.Errorf("%w: %s is not a number", model.ErrInvalidParam, name), p)
	}
	if f <= 0 {
		return 0, model.NewCompileErrorAt(fmt.Errorf("%w: %s is %g", model.ErrNonPositiveValue, name, f), p)
	}
	return f, nil
}
