package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/spellgrid/internal/ctxlog"
	"github.com/specialistvlad/spellgrid/internal/model"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Validate checks every blueprint for declarations the compiler cannot work
// with: duplicate or empty param names, catch params outside error handlers,
// error handlers without a catch param and redirectors without a param.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	for _, key := range r.Keys() {
		bp, _ := r.Lookup(key)
		names := make(map[string]struct{}, len(bp.Params))
		catches := 0
		for _, p := range bp.Params {
			if p == nil || p.Name == "" {
				errs = append(errs, fmt.Sprintf("piece '%s': param without a name", key))
				continue
			}
			if _, dup := names[p.Name]; dup {
				errs = append(errs, fmt.Sprintf("piece '%s': param '%s' declared twice", key, p.Name))
			}
			names[p.Name] = struct{}{}
			if p.Catch {
				catches++
				if bp.Type != model.PieceErrorHandler {
					errs = append(errs, fmt.Sprintf("piece '%s': param '%s' catches errors but the piece is a %s", key, p.Name, bp.Type))
				}
			}
			if p.Kind == model.KindNone {
				errs = append(errs, fmt.Sprintf("piece '%s': param '%s' accepts nothing", key, p.Name))
			}
		}

		switch bp.Type {
		case model.PieceErrorHandler:
			if catches == 0 {
				errs = append(errs, fmt.Sprintf("piece '%s': error handler without a catch param", key))
			}
		case model.PieceRedirector:
			if len(bp.Params) == 0 {
				errs = append(errs, fmt.Sprintf("piece '%s': redirector without a param", key))
			}
		}

		for name, typ := range bp.Attrs {
			if typ == cty.NilType {
				errs = append(errs, fmt.Sprintf("piece '%s': attribute '%s' has no type", key, name))
			} else if typ.Equals(cty.DynamicPseudoType) {
				logger.Warn("Piece attribute has type 'any', which disables type checking.", "piece", key, "attribute", name)
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// ConvertAttr converts an attribute value to the type the blueprint declares.
func (bp *Blueprint) ConvertAttr(name string, val cty.Value) (cty.Value, error) {
	typ, ok := bp.Attrs[name]
	if !ok {
		return cty.NilVal, fmt.Errorf("piece '%s' has no attribute '%s'", bp.Key, name)
	}
	out, err := convert.Convert(val, typ)
	if err != nil {
		return cty.NilVal, fmt.Errorf("piece '%s', attribute '%s': %w", bp.Key, name, err)
	}
	return out, nil
}
