package compiler

import "github.com/specialistvlad/spellgrid/internal/model"

// path is the set of pieces on the current dependency chain. Every branch of
// the walk owns its own copy.
type path map[*model.Piece]struct{}

func (p path) has(piece *model.Piece) bool {
	_, ok := p[piece]
	return ok
}

func (p path) add(pieces ...*model.Piece) {
	for _, piece := range pieces {
		p[piece] = struct{}{}
	}
}

func (p path) clone() path {
	c := make(path, len(p)+1)
	for piece := range p {
		c[piece] = struct{}{}
	}
	return c
}

// sideSet records the sides already taken by enabled params of one piece.
type sideSet map[model.Side]struct{}

// checkSide validates the side of one param. It reports whether the param is
// disabled and must be skipped; a disabled required param fails with
// ErrUnsetParam and an enabled side used twice with ErrSameSideParams.
func checkSide(p *model.Piece, param *model.Param, used sideSet) (bool, error) {
	side := p.Side(param)
	if !side.IsEnabled() {
		if !param.CanDisable {
			return false, model.NewCompileErrorAt(model.ErrUnsetParam, p)
		}
		return true, nil
	}
	if _, taken := used[side]; taken {
		return false, model.NewCompileErrorAt(model.ErrSameSideParams, p)
	}
	used[side] = struct{}{}
	return false, nil
}
