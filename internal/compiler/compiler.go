package compiler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/specialistvlad/spellgrid/internal/ctxlog"
	"github.com/specialistvlad/spellgrid/internal/model"
	"github.com/specialistvlad/spellgrid/internal/program"
)

// build is the working state of one compilation.
type build struct {
	logger *slog.Logger
	grid   *model.Grid
	prog   *program.Program
	// redirects holds every redirector crossed so far, across all paths.
	redirects map[*model.Piece]struct{}
}

// Compile compiles a spell into a program. Failures are *model.CompileError
// values whose kind can be tested with errors.Is (e.g. model.ErrInfiniteLoop).
func Compile(ctx context.Context, spell *model.Spell) (*program.Program, error) {
	logger := ctxlog.FromContext(ctx)
	if spell.Empty() {
		logger.Debug("Compile: spell has no pieces.")
		return nil, model.NewCompileError(model.ErrNoSpell)
	}

	b := &build{
		grid:      spell.Grid,
		prog:      program.New(spell),
		redirects: make(map[*model.Piece]struct{}),
	}
	b.logger = logger.With("spell", spell.Name, "program_id", b.prog.ID.String())
	b.logger.Debug("Compile: starting.", "piece_count", spell.Grid.Count())

	for _, h := range b.grid.Pieces((*model.Piece).IsErrorHandler) {
		if err := b.buildHandler(h); err != nil {
			return nil, err
		}
	}
	b.logger.Debug("Compile: error handlers associated.", "guarded", b.prog.Handlers())

	tricks := b.grid.Pieces((*model.Piece).IsTrick)
	if len(tricks) == 0 {
		return nil, model.NewCompileError(model.ErrNoTricks)
	}
	for _, trick := range tricks {
		b.logger.Debug("Compile: building root.", "piece", trick.String())
		if err := b.buildPiece(trick, path{}); err != nil {
			return nil, err
		}
	}

	meta := b.prog.Metadata()
	if meta.Stat(model.StatCost) < 0 || meta.Stat(model.StatPotency) < 0 {
		return nil, model.NewCompileError(fmt.Errorf("%w: cost %d, potency %d",
			model.ErrStatOverflow, meta.Stat(model.StatCost), meta.Stat(model.StatPotency)))
	}
	if spell.Name == "" {
		return nil, model.NewCompileError(model.ErrNoName)
	}

	b.logger.Debug("Compile: finished.", "actions", b.prog.Len(), "redirectors", len(b.redirects), "stats", meta.Snapshot())
	return b.prog, nil
}

// buildPiece schedules p and everything it depends on.
func (b *build) buildPiece(p *model.Piece, visited path) error {
	if visited.has(p) {
		return model.NewCompileErrorAt(model.ErrInfiniteLoop, p)
	}
	visited.add(p)

	if _, existed := b.prog.Schedule(p); existed {
		b.logger.Debug("Compile: moved action to end of schedule.", "piece", p.String())
	} else if err := b.contribute(p); err != nil {
		return err
	}

	// The handler must run before the piece it guards.
	if h, ok := b.prog.Handler(p); ok {
		if err := b.buildPiece(h.Piece, visited.clone()); err != nil {
			return err
		}
	}

	used := make(sideSet)
	var deps, handled []*model.Piece
	for _, param := range p.Params() {
		skip, err := checkSide(p, param, used)
		if err != nil {
			return err
		}
		if skip {
			continue
		}

		at, err := b.resolve(p, p.Side(param))
		if err != nil {
			return err
		}
		if at == nil {
			return model.NewCompileErrorAt(model.ErrNullParam, p)
		}

		if p.Claims(param) {
			if !param.Accepts(at) {
				return model.NewCompileErrorAt(model.ErrInvalidParam, p)
			}
			handled = append(handled, at)
			continue
		}
		// Longer loops surface when the recursion revisits a piece.
		if at == p {
			return model.NewCompileErrorAt(model.ErrInfiniteLoop, p)
		}
		if !param.Accepts(at) {
			return model.NewCompileErrorAt(model.ErrInvalidParam, p)
		}
		deps = append(deps, at)
	}

	if len(deps) == 0 {
		return nil
	}
	base := visited.clone()
	base.add(handled...)
	for _, dep := range deps {
		if err := b.buildPiece(dep, base.clone()); err != nil {
			return err
		}
	}
	return nil
}

// buildHandler registers h as the guard of every piece its claimed params point at.
func (b *build) buildHandler(h *model.Piece) error {
	used := make(sideSet)
	for _, param := range h.Params() {
		if !h.Claims(param) {
			continue
		}
		skip, err := checkSide(h, param, used)
		if err != nil {
			return err
		}
		if skip {
			continue
		}

		at, err := b.resolve(h, h.Side(param))
		if err != nil {
			return err
		}
		if at == nil {
			return model.NewCompileErrorAt(model.ErrNullParam, h)
		}
		if !param.Accepts(at) {
			return model.NewCompileErrorAt(model.ErrInvalidParam, h)
		}

		b.logger.Debug("Compile: registering error handler.", "handler", h.String(), "guards", at.String())
		b.prog.Guard(at, h)
	}
	return nil
}

// resolve finds the piece wired to p through side, crossing redirectors.
func (b *build) resolve(p *model.Piece, side model.Side) (*model.Piece, error) {
	at, err := b.grid.NeighborWithRedirections(p.X, p.Y, side, b.crossRedirect)
	if err != nil {
		if errors.Is(err, model.ErrRedirectLoop) {
			return nil, model.NewCompileErrorAt(fmt.Errorf("%w: %v", model.ErrInfiniteLoop, err), p)
		}
		return nil, err
	}
	return at, nil
}

// crossRedirect handles the first crossing of a redirector: its metadata is
// contributed and its own params are checked. Later crossings are free.
func (b *build) crossRedirect(r *model.Piece) error {
	if _, seen := b.redirects[r]; seen {
		return nil
	}
	b.redirects[r] = struct{}{}
	b.logger.Debug("Compile: crossing redirector.", "piece", r.String())

	if err := b.contribute(r); err != nil {
		return err
	}
	used := make(sideSet)
	for _, param := range r.Params() {
		if _, err := checkSide(r, param, used); err != nil {
			return err
		}
	}
	return nil
}

// contribute runs the metadata hook of p, attributing failures to its cell.
func (b *build) contribute(p *model.Piece) error {
	err := b.prog.Contribute(p)
	if err == nil {
		return nil
	}
	var ce *model.CompileError
	if errors.As(err, &ce) {
		return ce.At(p)
	}
	return model.NewCompileErrorAt(fmt.Errorf("%w: %w", model.ErrInvalidParam, err), p)
}
