package executor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/specialistvlad/spellgrid/internal/model"
)

// Context is the per-cast state handed to every piece. It implements
// model.RunContext and is confined to the goroutine running the cast.
type Context struct {
	context.Context

	env     any
	logger  *slog.Logger
	values  map[*model.Piece]any
	stopped bool
}

var _ model.RunContext = (*Context)(nil)

func newContext(ctx context.Context, env any, logger *slog.Logger) *Context {
	return &Context{
		Context: ctx,
		env:     env,
		logger:  logger,
		values:  make(map[*model.Piece]any),
	}
}

// ParamValue returns the value of the piece wired into param. Redirectors are
// followed through the grid the piece was compiled from. A disabled param or a
// neighbor that has not produced a value yet yields nil.
func (c *Context) ParamValue(p *model.Piece, param *model.Param) (any, error) {
	if param == nil {
		return nil, fmt.Errorf("%w on %s", model.ErrUnknownParam, p)
	}
	n, err := p.Neighbor(param)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	return c.values[n], nil
}

// Env returns the environment supplied to Execute.
func (c *Context) Env() any { return c.env }

// Stop ends the cast once the current action returns.
func (c *Context) Stop() { c.stopped = true }

// Stopped reports whether Stop was called.
func (c *Context) Stopped() bool { return c.stopped }

// Logger returns the cast-scoped logger.
func (c *Context) Logger() *slog.Logger { return c.logger }

func (c *Context) value(p *model.Piece) (any, bool) {
	v, ok := c.values[p]
	return v, ok
}
