package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/specialistvlad/spellgrid/internal/ctxlog"
	"github.com/specialistvlad/spellgrid/internal/model"
	"github.com/specialistvlad/spellgrid/internal/program"
)

var (
	// ErrNoProgram is returned when Execute is called without a program.
	ErrNoProgram = errors.New("no program to execute")
	// ErrPiecePanicked wraps a panic raised by a piece's behavior.
	ErrPiecePanicked = errors.New("piece panicked")
)

// Observer receives notifications about casts. Implementations must be safe
// for concurrent use.
type Observer interface {
	ActionExecuted(p *model.Piece, elapsed time.Duration, err error)
	ErrorSuppressed(p *model.Piece, err error)
	RunFinished(run *Run, elapsed time.Duration)
}

// Option configures an Executor.
type Option func(*Executor)

// WithObserver attaches an observer to every cast.
func WithObserver(o Observer) Option {
	return func(e *Executor) { e.observer = o }
}

// Executor casts programs. It is stateless apart from its options and safe
// for concurrent use.
type Executor struct {
	observer Observer
}

// New creates a new executor.
func New(opts ...Option) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute casts a program with a default executor.
func Execute(ctx context.Context, prog *program.Program, env any) (*Run, error) {
	return New().Execute(ctx, prog, env)
}

// Execute casts a program against env. The returned Run is never nil, except
// when prog is nil; on abort it is returned together with the error.
func (e *Executor) Execute(ctx context.Context, prog *program.Program, env any) (*Run, error) {
	if prog == nil {
		return nil, ErrNoProgram
	}

	run := &Run{ID: uuid.New(), ProgramID: prog.ID, State: Ready}
	logger := ctxlog.FromContext(ctx).With("run_id", run.ID.String(), "program_id", prog.ID.String())
	if prog.Spell != nil {
		logger = logger.With("spell", prog.Spell.Name)
	}
	rc := newContext(ctx, env, logger)
	run.values = rc.values

	started := time.Now()
	run.State = Running
	logger.Info("▶️ Casting spell", "actions", prog.Len())

	for _, action := range prog.ExecutionOrder() {
		p := action.Piece
		if err := ctx.Err(); err != nil {
			return e.abort(run, started, fmt.Errorf("cast interrupted before %s: %w", p, err))
		}

		actionStarted := time.Now()
		val, err := runAction(rc, p)
		run.Executed++
		if e.observer != nil {
			e.observer.ActionExecuted(p, time.Since(actionStarted), err)
		}

		if err != nil {
			replacement, ok := suppress(prog, rc, p, err)
			if !ok {
				logger.Error("Action failed.", "piece", p.String(), "error", err)
				return e.abort(run, started, fmt.Errorf("executing %s: %w", p, err))
			}
			logger.Warn("Action failed, error suppressed by handler.", "piece", p.String(), "error", err)
			run.Suppressed = append(run.Suppressed, err)
			if e.observer != nil {
				e.observer.ErrorSuppressed(p, err)
			}
			val = replacement
		}

		logger.Debug("Action executed.", "piece", p.String(), "value", formatValueForLogs(val))
		rc.values[p] = val

		if rc.Stopped() {
			logger.Info("Cast stopped by piece.", "piece", p.String())
			run.Stopped = true
			break
		}
	}

	run.State = Completed
	if e.observer != nil {
		e.observer.RunFinished(run, time.Since(started))
	}
	logger.Info("✅ Spell cast", "executed", run.Executed, "suppressed", len(run.Suppressed))
	return run, nil
}

func (e *Executor) abort(run *Run, started time.Time, err error) (*Run, error) {
	run.State = Aborted
	run.Err = err
	if e.observer != nil {
		e.observer.RunFinished(run, time.Since(started))
	}
	return run, err
}

// runAction executes one piece, turning a panic into an error.
func runAction(rc *Context, p *model.Piece) (val any, err error) {
	defer func() {
		if r := recover(); r != nil {
			val, err = nil, fmt.Errorf("%w: %s: %v", ErrPiecePanicked, p, r)
		}
	}()
	return p.Execute(rc)
}

// suppress returns the value of the handler guarding p when err can be caught.
func suppress(prog *program.Program, rc *Context, p *model.Piece, err error) (any, bool) {
	var rte *model.RuntimeError
	if !errors.As(err, &rte) {
		return nil, false
	}
	h, ok := prog.Handler(p)
	if !ok {
		return nil, false
	}
	return rc.value(h.Piece)
}
