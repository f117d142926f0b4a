package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/specialistvlad/spellgrid/internal/compiler"
	"github.com/specialistvlad/spellgrid/internal/ctxlog"
	"github.com/specialistvlad/spellgrid/internal/executor"
	"github.com/specialistvlad/spellgrid/internal/hclspell"
	"github.com/specialistvlad/spellgrid/internal/metrics"
	"github.com/specialistvlad/spellgrid/internal/model"
	"github.com/specialistvlad/spellgrid/internal/program"
	"github.com/specialistvlad/spellgrid/internal/programcache"
	"github.com/specialistvlad/spellgrid/internal/registry"
)

// ErrOverLimit is returned when a compiled spell exceeds a configured stat limit.
var ErrOverLimit = errors.New("spell exceeds limit")

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	registry   *registry.Registry
	loader     *hclspell.Loader
	cache      *programcache.Cache
	metrics    *metrics.Metrics
	executor   *executor.Executor
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger, registry and
// metrics. Without modules the core modules are registered.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All piece modules registered.", "count", len(modules), "pieces", len(reg.Keys()))

	if err := reg.Validate(ctx); err != nil {
		// This is a programmer error (a broken piece declaration), so we panic.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	m := metrics.New()
	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		loader:   hclspell.NewLoader(reg),
		cache:    programcache.New(cfg.CacheSize),
		metrics:  m,
		executor: executor.New(executor.WithObserver(m)),
	}
}

// Registry returns the application's registry.
func (a *App) Registry() *registry.Registry { return a.registry }

// Metrics returns the application's collectors.
func (a *App) Metrics() *metrics.Metrics { return a.metrics }

func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// LoadSpells loads every spell found under the configured paths.
func (a *App) LoadSpells(ctx context.Context) ([]*model.Spell, error) {
	ctx = a.withLogger(ctx)
	spells, err := a.loader.Load(ctx, a.config.SpellPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load spells: %w", err)
	}
	a.logger.Info("Spells loaded.", "count", len(spells))
	return spells, nil
}

// Compile compiles a spell, reusing a cached program when the spell has not
// changed, and checks the result against the configured limits.
func (a *App) Compile(ctx context.Context, spell *model.Spell) (*program.Program, error) {
	ctx = a.withLogger(ctx)
	started := time.Now()
	prog, hit, err := a.cache.GetOrCompile(ctx, spell, compiler.Compile)
	a.metrics.CacheLookup(hit)
	if !hit {
		a.metrics.CompileFinished(err, time.Since(started))
	}
	if err != nil {
		return nil, err
	}

	if stat, ok := prog.Metadata().Fits(a.config.Limits); !ok {
		return nil, fmt.Errorf("%w: %s is %d, limit %d", ErrOverLimit, stat, prog.Stat(stat), a.config.Limits[stat])
	}
	return prog, nil
}

// Cast compiles and executes a spell. env is handed to the pieces as the
// caster environment; nil routes debug output to the app's output writer.
func (a *App) Cast(ctx context.Context, spell *model.Spell, env any) (*executor.Run, error) {
	prog, err := a.Compile(ctx, spell)
	if err != nil {
		return nil, err
	}
	if env == nil {
		env = &console{w: a.outW, spell: spell.Name}
	}
	return a.executor.Execute(a.withLogger(ctx), prog, env)
}

// console prints debug output of a cast.
type console struct {
	w     io.Writer
	spell string
}

// Print implements trick.Console.
func (c *console) Print(line string) {
	fmt.Fprintf(c.w, "[%s] %s\n", c.spell, line)
}
