package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/specialistvlad/spellgrid/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// ErrUnknownPiece is returned when a key has no registered blueprint.
var ErrUnknownPiece = errors.New("unknown piece")

// Module is the interface that all piece modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Blueprint describes one piece type.
type Blueprint struct {
	Key         string
	Type        model.PieceType
	Kind        model.ValueKind
	Params      []*model.Param
	Behavior    model.Behavior
	Description string
	// Attrs declares the attributes a piece of this type accepts.
	Attrs map[string]cty.Type
}

// Registry holds the blueprints of a single application instance.
type Registry struct {
	mu         sync.RWMutex
	blueprints map[string]*Blueprint
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{blueprints: make(map[string]*Blueprint)}
}

// Register adds a blueprint. It panics on an empty key, a missing behavior or
// a duplicate key.
func (r *Registry) Register(bp *Blueprint) {
	if bp == nil || bp.Key == "" {
		panic("piece blueprint must have a key")
	}
	if bp.Behavior == nil {
		panic(fmt.Sprintf("piece '%s' has no behavior", bp.Key))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.blueprints[bp.Key]; exists {
		panic(fmt.Sprintf("piece with key '%s' already registered", bp.Key))
	}
	slog.Debug("Registering piece.", "key", bp.Key, "type", bp.Type.String())
	r.blueprints[bp.Key] = bp
}

// Lookup returns the blueprint registered under key.
func (r *Registry) Lookup(key string) (*Blueprint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bp, ok := r.blueprints[key]
	return bp, ok
}

// Keys returns all registered keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.blueprints))
	for k := range r.blueprints {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NewPiece creates an unplaced piece from the blueprint registered under key.
func (r *Registry) NewPiece(key string) (*model.Piece, error) {
	bp, ok := r.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPiece, key)
	}
	return model.NewPiece(bp.Key, bp.Type, bp.Kind, bp.Behavior, bp.Params...), nil
}
