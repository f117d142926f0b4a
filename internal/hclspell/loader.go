package hclspell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/spellgrid/internal/ctxlog"
	"github.com/specialistvlad/spellgrid/internal/model"
	"github.com/specialistvlad/spellgrid/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// MaxSize bounds the width and height a spell file may declare.
const MaxSize = 64

var (
	// ErrDuplicateSpell is returned when two spell blocks share a name.
	ErrDuplicateSpell = errors.New("duplicate spell")
	// ErrGridTooLarge is returned for a grid wider or taller than MaxSize.
	ErrGridTooLarge = errors.New("grid too large")
)

// Loader turns spell files into spells using the pieces of a registry.
type Loader struct {
	registry *registry.Registry
}

// NewLoader creates a new HCL spell loader.
func NewLoader(r *registry.Registry) *Loader {
	return &Loader{registry: r}
}

// Load parses every .hcl file found under paths. Missing paths are skipped.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*model.Spell, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL spell loader started.", "path_count", len(paths))

	files, err := findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	var spells []*model.Spell
	seen := make(map[string]string)
	for _, file := range files {
		f, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		found, err := l.decode(ctx, f, file)
		if err != nil {
			return nil, err
		}
		for _, s := range found {
			if prev, dup := seen[s.Name]; dup {
				return nil, fmt.Errorf("%w %q in %s, first defined in %s", ErrDuplicateSpell, s.Name, file, prev)
			}
			seen[s.Name] = file
		}
		spells = append(spells, found...)
	}

	logger.Debug("HCL spell loading complete.", "spells", len(spells))
	return spells, nil
}

// Parse decodes spells from HCL source. filename is used in diagnostics.
func (l *Loader) Parse(ctx context.Context, src []byte, filename string) ([]*model.Spell, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return l.decode(ctx, f, filename)
}

func (l *Loader) decode(ctx context.Context, f *hcl.File, filename string) ([]*model.Spell, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(f.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	spells := make([]*model.Spell, 0, len(root.Spells))
	names := make(map[string]struct{}, len(root.Spells))
	for _, block := range root.Spells {
		if _, dup := names[block.Name]; dup {
			return nil, fmt.Errorf("%w %q in %s", ErrDuplicateSpell, block.Name, filename)
		}
		names[block.Name] = struct{}{}

		s, err := l.translateSpell(ctx, block)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		spells = append(spells, s)
	}
	return spells, nil
}

// translateSpell builds a spell from its decoded block.
func (l *Loader) translateSpell(ctx context.Context, b *spellBlock) (*model.Spell, error) {
	logger := ctxlog.FromContext(ctx).With("spell", b.Name)
	logger.Debug("Translating HCL spell.", "pieces", len(b.Pieces))

	width, height := model.DefaultSize, model.DefaultSize
	if b.Width != nil {
		width = *b.Width
	}
	if b.Height != nil {
		height = *b.Height
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("spell %q: grid size %dx%d must be positive", b.Name, width, height)
	}
	if width > MaxSize || height > MaxSize {
		return nil, fmt.Errorf("spell %q: %w: %dx%d exceeds %dx%d", b.Name, ErrGridTooLarge, width, height, MaxSize, MaxSize)
	}

	s := &model.Spell{Name: b.Name, Grid: model.NewGrid(width, height)}
	for _, pb := range b.Pieces {
		p, err := l.translatePiece(pb)
		if err != nil {
			return nil, fmt.Errorf("spell %q, piece %q at (%d,%d): %w", b.Name, pb.Key, pb.X, pb.Y, err)
		}
		if err := s.Grid.Place(p, pb.X, pb.Y); err != nil {
			return nil, fmt.Errorf("spell %q, piece %q: %w", b.Name, pb.Key, err)
		}
	}
	return s, nil
}

func (l *Loader) translatePiece(pb *pieceBlock) (*model.Piece, error) {
	bp, ok := l.registry.Lookup(pb.Key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", registry.ErrUnknownPiece, pb.Key)
	}
	p := model.NewPiece(bp.Key, bp.Type, bp.Kind, bp.Behavior, bp.Params...)
	if pb.Comment != nil {
		p.Comment = *pb.Comment
	}

	// Sides are applied in name order so errors are deterministic.
	names := make([]string, 0, len(pb.Sides))
	for name := range pb.Sides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		side, err := model.ParseSide(pb.Sides[name])
		if err != nil {
			return nil, fmt.Errorf("param %q: %w", name, err)
		}
		if err := p.SetSideByName(name, side); err != nil {
			return nil, err
		}
	}

	attrs, diags := pb.Remain.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	if len(attrs) == 0 {
		return p, nil
	}
	p.Attrs = make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("attribute %q: %w", name, diags)
		}
		converted, err := bp.ConvertAttr(name, val)
		if err != nil {
			return nil, err
		}
		p.Attrs[name] = converted
	}
	return p, nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl files found.
func findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if filepath.Ext(path) == ".hcl" {
				add(path)
			}
			continue
		}
		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(p) == ".hcl" {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return allFiles, nil
}
