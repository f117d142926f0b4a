package programcache

import (
	"context"
	"strconv"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/specialistvlad/spellgrid/internal/ctxlog"
	"github.com/specialistvlad/spellgrid/internal/hclspell"
	"github.com/specialistvlad/spellgrid/internal/model"
	"github.com/specialistvlad/spellgrid/internal/program"
	"golang.org/x/sync/singleflight"
)

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 128

// CompileFunc compiles a spell; compiler.Compile satisfies it.
type CompileFunc func(ctx context.Context, spell *model.Spell) (*program.Program, error)

// Fingerprint identifies the content of a spell: its name, grid size, and
// every piece with its cell, sides and attributes.
func Fingerprint(spell *model.Spell) uint64 {
	return xxhash.Sum64(hclspell.Encode(spell))
}

// Cache is a bounded LRU cache of compiled programs.
type Cache struct {
	capacity int
	programs *lru.Cache[uint64, *program.Program]
	group    singleflight.Group
}

// New creates an empty cache holding at most capacity programs.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	programs, err := lru.New[uint64, *program.Program](capacity)
	if err != nil {
		// Only returned for a non-positive size.
		panic(err)
	}
	return &Cache{capacity: capacity, programs: programs}
}

// Get returns the program cached under key.
func (c *Cache) Get(key uint64) (*program.Program, bool) {
	return c.programs.Get(key)
}

// Put caches a program under key, evicting the least recently used one when
// the cache is full.
func (c *Cache) Put(key uint64, prog *program.Program) {
	c.programs.Add(key, prog)
}

// Len returns the number of cached programs.
func (c *Cache) Len() int {
	return c.programs.Len()
}

// Purge empties the cache.
func (c *Cache) Purge() {
	c.programs.Purge()
}

// GetOrCompile returns the cached program for spell, compiling and caching it
// on a miss. hit reports whether the program came from the cache. Failed
// compilations are not cached.
func (c *Cache) GetOrCompile(ctx context.Context, spell *model.Spell, compile CompileFunc) (prog *program.Program, hit bool, err error) {
	key := Fingerprint(spell)
	logger := ctxlog.FromContext(ctx).With("fingerprint", strconv.FormatUint(key, 16))
	if prog, ok := c.Get(key); ok {
		logger.Debug("Program cache hit.")
		return prog, true, nil
	}

	logger.Debug("Program cache miss, compiling.")
	v, err, _ := c.group.Do(strconv.FormatUint(key, 16), func() (any, error) {
		if prog, ok := c.Get(key); ok {
			return prog, nil
		}
		prog, err := compile(ctx, spell)
		if err != nil {
			return nil, err
		}
		c.Put(key, prog)
		return prog, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*program.Program), false, nil
}
