// Package cache memoizes resolution results per device context.
package cache

import (
	"maps"
	"slices"
	"strings"

	"go.uber.org/zap"

	"twstyle/device"
	"twstyle/ir"
	"twstyle/style"
	"twstyle/units"
)

// DefaultKey names the partition of a device with no known facets.
const DefaultKey = "default"

// Key derives the partition key from the facets of d that affect
// resolution.
func Key(d device.Device) string {
	var facets []string
	switch d.ColorScheme {
	case device.SchemeDark:
		facets = append(facets, "dark")
	case device.SchemeLight:
		facets = append(facets, "light")
	}
	if d.Width != nil {
		facets = append(facets, "w"+units.Format(*d.Width))
	}
	if d.Height != nil {
		facets = append(facets, "h"+units.Format(*d.Height))
	}
	if d.FontScale != 0 {
		facets = append(facets, "fs"+units.Format(d.FontScale))
	}
	if d.PixelDensity == 2 {
		facets = append(facets, "retina")
	}
	if d.Platform != "" {
		facets = append(facets, "p"+d.Platform)
	}
	if len(facets) == 0 {
		return DefaultKey
	}
	return strings.Join(facets, "--")
}

// Stats counts lookups in one partition.
type Stats struct {
	IRHits       int
	IRMisses     int
	StyleHits    int
	StyleMisses  int
	PrefixHits   int
	PrefixMisses int
}

// Partition holds everything memoized for one device context.
type Partition struct {
	key      string
	irs      map[string]ir.IR
	styles   map[string]*style.Style
	prefixes map[string]bool
	stats    Stats
}

func newPartition(key string) *Partition {
	return &Partition{
		key:      key,
		irs:      make(map[string]ir.IR),
		styles:   make(map[string]*style.Style),
		prefixes: make(map[string]bool),
	}
}

func (p *Partition) Key() string { return p.key }

func (p *Partition) Stats() Stats { return p.stats }

// IR returns the memoized IR of token. Null results are memoized as well.
func (p *Partition) IR(token string) (ir.IR, bool) {
	r, ok := p.irs[token]
	if ok {
		p.stats.IRHits++
	} else {
		p.stats.IRMisses++
	}
	return r, ok
}

func (p *Partition) SetIR(token string, r ir.IR) {
	p.irs[token] = r
}

// Style returns the style memoized for a joined token list. Callers must not
// modify it.
func (p *Partition) Style(key string) (*style.Style, bool) {
	s, ok := p.styles[key]
	if ok {
		p.stats.StyleHits++
	} else {
		p.stats.StyleMisses++
	}
	return s, ok
}

func (p *Partition) SetStyle(key string, s *style.Style) {
	p.styles[key] = s
}

// PrefixMatch returns the memoized outcome for a joined prefix list.
func (p *Partition) PrefixMatch(key string) (matched, ok bool) {
	matched, ok = p.prefixes[key]
	if ok {
		p.stats.PrefixHits++
	} else {
		p.stats.PrefixMisses++
	}
	return matched, ok
}

func (p *Partition) SetPrefixMatch(key string, matched bool) {
	p.prefixes[key] = matched
}

// Tokens lists every token with memoized IR in sorted order.
func (p *Partition) Tokens() []string {
	return slices.Sorted(maps.Keys(p.irs))
}

// Cache owns all partitions of one engine. Partitions are created on first
// use, seeded, and never evicted.
type Cache struct {
	partitions map[string]*Partition
	seed       func(*Partition)
	log        *zap.Logger
}

// New returns an empty cache; seed populates each new partition.
func New(seed func(*Partition), log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{
		partitions: make(map[string]*Partition),
		seed:       seed,
		log:        log.Named("cache"),
	}
}

// Partition returns the partition for key, creating it when needed.
func (c *Cache) Partition(key string) *Partition {
	if p, ok := c.partitions[key]; ok {
		return p
	}
	p := newPartition(key)
	if c.seed != nil {
		c.seed(p)
	}
	c.partitions[key] = p
	c.log.Debug("Created partition", zap.String("key", key), zap.Int("seeded", len(p.irs)))
	return p
}

// Keys lists existing partitions in sorted order.
func (c *Cache) Keys() []string {
	return slices.Sorted(maps.Keys(c.partitions))
}
