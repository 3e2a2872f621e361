// Package engine composes utility tokens into native styles.
package engine

import (
	"cmp"
	"errors"
	"slices"
	"strings"

	"go.uber.org/zap"

	"twstyle/cache"
	"twstyle/device"
	"twstyle/ir"
	"twstyle/parser"
	"twstyle/prefix"
	"twstyle/resolve"
	"twstyle/style"
	"twstyle/theme"
	"twstyle/units"
)

// Engine resolves utility tokens for one theme. The device context is
// mutable and selects the active cache partition.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	theme *theme.Theme
	log   *zap.Logger

	proc  *prefix.Processor
	parse *parser.Parser
	cache *cache.Cache

	dev device.Device
	key string

	static  []resolve.Named
	plugins map[string]*style.Style
	refs    map[string]string
	sealed  bool
}

// New returns an engine for th; a nil theme selects the defaults.
func New(th *theme.Theme, log *zap.Logger) *Engine {
	if th == nil {
		th = theme.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		theme:   th,
		log:     log.Named("engine"),
		proc:    prefix.NewProcessor(th, log),
		parse:   parser.New(th),
		static:  resolve.Static(),
		plugins: make(map[string]*style.Style),
		refs:    make(map[string]string),
		key:     cache.DefaultKey,
	}
	e.cache = cache.New(e.seed, log)
	return e
}

func (e *Engine) seed(p *cache.Partition) {
	for _, n := range e.static {
		p.SetIR(n.Name, n.IR)
	}
	for name, s := range e.plugins {
		p.SetIR(name, ir.Of(s))
	}
}

func (e *Engine) partition() *cache.Partition {
	e.sealed = true
	return e.cache.Partition(e.key)
}

// Theme returns the theme the engine resolves against.
func (e *Engine) Theme() *theme.Theme { return e.theme }

// Resolve composes tokens into a style and merges raw over the result.
// Tokens may contain several whitespace separated utilities; repeated
// utilities keep their last position. The returned style is owned by the
// caller.
func (e *Engine) Resolve(tokens []string, raw *style.Style) *style.Style {
	p := e.partition()
	out := e.resolve(p, Tokens(tokens...)).Clone()
	out.Merge(raw)
	return out
}

// resolve returns the memoized style of tokens, computing it on a miss. The
// result is shared with the cache.
func (e *Engine) resolve(p *cache.Partition, tokens []string) *style.Style {
	joined := strings.Join(tokens, " ")
	if joined != "" {
		if s, ok := p.Style(joined); ok {
			return s
		}
	}
	s := e.compose(p, tokens)
	if joined != "" {
		p.SetStyle(joined, s)
	}
	return s
}

type deferred struct {
	token string
	fn    ir.Finalizer
}

type weighted struct {
	token string
	ir    ir.IR
}

func (e *Engine) compose(p *cache.Partition, tokens []string) *style.Style {
	resolved := style.New()
	var (
		dependents []deferred
		ordered    []weighted
	)

	for _, token := range tokens {
		r := e.ir(p, token)
		switch r.Kind() {
		case ir.Complete:
			resolved.Merge(r.Style())
		case ir.Dependent:
			dependents = append(dependents, deferred{token, r.Finalizer()})
		case ir.Ordered:
			ordered = append(ordered, weighted{token, r})
		}
	}

	slices.SortStableFunc(ordered, func(a, b weighted) int {
		return cmp.Compare(a.ir.Weight(), b.ir.Weight())
	})
	for _, o := range ordered {
		switch inner := o.ir.Inner(); inner.Kind() {
		case ir.Complete:
			resolved.Merge(inner.Style())
		case ir.Dependent:
			dependents = append(dependents, deferred{o.token, inner.Finalizer()})
		}
	}

	for _, d := range dependents {
		if err := d.fn(resolved); err != nil {
			e.log.Warn("Unable to complete utility", zap.String("utility", d.token), zap.Error(err))
		}
	}
	resolved.DropPrivate()
	return resolved
}

// ir returns the memoized IR of token in p, computing it on a miss.
func (e *Engine) ir(p *cache.Partition, token string) ir.IR {
	if r, ok := p.IR(token); ok {
		return r
	}
	r := e.compute(p, token)
	p.SetIR(token, r)
	return r
}

func (e *Engine) compute(p *cache.Partition, token string) ir.IR {
	if ref, ok := e.refs[token]; ok {
		return ir.Of(e.resolve(p, Tokens(ref)))
	}

	res := e.proc.Process(token, e.dev)
	if res.Null {
		return ir.None
	}
	if res.Rest != token {
		inner := e.ir(p, res.Rest)
		if res.HasWeight {
			return ir.Weighted(res.Weight, inner)
		}
		return inner
	}

	r, err := e.parse.Parse(token, e.dev.Viewport())
	if err != nil {
		e.diagnose(token, err)
	}
	return r
}

func (e *Engine) diagnose(token string, err error) {
	switch {
	case errors.Is(err, units.ErrViewportRequired), errors.Is(err, units.ErrUnsupportedUnit):
		e.log.Warn("Unable to resolve utility", zap.String("utility", token), zap.Error(err))
	default:
		e.log.Debug("Ignoring utility", zap.String("utility", token), zap.Error(err))
	}
}

// Color resolves space separated color utilities written with or without
// their "bg-" or "text-" prefix and returns the resulting color.
func (e *Engine) Color(utilities string) (string, bool) {
	tokens := strings.Fields(utilities)
	for i, t := range tokens {
		if rest, ok := strings.CutPrefix(t, "bg-"); ok {
			t = rest
		} else if rest, ok := strings.CutPrefix(t, "text-"); ok {
			t = rest
		}
		tokens[i] = "bg-" + t
	}
	v, ok := e.Resolve(tokens, nil).Get("backgroundColor")
	if !ok {
		return "", false
	}
	return v.Str()
}

// MatchesPrefixes reports whether every prefix matches the current device.
func (e *Engine) MatchesPrefixes(prefixes ...string) bool {
	sorted := slices.Sorted(slices.Values(prefixes))
	joined := strings.Join(sorted, ":")

	p := e.partition()
	if matched, ok := p.PrefixMatch(joined); ok {
		return matched
	}
	matched := !e.ir(p, joined+":flex").IsNull()
	p.SetPrefixMatch(joined, matched)
	return matched
}

// Stats reports the counters of the active partition.
func (e *Engine) Stats() cache.Stats {
	return e.partition().Stats()
}

// PartitionKey names the active partition.
func (e *Engine) PartitionKey() string { return e.key }

// Partitions lists every partition created so far.
func (e *Engine) Partitions() []string { return e.cache.Keys() }

// Utilities lists the static and registered utility names in sorted order.
func (e *Engine) Utilities() []string {
	names := make([]string, 0, len(e.static)+len(e.plugins)+len(e.refs))
	for _, n := range e.static {
		names = append(names, n.Name)
	}
	for name := range e.plugins {
		names = append(names, name)
	}
	for name := range e.refs {
		names = append(names, name)
	}
	slices.Sort(names)
	return slices.Compact(names)
}
