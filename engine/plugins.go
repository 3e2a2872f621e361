package engine

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"twstyle/prefix"
	"twstyle/style"
)

var (
	ErrRegistrationClosed = errors.New("utilities must be registered before the first resolution")
	ErrUtilityCycle       = errors.New("cyclic utility reference")
)

// RegisterUtilities adds custom utilities. A value is either a finished
// style (*style.Style or map[string]any) or a string of other utilities the
// name expands to. Nothing is registered when any definition is invalid or
// the string references form a cycle.
func (e *Engine) RegisterUtilities(utilities map[string]any) error {
	if e.sealed {
		return ErrRegistrationClosed
	}

	styles := make(map[string]*style.Style)
	refs := maps.Clone(e.refs)
	var errs error
	for _, name := range slices.Sorted(maps.Keys(utilities)) {
		if strings.TrimSpace(name) == "" || strings.ContainsAny(name, " \t\n") {
			errs = multierr.Append(errs, fmt.Errorf("invalid utility name %q", name))
			continue
		}
		switch v := utilities[name].(type) {
		case string:
			refs[name] = v
		case *style.Style:
			styles[name] = v.Clone()
		case map[string]any:
			s, err := style.FromMap(v)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("utility %q: %w", name, err))
				continue
			}
			styles[name] = s
		default:
			errs = multierr.Append(errs, fmt.Errorf("utility %q: unsupported definition %T", name, v))
		}
	}
	if errs != nil {
		return errs
	}

	for name := range styles {
		delete(refs, name)
	}
	if cycle := detectCycle(refs); cycle != nil {
		return fmt.Errorf("%w: %s", ErrUtilityCycle, strings.Join(cycle, " -> "))
	}

	for name, s := range styles {
		e.plugins[name] = s
	}
	for name := range refs {
		delete(e.plugins, name)
	}
	e.refs = refs
	e.log.Debug("Registered utilities", zap.Int("styles", len(styles)), zap.Int("references", len(refs)))
	return nil
}

// detectCycle returns the utilities participating in a reference cycle, or
// nil if there is none. A reference names another utility through the
// prefix-free part of any of its tokens.
func detectCycle(refs map[string]string) []string {
	graph := make(map[string][]string, len(refs))
	for name, ref := range refs {
		var deps []string
		for _, token := range strings.Fields(ref) {
			_, rest := prefix.Split(token)
			if _, ok := refs[rest]; ok {
				deps = append(deps, rest)
			}
		}
		graph[name] = deps
	}

	visiting := make(map[string]bool, len(graph))
	visited := make(map[string]bool, len(graph))
	var stack, cycle []string

	var dfs func(string) bool
	dfs = func(node string) bool {
		visiting[node] = true
		stack = append(stack, node)
		for _, dep := range graph[node] {
			if visited[dep] {
				continue
			}
			if visiting[dep] {
				idx := slices.Index(stack, dep)
				cycle = append(slices.Clone(stack[idx:]), dep)
				return true
			}
			if dfs(dep) {
				return true
			}
		}
		visiting[node] = false
		visited[node] = true
		stack = stack[:len(stack)-1]
		return false
	}

	for _, name := range slices.Sorted(maps.Keys(graph)) {
		if !visited[name] && dfs(name) {
			return cycle
		}
	}
	return nil
}
