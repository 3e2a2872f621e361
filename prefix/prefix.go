// Package prefix evaluates the conditional prefixes of a utility token
// ("md:dark:ios:bg-white") against the current device.
package prefix

import (
	"errors"
	"regexp"
	"slices"
	"strings"

	"go.uber.org/zap"

	"twstyle/device"
	"twstyle/theme"
	"twstyle/units"
)

var ErrUnrecognizedPrefix = errors.New("unrecognized prefix")

// Result of evaluating the prefixes of one token.
type Result struct {
	// Null is set when any prefix does not match; the token then contributes
	// nothing.
	Null bool
	// Weight is the summed merge weight, meaningful when HasWeight is set.
	Weight    int
	HasWeight bool
	// Rest is the token without its prefixes.
	Rest string
}

var arbitraryBreakpoint = regexp.MustCompile(`^(min|max)-(w|h)-\[([^\]]+)\]$`)

// Processor evaluates prefixes. It holds no per-call state.
type Processor struct {
	theme *theme.Theme
	log   *zap.Logger
}

// NewProcessor returns a processor consulting the screens of th.
func NewProcessor(th *theme.Theme, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{theme: th, log: log.Named("prefix")}
}

// Split separates the prefixes of token from the utility itself.
func Split(token string) ([]string, string) {
	parts := strings.Split(strings.TrimSpace(token), ":")
	return parts[:len(parts)-1], parts[len(parts)-1]
}

// Process evaluates every prefix of token for dev. All prefixes are
// evaluated even after a mismatch so that each unknown prefix is reported.
func (p *Processor) Process(token string, dev device.Device) Result {
	prefixes, rest := Split(token)
	res := Result{Rest: rest}

	addWeight := func(w int) {
		res.Weight += w
		res.HasWeight = true
	}

	for _, prefix := range prefixes {
		if sc, ok := p.theme.Screen(prefix); ok {
			if dev.Width == nil || !sc.Matches(*dev.Width) {
				res.Null = true
				continue
			}
			addWeight(sc.Order)
			continue
		}

		switch {
		case slices.Contains(device.Platforms, prefix):
			if prefix != dev.Platform {
				res.Null = true
			}
		case prefix == "portrait" || prefix == "landscape":
			vp := dev.Viewport()
			if vp == nil {
				res.Null = true
				continue
			}
			orientation := "portrait"
			if vp.Width > vp.Height {
				orientation = "landscape"
			}
			if orientation != prefix {
				res.Null = true
				continue
			}
			addWeight(1)
		case prefix == "dark":
			if dev.ColorScheme != device.SchemeDark {
				res.Null = true
				continue
			}
			addWeight(1)
		default:
			matched, recognized := p.arbitrary(prefix, dev)
			if !recognized {
				p.log.Debug("Ignoring utility",
					zap.String("utility", token),
					zap.String("prefix", prefix),
					zap.Error(ErrUnrecognizedPrefix))
				res.Null = true
				continue
			}
			if !matched {
				res.Null = true
				continue
			}
			addWeight(1)
		}
	}
	return res
}

// arbitrary evaluates "min-w-[600px]" style prefixes. recognized is false
// when prefix has a different shape altogether.
func (p *Processor) arbitrary(prefix string, dev device.Device) (matched, recognized bool) {
	m := arbitraryBreakpoint.FindStringSubmatch(prefix)
	if m == nil {
		return false, false
	}
	vp := dev.Viewport()
	if vp == nil {
		return false, true
	}
	bound, u, err := units.Parse(m[3], false)
	if err != nil || u != units.Px {
		p.log.Debug("Arbitrary breakpoint must be in pixels",
			zap.String("prefix", prefix), zap.Error(err))
		return false, true
	}
	dim := vp.Width
	if m[2] == "h" {
		dim = vp.Height
	}
	if m[1] == "min" {
		return dim >= bound, true
	}
	return dim <= bound, true
}
