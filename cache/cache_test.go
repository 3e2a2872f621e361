package cache

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"twstyle/device"
	"twstyle/ir"
	"twstyle/style"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		dev  device.Device
		want string
	}{
		{"empty", device.Device{}, DefaultKey},
		{"dimensions", device.Device{}.WithDimensions(400, 800.5), "w400--h800.5"},
		{"everything", device.Device{
			ColorScheme:  device.SchemeDark,
			FontScale:    1.25,
			PixelDensity: 2,
			Platform:     "ios",
		}.WithDimensions(1, 2), "dark--w1--h2--fs1.25--retina--pios"},
		{"light only", device.Device{ColorScheme: device.SchemeLight}, "light"},
		{"density one is not retina", device.Device{PixelDensity: 1}, DefaultKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.dev); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCache_LazySeededPartitions(t *testing.T) {
	seeded := 0
	c := New(func(p *Partition) {
		seeded++
		p.SetIR("hidden", ir.Prop("display", style.String("none")))
	}, zaptest.NewLogger(t))

	a := c.Partition("default")
	if seeded != 1 {
		t.Fatalf("seeded %d partitions, want 1", seeded)
	}
	if _, ok := a.IR("hidden"); !ok {
		t.Error("seeded utility missing")
	}

	a.SetIR("bogus", ir.None)
	b := c.Partition("dark")
	if _, ok := b.IR("bogus"); ok {
		t.Error("partitions must not share IR")
	}
	if c.Partition("default") != a || seeded != 2 {
		t.Error("existing partition must be reused without reseeding")
	}
	if got := c.Keys(); len(got) != 2 || got[0] != "dark" || got[1] != "default" {
		t.Errorf("Keys() = %v", got)
	}
}

func TestPartition_Stats(t *testing.T) {
	p := newPartition("default")
	p.SetIR("bogus", ir.None)

	if r, ok := p.IR("bogus"); !ok || !r.IsNull() {
		t.Error("null IR must be memoized")
	}
	p.IR("unknown")
	p.Style("flex p-4")
	p.SetStyle("flex p-4", style.Of("display", "flex"))
	p.Style("flex p-4")
	p.SetPrefixMatch("dark:md", false)
	if matched, ok := p.PrefixMatch("dark:md"); !ok || matched {
		t.Error("prefix match not memoized")
	}

	want := Stats{IRHits: 1, IRMisses: 1, StyleHits: 1, StyleMisses: 1, PrefixHits: 1}
	if got := p.Stats(); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
	if got := p.Tokens(); len(got) != 1 || got[0] != "bogus" {
		t.Errorf("Tokens() = %v", got)
	}
}
