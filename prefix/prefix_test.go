package prefix

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"twstyle/device"
	"twstyle/theme"
)

func TestProcess(t *testing.T) {
	p := NewProcessor(theme.Default(), zaptest.NewLogger(t))

	var none device.Device
	phone := device.Device{Platform: "ios"}.WithDimensions(400, 800)
	tablet := device.Device{Platform: "android", ColorScheme: device.SchemeDark}.WithDimensions(1100, 800)

	tests := []struct {
		name  string
		token string
		dev   device.Device
		want  Result
	}{
		{"no prefix", "bg-white", none, Result{Rest: "bg-white"}},
		{"breakpoint without width", "md:p-4", none, Result{Null: true, Rest: "p-4"}},
		{"breakpoint below min", "md:p-4", phone, Result{Null: true, Rest: "p-4"}},
		{"breakpoint at min", "md:p-4", device.Device{}.WithDimensions(768, 500), Result{Weight: 1, HasWeight: true, Rest: "p-4"}},
		{"smallest breakpoint weighs zero", "sm:p-4", tablet, Result{Weight: 0, HasWeight: true, Rest: "p-4"}},
		{"weights sum", "lg:dark:p-4", tablet, Result{Weight: 3, HasWeight: true, Rest: "p-4"}},
		{"platform match", "ios:hidden", phone, Result{Rest: "hidden"}},
		{"platform mismatch", "android:hidden", phone, Result{Null: true, Rest: "hidden"}},
		{"portrait", "portrait:hidden", phone, Result{Weight: 1, HasWeight: true, Rest: "hidden"}},
		{"landscape mismatch", "landscape:hidden", phone, Result{Null: true, Rest: "hidden"}},
		{"orientation without viewport", "portrait:hidden", none, Result{Null: true, Rest: "hidden"}},
		{"dark mismatch", "dark:bg-black", phone, Result{Null: true, Rest: "bg-black"}},
		{"min width", "min-w-[300px]:flex", phone, Result{Weight: 1, HasWeight: true, Rest: "flex"}},
		{"max height", "max-h-[700px]:flex", phone, Result{Null: true, Rest: "flex"}},
		{"arbitrary needs px", "min-w-[10rem]:flex", phone, Result{Null: true, Rest: "flex"}},
		{"unknown prefix", "hover:flex", phone, Result{Null: true, Rest: "flex"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Process(tt.token, tt.dev); got != tt.want {
				t.Errorf("Process(%q) = %+v, want %+v", tt.token, got, tt.want)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	prefixes, rest := Split(" md:dark:-m-2 ")
	if len(prefixes) != 2 || prefixes[0] != "md" || prefixes[1] != "dark" {
		t.Errorf("prefixes = %v", prefixes)
	}
	if rest != "-m-2" {
		t.Errorf("rest = %q", rest)
	}
}
