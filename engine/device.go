package engine

import (
	"go.uber.org/zap"

	"twstyle/cache"
	"twstyle/device"
)

// Device returns the current device context.
func (e *Engine) Device() device.Device { return e.dev }

// SetDevice replaces the whole device context.
func (e *Engine) SetDevice(d device.Device) {
	e.dev = d
	e.rekey()
}

func (e *Engine) SetWindowDimensions(width, height float64) {
	e.dev = e.dev.WithDimensions(width, height)
	e.rekey()
}

func (e *Engine) SetColorScheme(scheme device.ColorScheme) {
	e.dev.ColorScheme = scheme
	e.rekey()
}

func (e *Engine) SetPlatform(platform string) {
	e.dev.Platform = platform
	e.rekey()
}

// SetPixelDensity accepts 1 or 2; anything else clears the density.
func (e *Engine) SetPixelDensity(density int) {
	if density != 1 && density != 2 {
		density = 0
	}
	e.dev.PixelDensity = density
	e.rekey()
}

func (e *Engine) SetFontScale(scale float64) {
	e.dev.FontScale = scale
	e.rekey()
}

// rekey selects the partition for the current device. Partition contents
// are left untouched.
func (e *Engine) rekey() {
	key := cache.Key(e.dev)
	if key != e.key {
		e.log.Debug("Switching partition", zap.String("from", e.key), zap.String("to", key))
	}
	e.key = key
}
