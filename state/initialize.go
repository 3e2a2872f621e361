package state

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"twstyle/css"
	"twstyle/engine"
	"twstyle/theme"
)

// PrepareEngine builds the resolution engine from the loaded configuration:
// theme, plugin utilities from stylesheets and configured references, and
// the device context. Stylesheet warnings are logged, not fatal.
func (e *LocalEnv) PrepareEngine() error {
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}

	th := theme.Default()
	if e.Cfg.Theme.Path != "" {
		var err error
		if th, err = theme.Load(e.Cfg.Theme.Path); err != nil {
			return fmt.Errorf("unable to load theme: %w", err)
		}
		e.Rpt.Store("theme"+filepath.Ext(e.Cfg.Theme.Path), e.Cfg.Theme.Path)
	}

	eng := engine.New(th, log)

	utilities := make(map[string]any)
	parser, conv := css.NewParser(log), css.NewConverter(log)
	for i, path := range e.Cfg.Plugins.Stylesheets {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("unable to read stylesheet: %w", err)
		}
		e.Rpt.Store(fmt.Sprintf("stylesheets/%02d-%s", i, filepath.Base(path)), path)

		sheet := parser.Parse(data, path)
		for name, s := range conv.Utilities(sheet) {
			utilities[name] = s
		}
		for _, w := range sheet.Warnings {
			log.Warn("Stylesheet rule ignored", zap.String("file", path), zap.String("reason", w))
		}
	}
	for name, ref := range e.Cfg.Plugins.Utilities {
		utilities[name] = ref
	}
	if len(utilities) > 0 {
		if err := eng.RegisterUtilities(utilities); err != nil {
			return fmt.Errorf("unable to register utilities: %w", err)
		}
	}

	dev, err := e.Cfg.Device.Device()
	if err != nil {
		return fmt.Errorf("bad device configuration: %w", err)
	}
	eng.SetDevice(dev)

	e.Engine = eng
	return nil
}
