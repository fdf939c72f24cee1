// Package backend picks and opens the input source service for this machine.
package backend

import (
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"codeberg.org/miketth/ism/pkg/config"
	"codeberg.org/miketth/ism/pkg/fcitx"
	"codeberg.org/miketth/ism/pkg/hyprland"
	"codeberg.org/miketth/ism/pkg/inputsource"
	"codeberg.org/miketth/ism/pkg/tis"
	"codeberg.org/miketth/ism/pkg/xkblayouts"
)

// Resolve turns "auto" into a concrete backend name.
func Resolve(name string) string {
	if name != config.BackendAuto && name != "" {
		return name
	}

	switch {
	case runtime.GOOS == "darwin":
		return config.BackendTIS
	case os.Getenv("HYPRLAND_INSTANCE_SIGNATURE") != "":
		return config.BackendHyprland
	}

	return config.BackendFcitx
}

// Open connects to the named backend. The returned close func releases any
// connection the backend holds.
func Open(name string, cfg config.Config, log *zap.SugaredLogger) (inputsource.Service, func() error, error) {
	name = Resolve(name)
	log.Debugw("opening backend", "backend", name)

	noop := func() error { return nil }

	switch name {
	case config.BackendTIS:
		native, err := tis.Open()
		if err != nil {
			return nil, nil, fmt.Errorf("open tis: %w", err)
		}
		return inputsource.NewBridge(native), noop, nil

	case config.BackendHyprland:
		hyprctl, err := hyprland.NewHyprctl()
		if err != nil {
			return nil, nil, fmt.Errorf("connect hyprctl: %w", err)
		}

		// only needed by Hyprland versions without active_layout_index
		registry, err := xkblayouts.ParseLayouts(cfg.Hyprland.EvdevXMLPath)
		if err != nil {
			log.Debugw("layout registry unavailable", "path", cfg.Hyprland.EvdevXMLPath, "error", err)
			registry = nil
		} else {
			log.Debugw("loaded layout registry", "path", cfg.Hyprland.EvdevXMLPath, "layouts", len(registry.Entries()))
		}

		return hyprland.NewService(hyprctl, registry, cfg.Hyprland.Keyboard, log), noop, nil

	case config.BackendFcitx:
		ctl, err := fcitx.Connect()
		if err != nil {
			return nil, nil, fmt.Errorf("connect fcitx: %w", err)
		}
		return fcitx.NewService(ctl, log), ctl.Close, nil
	}

	return nil, nil, fmt.Errorf("%w: unknown backend %q", config.ErrInvalidConfig, name)
}
