package hyprland

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"codeberg.org/miketth/ism/pkg/inputsource"
	"codeberg.org/miketth/ism/pkg/xkblayouts"
)

var (
	ErrNoKeyboard       = errors.New("no keyboard found")
	ErrKeyboardNotFound = errors.New("keyboard not found")
)

// Controller is the part of hyprctl the Service needs.
type Controller interface {
	GetKeyboards() ([]Keyboard, error)
	SwitchToLayout(keyboard string, idx int) (string, error)
}

// Service exposes the layouts of one Hyprland keyboard as input sources.
type Service struct {
	ctl      Controller
	layouts  *xkblayouts.Registry
	keyboard string
	log      *zap.SugaredLogger
}

// NewService creates a Service for keyboard, or for the main keyboard when
// keyboard is empty. layouts may be nil if Hyprland reports layout indexes.
func NewService(
	ctl Controller,
	layouts *xkblayouts.Registry,
	keyboard string,
	log *zap.SugaredLogger,
) *Service {
	return &Service{
		ctl:      ctl,
		layouts:  layouts,
		keyboard: keyboard,
		log:      log,
	}
}

func (s *Service) CurrentID() (inputsource.ID, error) {
	kb, err := s.activeKeyboard()
	if err != nil {
		return "", err
	}

	ids := kb.LayoutIDs()
	if kb.ActiveLayoutIndex >= 0 && kb.ActiveLayoutIndex < len(ids) {
		return ids[kb.ActiveLayoutIndex], nil
	}

	// older versions only report the keymap description
	if s.layouts == nil {
		return "", fmt.Errorf("keyboard %q reports no layout index and no layout registry is loaded", kb.Name)
	}

	id := s.layouts.Lookup(kb.ActiveKeymap)
	if id == "" {
		return "", fmt.Errorf("layout %q not found in registry", kb.ActiveKeymap)
	}

	return inputsource.ID(id), nil
}

func (s *Service) SelectByID(id inputsource.ID) (int32, error) {
	kb, err := s.activeKeyboard()
	if err != nil {
		return 0, err
	}

	idx := slices.Index(kb.LayoutIDs(), id)
	if idx < 0 {
		return inputsource.CodeNotFound, nil
	}

	if s.layouts != nil {
		s.log.Debugw("switching layout",
			"keyboard", kb.Name,
			"index", idx,
			"name", s.layouts.Describe(string(id)),
		)
	}

	reply, err := s.ctl.SwitchToLayout(kb.Name, idx)
	if err != nil {
		return 0, fmt.Errorf("switch layout: %w", err)
	}

	code := replyCode(reply)
	if code != inputsource.CodeOK {
		s.log.Debugw("hyprctl refused layout switch", "reply", reply, "code", code)
	}

	return code, nil
}

func (s *Service) ListIDs(category inputsource.Category) (string, error) {
	// hyprland has no palette input methods
	if category == inputsource.CategoryPalette {
		return "", nil
	}

	kb, err := s.activeKeyboard()
	if err != nil {
		return "", err
	}

	return inputsource.JoinIDs(kb.LayoutIDs()), nil
}

func (s *Service) activeKeyboard() (Keyboard, error) {
	keyboards, err := s.ctl.GetKeyboards()
	if err != nil {
		return Keyboard{}, fmt.Errorf("get keyboards: %w", err)
	}
	if len(keyboards) == 0 {
		return Keyboard{}, ErrNoKeyboard
	}

	if s.keyboard != "" {
		for _, k := range keyboards {
			if k.Name == s.keyboard {
				return k, nil
			}
		}
		return Keyboard{}, fmt.Errorf("%w: %q", ErrKeyboardNotFound, s.keyboard)
	}

	for _, k := range keyboards {
		if k.Main {
			return k, nil
		}
	}

	return keyboards[0], nil
}
