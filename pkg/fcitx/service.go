package fcitx

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"codeberg.org/miketth/ism/pkg/inputsource"
)

// Service exposes the input methods of fcitx5's active group as input sources.
type Service struct {
	ctl Controller
	log *zap.SugaredLogger
}

func NewService(ctl Controller, log *zap.SugaredLogger) *Service {
	return &Service{
		ctl: ctl,
		log: log,
	}
}

func (s *Service) CurrentID() (inputsource.ID, error) {
	name, err := s.ctl.CurrentInputMethod()
	if err != nil {
		return "", err
	}

	return inputsource.ID(name), nil
}

func (s *Service) SelectByID(id inputsource.ID) (int32, error) {
	names, err := s.ctl.GroupInputMethods()
	if err != nil {
		return 0, err
	}
	if !slices.Contains(names, string(id)) {
		return inputsource.CodeNotFound, nil
	}

	if err := s.ctl.SetCurrentIM(string(id)); err != nil {
		return 0, err
	}

	// fcitx accepts unknown or disabled engines silently
	current, err := s.ctl.CurrentInputMethod()
	if err != nil {
		return 0, err
	}
	if current != string(id) {
		s.log.Debugw("fcitx did not switch", "target", id, "current", current)
		return inputsource.CodeRejected, nil
	}

	return inputsource.CodeOK, nil
}

func (s *Service) ListIDs(category inputsource.Category) (string, error) {
	if category == inputsource.CategoryPalette {
		return "", nil
	}

	names, err := s.ctl.GroupInputMethods()
	if err != nil {
		return "", fmt.Errorf("list input methods: %w", err)
	}

	ids := make(inputsource.List, 0, len(names))
	for _, name := range names {
		ids = append(ids, inputsource.ID(name))
	}

	return inputsource.JoinIDs(ids), nil
}
