package inputsource

import (
	"fmt"

	"go.uber.org/zap"
)

// Switcher reads and changes the active input source through a Service.
// It holds no state besides its collaborators: every read goes to the service.
type Switcher struct {
	service Service
	log     *zap.SugaredLogger
}

func NewSwitcher(service Service, log *zap.SugaredLogger) *Switcher {
	return &Switcher{
		service: service,
		log:     log,
	}
}

func (s *Switcher) Current() (ID, error) {
	id, err := s.service.CurrentID()
	if err != nil {
		return "", fmt.Errorf("get current source: %w", err)
	}
	if id == "" {
		return "", fmt.Errorf("get current source: %w: empty source id", ErrInternal)
	}

	return id, nil
}

// Cycle switches to the source after the current one in sources, wrapping
// around. If the current source is not in the list the first entry is used.
func (s *Switcher) Cycle(sources List) (Outcome, error) {
	current, err := s.Current()
	if err != nil {
		return Outcome{}, err
	}

	target, ok := NextSource(current, sources)
	if !ok || target == current {
		s.log.Debugw("not switching", "current", current, "sources", len(sources))
		return Outcome{Switched: false, ID: current}, nil
	}

	s.log.Debugw("switching", "current", current, "target", target)

	newID, err := s.selectAndRead(target)
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{Switched: true, ID: newID}, nil
}

// Set selects id directly, without consulting any list, and returns the
// source that is active afterwards.
func (s *Switcher) Set(id ID) (ID, error) {
	s.log.Debugw("setting source", "target", id)
	return s.selectAndRead(id)
}

func (s *Switcher) selectAndRead(target ID) (ID, error) {
	code, err := s.service.SelectByID(target)
	if err != nil {
		return "", fmt.Errorf("select %q: %w", target, err)
	}

	if err := resultError(code); err != nil {
		s.log.Debugw("select failed", "target", target, "code", code)
		return "", fmt.Errorf("select %q: %w", target, err)
	}

	// the service decides what ended up active
	return s.Current()
}

// NextSource picks the cycle target for current. It returns false when
// sources is empty.
func NextSource(current ID, sources List) (ID, bool) {
	if len(sources) == 0 {
		return "", false
	}

	for i, id := range sources {
		if id == current {
			return sources[(i+1)%len(sources)], true
		}
	}

	return sources[0], true
}
