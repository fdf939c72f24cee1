package memory

import (
	"context"

	"codeberg.org/miketth/ism/pkg/inputsource"
)

// SwitchStore keeps switch records for the lifetime of the process only.
type SwitchStore struct {
	records []inputsource.SwitchRecord
}

func NewSwitchStore() *SwitchStore {
	return &SwitchStore{}
}

func (s *SwitchStore) RecordSwitch(_ context.Context, record inputsource.SwitchRecord) error {
	s.records = append(s.records, record)
	return nil
}

// RecentSwitches returns up to limit records, newest first. A limit of zero
// or less returns everything.
func (s *SwitchStore) RecentSwitches(_ context.Context, limit int) ([]inputsource.SwitchRecord, error) {
	n := len(s.records)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]inputsource.SwitchRecord, 0, n)
	for i := len(s.records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.records[i])
	}

	return out, nil
}
