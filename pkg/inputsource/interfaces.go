package inputsource

import (
	"context"
	"time"
	"unsafe"
)

// Service is the input source capability the Switcher drives.
type Service interface {
	CurrentID() (ID, error)
	SelectByID(id ID) (int32, error)
	// ListIDs returns a comma separated list, or "" for an empty catalogue.
	ListIDs(category Category) (string, error)
}

// Foreign is the raw C surface of a native input source service. Every
// non-nil buffer it hands out must be passed to Release exactly once.
// Only Bridge talks to it.
type Foreign interface {
	Initialize()
	CurrentID() unsafe.Pointer
	SelectByID(id unsafe.Pointer) int32
	ListIDs(category Category) unsafe.Pointer
	Release(buf unsafe.Pointer)
}

type SwitchRecord struct {
	From    ID
	To      ID
	Command string
	At      time.Time
}

type SwitchStore interface {
	RecordSwitch(ctx context.Context, record SwitchRecord) error
	RecentSwitches(ctx context.Context, limit int) ([]SwitchRecord, error)
}
