package inputsource

import (
	"fmt"
	"runtime"
	"strings"
	"unsafe"
)

// Bridge adapts a Foreign service to Service. It is the only place raw
// foreign memory is read or released.
//
// Create one Bridge per process: NewBridge initializes the foreign side and
// initializing it twice is unsupported.
type Bridge struct {
	raw Foreign
}

func NewBridge(raw Foreign) *Bridge {
	raw.Initialize()
	return &Bridge{raw: raw}
}

func (b *Bridge) CurrentID() (ID, error) {
	str, ok := b.take(b.raw.CurrentID())
	if !ok {
		return "", fmt.Errorf("%w: service returned no current source", ErrInternal)
	}

	return ID(str), nil
}

func (b *Bridge) SelectByID(id ID) (int32, error) {
	if strings.IndexByte(string(id), 0) >= 0 {
		return 0, fmt.Errorf("%w: source id %q contains a NUL byte", ErrInternal, id)
	}

	buf := make([]byte, len(id)+1)
	copy(buf, id)

	code := b.raw.SelectByID(unsafe.Pointer(&buf[0]))
	runtime.KeepAlive(buf)

	return code, nil
}

func (b *Bridge) ListIDs(category Category) (string, error) {
	str, _ := b.take(b.raw.ListIDs(category))
	return str, nil
}

// take copies a NUL terminated foreign buffer into a Go string and releases
// it. It reports false for a nil buffer, which is not released.
func (b *Bridge) take(buf unsafe.Pointer) (string, bool) {
	if buf == nil {
		return "", false
	}
	defer b.raw.Release(buf)

	return goString(buf), true
}

func goString(buf unsafe.Pointer) string {
	n := 0
	for *(*byte)(unsafe.Add(buf, n)) != 0 {
		n++
	}

	return string(unsafe.Slice((*byte)(buf), n))
}
