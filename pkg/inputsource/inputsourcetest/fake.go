// Package inputsourcetest provides in-memory input source services for tests.
package inputsourcetest

import (
	"unsafe"

	"codeberg.org/miketth/ism/pkg/inputsource"
)

// FakeService is an inputsource.Service backed by fields. A successful
// select makes the target current unless Lands redirects it.
type FakeService struct {
	Current    inputsource.ID
	CurrentErr error
	Codes      map[inputsource.ID]int32
	Lands      map[inputsource.ID]inputsource.ID
	Lists      map[inputsource.Category]string
	ListErr    error

	CurrentCalls int
	SelectCalls  []inputsource.ID
}

func (f *FakeService) CurrentID() (inputsource.ID, error) {
	f.CurrentCalls++
	if f.CurrentErr != nil {
		return "", f.CurrentErr
	}
	return f.Current, nil
}

func (f *FakeService) SelectByID(id inputsource.ID) (int32, error) {
	f.SelectCalls = append(f.SelectCalls, id)

	code := f.Codes[id]
	if code != inputsource.CodeOK {
		return code, nil
	}

	f.Current = id
	if landed, ok := f.Lands[id]; ok {
		f.Current = landed
	}

	return code, nil
}

func (f *FakeService) ListIDs(category inputsource.Category) (string, error) {
	if f.ListErr != nil {
		return "", f.ListErr
	}
	return f.Lists[category], nil
}

type buffer struct {
	data     []byte
	released bool
}

// FakeForeign imitates a C service: it hands out NUL terminated buffers and
// tracks their release. Released buffers are overwritten so a read after
// release is visible in test output.
type FakeForeign struct {
	Current     string
	NullCurrent bool
	Lists       map[inputsource.Category]string
	NullList    bool
	Codes       map[string]int32

	Initialized     int
	Selected        []string
	Allocated       int
	Released        int
	DoubleReleases  int
	UnknownReleases int

	buffers map[unsafe.Pointer]*buffer
}

func (f *FakeForeign) Initialize() {
	f.Initialized++
}

func (f *FakeForeign) CurrentID() unsafe.Pointer {
	if f.NullCurrent {
		return nil
	}
	return f.alloc(f.Current)
}

func (f *FakeForeign) SelectByID(id unsafe.Pointer) int32 {
	target := readCString(id)
	f.Selected = append(f.Selected, target)

	code := f.Codes[target]
	if code == inputsource.CodeOK {
		f.Current = target
	}
	return code
}

func (f *FakeForeign) ListIDs(category inputsource.Category) unsafe.Pointer {
	if f.NullList {
		return nil
	}
	return f.alloc(f.Lists[category])
}

func (f *FakeForeign) Release(buf unsafe.Pointer) {
	b, ok := f.buffers[buf]
	switch {
	case !ok:
		f.UnknownReleases++
	case b.released:
		f.DoubleReleases++
	default:
		b.released = true
		for i := 0; i < len(b.data)-1; i++ {
			b.data[i] = 'x'
		}
		f.Released++
	}
}

// Outstanding is the number of buffers handed out and not yet released.
func (f *FakeForeign) Outstanding() int {
	return f.Allocated - f.Released
}

func (f *FakeForeign) alloc(s string) unsafe.Pointer {
	if f.buffers == nil {
		f.buffers = make(map[unsafe.Pointer]*buffer)
	}

	data := append([]byte(s), 0)
	ptr := unsafe.Pointer(&data[0])
	f.buffers[ptr] = &buffer{data: data}
	f.Allocated++

	return ptr
}

func readCString(ptr unsafe.Pointer) string {
	var out []byte
	for i := 0; ; i++ {
		c := *(*byte)(unsafe.Add(ptr, i))
		if c == 0 {
			return string(out)
		}
		out = append(out, c)
	}
}
