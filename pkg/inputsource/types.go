package inputsource

// ID names one input source, e.g. "com.apple.keylayout.US" or "de(nodeadkeys)".
type ID string

// List is an ordered list of input sources. Order defines cycle order.
type List []ID

// Category selects a subset of the catalogue when listing.
type Category int

const (
	CategoryKeyboard Category = iota
	CategoryPalette
	CategoryAll
)

func (c Category) String() string {
	switch c {
	case CategoryKeyboard:
		return "keyboard"
	case CategoryPalette:
		return "palette"
	case CategoryAll:
		return "all"
	}

	return "unknown"
}

// Outcome reports the result of a cycle. ID is the new source when Switched,
// the unchanged current source otherwise.
type Outcome struct {
	Switched bool
	ID       ID
}
