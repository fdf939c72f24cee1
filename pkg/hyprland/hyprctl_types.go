package hyprland

import (
	"strings"

	"codeberg.org/miketth/ism/pkg/inputsource"
	"codeberg.org/miketth/ism/pkg/xkblayouts"
)

type keyboard struct {
	Name              string `json:"name"`
	Layout            string `json:"layout"`
	Variant           string `json:"variant"`
	Options           string `json:"options"`
	ActiveKeymap      string `json:"active_keymap"`
	ActiveLayoutIndex *int   `json:"active_layout_index"`
	Main              bool   `json:"main"`
}

type devices struct {
	Keyboards []keyboard `json:"keyboards"`
}

// Keyboard is a keyboard device as reported by hyprctl devices.
type Keyboard struct {
	Name         string
	Main         bool
	Layouts      []string
	Variants     []string
	ActiveKeymap string
	// ActiveLayoutIndex is -1 when Hyprland does not report it.
	ActiveLayoutIndex int
}

func (k keyboard) ToKeyboard() Keyboard {
	activeIdx := -1
	if k.ActiveLayoutIndex != nil {
		activeIdx = *k.ActiveLayoutIndex
	}

	var layouts []string
	if k.Layout != "" {
		layouts = strings.Split(k.Layout, ",")
	}

	return Keyboard{
		Name:              k.Name,
		Main:              k.Main,
		Layouts:           layouts,
		Variants:          strings.Split(k.Variant, ","),
		ActiveKeymap:      k.ActiveKeymap,
		ActiveLayoutIndex: activeIdx,
	}
}

// LayoutIDs returns the keyboard's layouts as source ids. The position of an
// id is its hyprctl layout index.
func (k Keyboard) LayoutIDs() inputsource.List {
	ids := make(inputsource.List, 0, len(k.Layouts))
	for i, layout := range k.Layouts {
		variant := ""
		if i < len(k.Variants) {
			variant = strings.TrimSpace(k.Variants[i])
		}
		ids = append(ids, inputsource.ID(xkblayouts.LayoutID(strings.TrimSpace(layout), variant)))
	}

	return ids
}
