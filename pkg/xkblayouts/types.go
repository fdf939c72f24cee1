package xkblayouts

import "encoding/xml"

// Entry is one selectable layout or layout variant.
type Entry struct {
	// ID is the xkb name: "us", "de(nodeadkeys)".
	ID string
	// Description is the human readable name Hyprland reports as the keymap,
	// for example "German (no dead keys)".
	Description string
}

// Registry indexes the layouts known to xkb, in evdev.xml order.
type Registry struct {
	entries       []Entry
	byID          map[string]int
	byDescription map[string]int
}

// evdev.xml, reduced to the elements a Registry is built from
type xmlRegistry struct {
	XMLName xml.Name    `xml:"xkbConfigRegistry"`
	Layouts []xmlLayout `xml:"layoutList>layout"`
}

type xmlConfigItem struct {
	Name        string `xml:"name"`
	Description string `xml:"description"`
}

type xmlLayout struct {
	ConfigItem xmlConfigItem   `xml:"configItem"`
	Variants   []xmlConfigItem `xml:"variantList>variant>configItem"`
}
