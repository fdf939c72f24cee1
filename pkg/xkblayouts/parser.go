package xkblayouts

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"slices"
)

const DefaultEvdevXMLPath = "/usr/share/X11/xkb/rules/evdev.xml"

func ParseLayouts(path string) (*Registry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

func Parse(r io.Reader) (*Registry, error) {
	var doc xmlRegistry
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode xml: %w", err)
	}

	return newRegistry(doc), nil
}

func newRegistry(doc xmlRegistry) *Registry {
	r := &Registry{
		byID:          map[string]int{},
		byDescription: map[string]int{},
	}

	for _, l := range doc.Layouts {
		r.add(LayoutID(l.ConfigItem.Name, ""), l.ConfigItem.Description)
		for _, v := range l.Variants {
			r.add(LayoutID(l.ConfigItem.Name, v.Name), v.Description)
		}
	}

	return r
}

// add keeps the first entry for a repeated id or description.
func (r *Registry) add(id, description string) {
	if id == "" {
		return
	}
	if _, ok := r.byID[id]; ok {
		return
	}

	idx := len(r.entries)
	r.entries = append(r.entries, Entry{ID: id, Description: description})
	r.byID[id] = idx

	if _, ok := r.byDescription[description]; !ok && description != "" {
		r.byDescription[description] = idx
	}
}

// LayoutID formats a layout and variant the way xkb does: "us", "de(nodeadkeys)".
func LayoutID(layout, variant string) string {
	if variant == "" {
		return layout
	}
	return layout + "(" + variant + ")"
}

// Describe returns the description of a layout id, or "" if xkb does not
// know it.
func (r *Registry) Describe(id string) string {
	idx, ok := r.byID[id]
	if !ok {
		return ""
	}
	return r.entries[idx].Description
}

// Lookup maps a description such as "German (no dead keys)" back to its
// layout id. It returns "" when nothing matches.
func (r *Registry) Lookup(description string) string {
	idx, ok := r.byDescription[description]
	if !ok {
		return ""
	}
	return r.entries[idx].ID
}

func (r *Registry) Entries() []Entry {
	return slices.Clone(r.entries)
}
