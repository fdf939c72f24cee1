package inputsource

import (
	"fmt"
	"strings"
)

const listDelimiter = ","

// ListSources returns the catalogue for category in service order.
func ListSources(service Service, category Category) (List, error) {
	raw, err := service.ListIDs(category)
	if err != nil {
		return nil, fmt.Errorf("list %s sources: %w", category, err)
	}

	return SplitIDs(raw), nil
}

// SplitIDs splits a comma separated list, dropping empty segments.
func SplitIDs(raw string) List {
	out := List{}
	for _, part := range strings.Split(raw, listDelimiter) {
		if part == "" {
			continue
		}
		out = append(out, ID(part))
	}

	return out
}

// JoinIDs is the inverse of SplitIDs for services that build the list in Go.
func JoinIDs(ids List) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, string(id))
	}

	return strings.Join(parts, listDelimiter)
}
