// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package universe

import (
	"sort"

	"github.com/agext/levenshtein"
)

// Universe enumerates type definitions. The returned order is the scan order
// and must be stable across calls.
type Universe interface {
	Definitions() []*Definition
}

// List is a fixed, in-memory universe.
type List []*Definition

// Definitions implements Universe.
func (l List) Definitions() []*Definition {
	return l
}

type joined []Universe

func (j joined) Definitions() []*Definition {
	var out []*Definition
	for _, u := range j {
		if u == nil {
			continue
		}
		out = append(out, u.Definitions()...)
	}
	return out
}

// Join concatenates universes in the given order.
func Join(us ...Universe) Universe {
	return joined(us)
}

// Find looks a definition up by ID, then by simple name. The first match in
// enumeration order wins.
func Find(u Universe, name string) (*Definition, bool) {
	defs := u.Definitions()
	for _, d := range defs {
		if d.ID == name {
			return d, true
		}
	}
	for _, d := range defs {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}

// maxSuggestDistance bounds how different a suggestion may be.
const maxSuggestDistance = 3

// Suggest returns simple names close to name, closest first.
func Suggest(u Universe, name string) []string {
	return SuggestFrom(names(u.Definitions()), name)
}

// SuggestFrom ranks candidates by edit distance to name, closest first, and
// drops anything further than a few edits away.
func SuggestFrom(candidates []string, name string) []string {
	type scored struct {
		name string
		dist int
	}
	var hits []scored
	seen := make(map[string]struct{})
	for _, c := range candidates {
		if _, ok := seen[c]; ok || c == name {
			continue
		}
		seen[c] = struct{}{}
		if d := levenshtein.Distance(name, c, nil); d <= maxSuggestDistance {
			hits = append(hits, scored{c, d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].name < hits[j].name
	})
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.name)
	}
	return out
}

func names(defs []*Definition) []string {
	out := make([]string, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.Name)
	}
	return out
}
