// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import "github.com/vk/nodeprovider/internal/universe"

// ViewFor returns the view bound to node. Without a direct binding, the
// bound node kinds are walked in the order they were first bound and the
// first that is an ancestor of node supplies its view. That is the first
// match, not the nearest ancestor.
func (r *Registry) ViewFor(node *universe.Definition) (*universe.Definition, bool) {
	r.Scan()
	if node == nil {
		return nil, false
	}

	if view, ok := r.viewForNode[node.ID]; ok {
		return view, true
	}

	for _, key := range r.viewKeys {
		if node.IsSubclassOf(key) {
			return r.viewForNode[key.ID], true
		}
	}
	return nil, false
}
