// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import (
	"github.com/vk/nodeprovider/internal/artifact"
	"github.com/vk/nodeprovider/internal/universe"
)

func (r *Registry) scan() {
	if r.universe == nil {
		r.logger.Warn("Registry has no universe to scan.")
		return
	}

	defs := r.universe.Definitions()
	r.logger.Debug("Scanning definitions...", "count", len(defs))

	for _, d := range defs {
		if d == nil {
			continue
		}
		if d.IsNode() {
			r.addNode(d)
		}
		if d.IsView() {
			r.addView(d)
		}
		for _, f := range d.Fields {
			if f.IsSlot() {
				r.slotTypes = append(r.slotTypes, f.Type)
			}
		}
	}

	r.logger.Info("Registry scan complete.",
		"definitions", len(defs),
		"nodes", len(r.nodes),
		"views", len(r.views),
		"menu_entries", len(r.nodeForMenuEntry),
		"slot_types", len(r.slotTypes),
	)
}

func (r *Registry) addNode(node *universe.Definition) {
	r.logger.Debug("Registering node.", "node", node.ID, "menu", node.Menu)
	r.nodes = append(r.nodes, node)

	for _, entry := range node.Menu {
		if prev, exists := r.nodeForMenuEntry[entry]; exists && prev.ID != node.ID {
			r.logger.Warn("Menu entry declared twice, keeping the later node.", "entry", entry, "previous", prev.ID, "node", node.ID)
		}
		r.nodeForMenuEntry[entry] = node
	}

	if a, ok := r.resolveSource(node); ok {
		r.sourceForNode[node.ID] = a
	}
}

func (r *Registry) addView(view *universe.Definition) {
	r.views = append(r.views, view)

	target := view.Target
	if target == nil || target.ID == "" {
		r.logger.Debug("View declares no target node, not indexed.", "view", view.ID)
		return
	}
	r.logger.Debug("Registering view.", "view", view.ID, "node", target.ID)

	if prev, exists := r.viewForNode[target.ID]; exists {
		if prev.ID != view.ID {
			r.logger.Warn("Node targeted by two views, keeping the later view.", "node", target.ID, "previous", prev.ID, "view", view.ID)
		}
	} else {
		r.viewKeys = append(r.viewKeys, target)
	}
	r.viewForNode[target.ID] = view

	if a, ok := r.resolveSource(view); ok {
		r.sourceForView[view.ID] = a
	}
}

func (r *Registry) resolveSource(d *universe.Definition) (artifact.Artifact, bool) {
	a, ok, err := artifact.Resolve(r.artifacts, d.Name)
	if err != nil {
		r.logger.Warn("Source artifact lookup failed.", "definition", d.ID, "error", err)
		return artifact.Artifact{}, false
	}
	if !ok {
		r.logger.Debug("No source artifact found.", "definition", d.ID)
		return artifact.Artifact{}, false
	}
	r.logger.Debug("Source artifact resolved.", "definition", d.ID, "path", a.Path)
	return a, true
}
