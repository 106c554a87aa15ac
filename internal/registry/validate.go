// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/nodeprovider/internal/ctxlog"
	"github.com/vk/nodeprovider/internal/universe"
)

// ValidationError lists every inconsistency found by Validate.
type ValidationError struct {
	Problems []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("registry validation failed:\n- %s", strings.Join(e.Problems, "\n- "))
}

// Validate checks the scanned indices for declarations that were silently
// resolved during the scan: menu paths and view targets claimed more than
// once, views that edit nothing and concrete nodes missing from the menu.
// Slots typed as "any" are reported as warnings only.
func (r *Registry) Validate(ctx context.Context) error {
	r.Scan()
	logger := ctxlog.FromContext(ctx)
	var problems []string

	menuClaims := make(map[string][]string)
	var menuOrder []string
	for _, n := range r.nodes {
		if len(n.Menu) == 0 {
			problems = append(problems, fmt.Sprintf("node %s has no menu entry", n.ID))
		}
		for _, entry := range n.Menu {
			if _, ok := menuClaims[entry]; !ok {
				menuOrder = append(menuOrder, entry)
			}
			menuClaims[entry] = appendUnique(menuClaims[entry], n.ID)
		}
	}
	for _, entry := range menuOrder {
		if ids := menuClaims[entry]; len(ids) > 1 {
			problems = append(problems, fmt.Sprintf("menu entry %q is declared by %s; %s wins", entry, strings.Join(ids, ", "), ids[len(ids)-1]))
		}
	}

	targetClaims := make(map[string][]string)
	for _, v := range r.views {
		if v.Target == nil || v.Target.ID == "" {
			problems = append(problems, fmt.Sprintf("view %s declares no target node", v.ID))
			continue
		}
		targetClaims[v.Target.ID] = appendUnique(targetClaims[v.Target.ID], v.ID)
		if !r.reachable(v.Target) {
			problems = append(problems, fmt.Sprintf("view %s targets %s, which no concrete node is or extends", v.ID, v.Target.ID))
		}
	}
	for _, key := range r.viewKeys {
		if ids := targetClaims[key.ID]; len(ids) > 1 {
			problems = append(problems, fmt.Sprintf("node %s is targeted by views %s; %s wins", key.ID, strings.Join(ids, ", "), ids[len(ids)-1]))
		}
	}

	for _, n := range r.nodes {
		for _, f := range n.SlotFields() {
			if f.Type.Dynamic {
				logger.Warn("Slot declared with a dynamic type, connections to it cannot be checked.", "node", n.ID, "slot", f.Name, "type", f.Type.String())
			}
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	logger.Debug("Registry validation passed.", "nodes", len(r.nodes), "views", len(r.views))
	return nil
}

// reachable reports whether target is a concrete node or an ancestor of one.
func (r *Registry) reachable(target *universe.Definition) bool {
	for _, n := range r.nodes {
		if n.ID == target.ID || n.IsSubclassOf(target) {
			return true
		}
	}
	return false
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
