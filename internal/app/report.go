package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/mitchellh/go-wordwrap"
	"github.com/vk/nodeprovider/internal/artifact"
	"github.com/vk/nodeprovider/internal/registry"
	"github.com/vk/nodeprovider/internal/universe"
)

// docWidth is the column descriptions are wrapped at.
const docWidth = 72

// report renders query results for a terminal. Write errors are sticky:
// the first one stops further output and is returned by Run.
type report struct {
	w     io.Writer
	color bool
	err   error
}

func newReport(w io.Writer, useColor bool) *report {
	return &report{w: w, color: useColor}
}

func (r *report) paint(c color.Color, s string) string {
	if !r.color {
		return s
	}
	return c.Sprint(s)
}

func (r *report) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

func (r *report) doc(d *universe.Definition) {
	if d.Doc == "" {
		return
	}
	for _, line := range strings.Split(wordwrap.WrapString(d.Doc, docWidth), "\n") {
		r.printf("    %s\n", r.paint(color.Gray, line))
	}
}

func (r *report) nodes(reg *registry.Registry) {
	nodes := reg.Nodes()
	r.printf("%s\n", r.paint(color.Bold, fmt.Sprintf("Nodes (%d)", len(nodes))))
	for _, n := range nodes {
		r.printf("  %s  %s\n", r.paint(color.Cyan, n.Name), n.ID)
		for _, entry := range n.Menu {
			r.printf("    menu:   %s\n", entry)
		}
		if src, ok := reg.SourceForNode(n); ok {
			r.printf("    source: %s\n", src.Path)
		}
		r.doc(n)
	}
}

func (r *report) views(reg *registry.Registry) {
	views := reg.Views()
	r.printf("%s\n", r.paint(color.Bold, fmt.Sprintf("Views (%d)", len(views))))
	for _, v := range views {
		target := r.paint(color.Yellow, "(no target)")
		if v.Target != nil {
			target = v.Target.Name
		}
		r.printf("  %s -> %s\n", r.paint(color.Cyan, v.Name), target)
		if src, ok := reg.SourceForView(v); ok {
			r.printf("    source: %s\n", src.Path)
		}
	}
}

func (r *report) menu(entries map[string]*universe.Definition) {
	r.printf("%s\n", r.paint(color.Bold, fmt.Sprintf("Menu entries (%d)", len(entries))))
	for _, path := range sortedKeys(entries) {
		r.printf("  %-32s %s\n", path, r.paint(color.Cyan, entries[path].Name))
	}
}

func (r *report) slots(types []universe.TypeRef) {
	counts := make(map[string]int)
	for _, t := range types {
		counts[t.String()]++
	}
	r.printf("%s\n", r.paint(color.Bold, fmt.Sprintf("Slot fields (%d, %d distinct types)", len(types), len(counts))))
	for i, t := range types {
		r.printf("  %3d  %s\n", i+1, t)
	}
}

func (r *report) viewFor(node, view *universe.Definition, ok bool) {
	if !ok {
		r.printf("%s has no view\n", r.paint(color.Cyan, node.Name))
		return
	}
	r.printf("%s -> %s", r.paint(color.Cyan, node.Name), r.paint(color.Green, view.Name))
	if view.Target != nil && view.Target.ID != node.ID {
		r.printf(" %s", r.paint(color.Gray, "(inherited from "+view.Target.Name+")"))
	}
	r.printf("\n")
}

func (r *report) source(d *universe.Definition, src artifact.Artifact, ok bool) {
	if !ok {
		r.printf("%s has no source artifact\n", r.paint(color.Cyan, d.Name))
		return
	}
	r.printf("%s  %s  %s\n", r.paint(color.Cyan, d.Name), src.Path, r.paint(color.Gray, src.MediaType()))
}

func (r *report) checked(reg *registry.Registry) {
	r.printf("%s %d nodes, %d views, %d menu entries\n",
		r.paint(color.Green, "OK"), len(reg.Nodes()), len(reg.Views()), len(reg.MenuEntries()))
}
