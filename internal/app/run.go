package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/nodeprovider/internal/ctxlog"
)

// Command names accepted by Run.
const (
	CmdNodes  = "nodes"
	CmdViews  = "views"
	CmdMenu   = "menu"
	CmdSlots  = "slots"
	CmdView   = "view"
	CmdSource = "source"
	CmdCheck  = "check"
	CmdServe  = "serve"
)

// Command is a single query against the registry.
type Command struct {
	Name string
	Arg  string
}

// NeedsArg reports whether the command takes a definition name.
func (c Command) NeedsArg() bool {
	return c.Name == CmdView || c.Name == CmdSource
}

// Commands lists every command name, for usage output and validation.
func Commands() []string {
	return []string{CmdNodes, CmdViews, CmdMenu, CmdSlots, CmdView, CmdSource, CmdCheck, CmdServe}
}

// Run executes cmd and writes its report to the app's output.
func (a *App) Run(ctx context.Context, cmd Command) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", cmd.Name, "arg", cmd.Arg)

	r := newReport(a.outW, !a.config.NoColor)
	switch cmd.Name {
	case CmdNodes:
		r.nodes(a.registry)
	case CmdViews:
		r.views(a.registry)
	case CmdMenu:
		r.menu(a.registry.MenuEntries())
	case CmdSlots:
		r.slots(a.registry.SlotTypes())
	case CmdView:
		node, err := a.lookup(cmd.Arg)
		if err != nil {
			return err
		}
		view, ok := a.registry.ViewFor(node)
		r.viewFor(node, view, ok)
	case CmdSource:
		d, err := a.lookup(cmd.Arg)
		if err != nil {
			return err
		}
		src, ok := a.registry.SourceForNode(d)
		if !ok {
			src, ok = a.registry.SourceForView(d)
		}
		r.source(d, src, ok)
	case CmdCheck:
		if err := a.registry.Validate(ctx); err != nil {
			return err
		}
		r.checked(a.registry)
	case CmdServe:
		return a.Serve(ctx)
	default:
		return fmt.Errorf("unknown command %q", cmd.Name)
	}

	a.logger.Debug("App.Run method finished.")
	return r.err
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
